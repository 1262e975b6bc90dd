// Package pyast provides the expression/statement tree that texfang renders.
// Nodes form a strict tree: no sharing, no cycles, immutable once constructed.
package pyast

// Kind identifies the variant of a node. The string value is used verbatim
// in unsupported-construct errors, so it must name the construct.
type Kind string

// Node kind constants.
const (
	KindConstant      Kind = "Constant"
	KindName          Kind = "Name"
	KindAttribute     Kind = "Attribute"
	KindUnaryOp       Kind = "UnaryOp"
	KindBinOp         Kind = "BinOp"
	KindBoolOp        Kind = "BoolOp"
	KindCompare       Kind = "Compare"
	KindCall          Kind = "Call"
	KindTuple         Kind = "Tuple"
	KindList          Kind = "List"
	KindSet           Kind = "Set"
	KindListComp      Kind = "ListComp"
	KindSetComp       Kind = "SetComp"
	KindGeneratorExp  Kind = "GeneratorExp"
	KindComprehension Kind = "Comprehension"
	KindIfExp         Kind = "IfExp"
	KindSubscript     Kind = "Subscript"

	KindModule      Kind = "Module"
	KindFunctionDef Kind = "FunctionDef"
	KindReturn      Kind = "Return"
	KindAssign      Kind = "Assign"
	KindAugAssign   Kind = "AugAssign"
	KindExprStmt    Kind = "Expr"
	KindIf          Kind = "If"
	KindFor         Kind = "For"
	KindWhile       Kind = "While"
	KindPass        Kind = "Pass"
	KindBreak       Kind = "Break"
	KindContinue    Kind = "Continue"
	KindMatch       Kind = "Match"
	KindMatchCase   Kind = "MatchCase"
	KindMatchValue  Kind = "MatchValue"
	KindMatchAs     Kind = "MatchAs"
)

// Node is the common interface of all tree nodes.
type Node interface {
	Kind() Kind
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ConstTag selects the payload variant of a Constant.
type ConstTag int

// Constant payload variants.
const (
	ConstNone ConstTag = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstStr
	ConstEllipsis
)

// Constant is a literal value.
// Text carries the literal spelling for ConstInt and ConstFloat so that
// rendering preserves the source notation (e.g. "1e-3").
type Constant struct {
	Tag  ConstTag
	Bool bool
	Int  int64
	Str  string
	Text string
}

// Name is a bare identifier reference.
type Name struct {
	Ident string
}

// Attribute is a qualified (dotted) access: Value.Attr.
type Attribute struct {
	Value Expr
	Attr  string
}

// UnaryOp applies a unary operator to a single operand.
type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
}

// BinOp applies a binary operator to two operands.
type BinOp struct {
	Left  Expr
	Op    BinOpKind
	Right Expr
}

// BoolOp is a flat chain of boolean conjunction or disjunction.
type BoolOp struct {
	Op     BoolOpKind
	Values []Expr
}

// Compare is a flat comparison chain: Left Ops[0] Comparators[0] Ops[1] ...
// len(Ops) == len(Comparators) >= 1.
type Compare struct {
	Left        Expr
	Ops         []CompareOpKind
	Comparators []Expr
}

// Keyword is a keyword argument of a Call.
type Keyword struct {
	Arg   string
	Value Expr
}

// Call is a function application.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// Tuple is a tuple literal.
type Tuple struct {
	Elts []Expr
}

// List is a list literal.
type List struct {
	Elts []Expr
}

// Set is a set literal.
type Set struct {
	Elts []Expr
}

// ListComp is a list comprehension.
type ListComp struct {
	Elt        Expr
	Generators []*Comprehension
}

// SetComp is a set comprehension.
type SetComp struct {
	Elt        Expr
	Generators []*Comprehension
}

// GeneratorExp is a generator expression.
type GeneratorExp struct {
	Elt        Expr
	Generators []*Comprehension
}

// Comprehension is one "for Target in Iter if Ifs..." clause.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// IfExp is a conditional expression: Body if Test else OrElse.
type IfExp struct {
	Test   Expr
	Body   Expr
	OrElse Expr
}

// Subscript is an index access: Value[Index].
type Subscript struct {
	Value Expr
	Index Expr
}

// Kind implementations.

func (*Constant) Kind() Kind      { return KindConstant }
func (*Name) Kind() Kind          { return KindName }
func (*Attribute) Kind() Kind     { return KindAttribute }
func (*UnaryOp) Kind() Kind       { return KindUnaryOp }
func (*BinOp) Kind() Kind         { return KindBinOp }
func (*BoolOp) Kind() Kind        { return KindBoolOp }
func (*Compare) Kind() Kind       { return KindCompare }
func (*Call) Kind() Kind          { return KindCall }
func (*Tuple) Kind() Kind         { return KindTuple }
func (*List) Kind() Kind          { return KindList }
func (*Set) Kind() Kind           { return KindSet }
func (*ListComp) Kind() Kind      { return KindListComp }
func (*SetComp) Kind() Kind       { return KindSetComp }
func (*GeneratorExp) Kind() Kind  { return KindGeneratorExp }
func (*Comprehension) Kind() Kind { return KindComprehension }
func (*IfExp) Kind() Kind         { return KindIfExp }
func (*Subscript) Kind() Kind     { return KindSubscript }

func (*Constant) exprNode()      {}
func (*Name) exprNode()          {}
func (*Attribute) exprNode()     {}
func (*UnaryOp) exprNode()       {}
func (*BinOp) exprNode()         {}
func (*BoolOp) exprNode()        {}
func (*Compare) exprNode()       {}
func (*Call) exprNode()          {}
func (*Tuple) exprNode()         {}
func (*List) exprNode()          {}
func (*Set) exprNode()           {}
func (*ListComp) exprNode()      {}
func (*SetComp) exprNode()       {}
func (*GeneratorExp) exprNode()  {}
func (*Comprehension) exprNode() {}
func (*IfExp) exprNode()         {}
func (*Subscript) exprNode()     {}
