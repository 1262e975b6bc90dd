package pyast

// Module is the root of a parsed source fragment.
type Module struct {
	Body []Stmt
}

// Arg is a single function parameter with an optional type annotation.
type Arg struct {
	Name       string
	Annotation Expr
}

// FunctionDef is a function definition.
type FunctionDef struct {
	Name    string
	Args    []*Arg
	Body    []Stmt
	Returns Expr
}

// Return is a return statement. Value may be nil.
type Return struct {
	Value Expr
}

// Assign is an assignment statement with one or more targets.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AugAssign is an augmented assignment: Target Op= Value.
type AugAssign struct {
	Target Expr
	Op     BinOpKind
	Value  Expr
}

// ExprStmt is an expression used as a statement (e.g. a docstring).
type ExprStmt struct {
	Value Expr
}

// If is a conditional statement. OrElse holds either the else body or a
// single nested If for elif chains.
type If struct {
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// For is a for-in loop. OrElse is the (rarely used) else clause.
type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	OrElse []Stmt
}

// While is a while loop. OrElse is the (rarely used) else clause.
type While struct {
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// Pass is a pass statement.
type Pass struct{}

// Break is a break statement.
type Break struct{}

// Continue is a continue statement.
type Continue struct{}

// Pattern is implemented by match-case patterns.
type Pattern interface {
	Node
	patternNode()
}

// MatchValue matches against a literal or expression value.
type MatchValue struct {
	Value Expr
}

// MatchAs is a capture or wildcard pattern. Name == "" means the
// wildcard "_".
type MatchAs struct {
	Name string
}

// MatchCase is one case clause of a Match statement.
type MatchCase struct {
	Pattern Pattern
	Body    []Stmt
}

// Match is a structural pattern matching statement.
type Match struct {
	Subject Expr
	Cases   []*MatchCase
}

func (*Module) Kind() Kind      { return KindModule }
func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (*Return) Kind() Kind      { return KindReturn }
func (*Assign) Kind() Kind      { return KindAssign }
func (*AugAssign) Kind() Kind   { return KindAugAssign }
func (*ExprStmt) Kind() Kind    { return KindExprStmt }
func (*If) Kind() Kind          { return KindIf }
func (*For) Kind() Kind         { return KindFor }
func (*While) Kind() Kind       { return KindWhile }
func (*Pass) Kind() Kind        { return KindPass }
func (*Break) Kind() Kind       { return KindBreak }
func (*Continue) Kind() Kind    { return KindContinue }
func (*Match) Kind() Kind       { return KindMatch }
func (*MatchCase) Kind() Kind   { return KindMatchCase }
func (*MatchValue) Kind() Kind  { return KindMatchValue }
func (*MatchAs) Kind() Kind     { return KindMatchAs }

func (*Module) stmtNode()      {}
func (*FunctionDef) stmtNode() {}
func (*Return) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Match) stmtNode()       {}

func (*MatchValue) patternNode() {}
func (*MatchAs) patternNode()    {}
