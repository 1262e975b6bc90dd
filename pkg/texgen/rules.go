package texgen

import (
	"sort"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// BinOperandRule controls the wrapping of one operand of a binary operator.
type BinOperandRule struct {
	// Wrap requires parentheses around the operand according to precedence.
	Wrap bool
	// Force requires parentheses even when the operand shares the parent's
	// precedence. Used to encode non-associativity, e.g. subtraction's
	// right operand.
	Force bool
}

// BinOpRule describes the LaTeX syntax of a binary operator.
type BinOpRule struct {
	// LatexLeft/LatexMiddle/LatexRight wrap and separate the operands.
	LatexLeft   string
	LatexMiddle string
	LatexRight  string

	OperandLeft  BinOperandRule
	OperandRight BinOperandRule

	// IsWrapped marks rules whose own output is bracket-delimited (e.g. a
	// floor fraction), letting the parent skip its parentheses.
	IsWrapped bool
}

func operandWrap() BinOperandRule  { return BinOperandRule{Wrap: true} }
func operandForce() BinOperandRule { return BinOperandRule{Wrap: true, Force: true} }

// binOpRules is the default arithmetic rendering table.
var binOpRules = map[pyast.BinOpKind]BinOpRule{
	pyast.OpPow: {
		LatexMiddle:  "^{",
		LatexRight:   "}",
		OperandLeft:  operandForce(),
		OperandRight: BinOperandRule{},
	},
	pyast.OpMult: {
		LatexMiddle:  ` \cdot `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpMatMult: {
		LatexMiddle:  ` \cdot `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpDiv: {
		LatexLeft:   `\frac{`,
		LatexMiddle: `}{`,
		LatexRight:  `}`,
	},
	pyast.OpFloorDiv: {
		LatexLeft:   `\left\lfloor\frac{`,
		LatexMiddle: `}{`,
		LatexRight:  `}\right\rfloor`,
		IsWrapped:   true,
	},
	pyast.OpMod: {
		LatexMiddle:  ` \mathbin{\%} `,
		OperandLeft:  operandWrap(),
		OperandRight: operandForce(),
	},
	pyast.OpAdd: {
		LatexMiddle:  ` + `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpSub: {
		LatexMiddle:  ` - `,
		OperandLeft:  operandWrap(),
		OperandRight: operandForce(),
	},
	pyast.OpLShift: {
		LatexMiddle:  ` \ll `,
		OperandLeft:  operandWrap(),
		OperandRight: operandForce(),
	},
	pyast.OpRShift: {
		LatexMiddle:  ` \gg `,
		OperandLeft:  operandWrap(),
		OperandRight: operandForce(),
	},
	pyast.OpBitAnd: {
		LatexMiddle:  ` \mathbin{\&} `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpBitXor: {
		LatexMiddle:  ` \oplus `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpBitOr: {
		LatexMiddle:  ` \mathbin{|} `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
}

// setBinOpRules swaps the set-theoretic counterparts into the default table.
var setBinOpRules = mergeBinOpRules(binOpRules, map[pyast.BinOpKind]BinOpRule{
	pyast.OpSub: {
		LatexMiddle:  ` \setminus `,
		OperandLeft:  operandWrap(),
		OperandRight: operandForce(),
	},
	pyast.OpBitAnd: {
		LatexMiddle:  ` \cap `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpBitXor: {
		LatexMiddle:  ` \mathbin{\triangle} `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
	pyast.OpBitOr: {
		LatexMiddle:  ` \cup `,
		OperandLeft:  operandWrap(),
		OperandRight: operandWrap(),
	},
})

func mergeBinOpRules(base, over map[pyast.BinOpKind]BinOpRule) map[pyast.BinOpKind]BinOpRule {
	merged := make(map[pyast.BinOpKind]BinOpRule, len(base))

	for op, rule := range base {
		merged[op] = rule
	}

	for op, rule := range over {
		merged[op] = rule
	}

	return merged
}

var unaryOps = map[pyast.UnaryOpKind]string{
	pyast.OpInvert: `\mathord{\sim} `,
	pyast.OpUAdd:   `+`,
	pyast.OpUSub:   `-`,
	pyast.OpNot:    `\lnot `,
}

var compareOps = map[pyast.CompareOpKind]string{
	pyast.OpEq:    `=`,
	pyast.OpGt:    `>`,
	pyast.OpGtE:   `\ge`,
	pyast.OpIn:    `\in`,
	pyast.OpIs:    `\equiv`,
	pyast.OpIsNot: `\not\equiv`,
	pyast.OpLt:    `<`,
	pyast.OpLtE:   `\le`,
	pyast.OpNotEq: `\ne`,
	pyast.OpNotIn: `\notin`,
}

var setCompareOps = mergeCompareOps(compareOps, map[pyast.CompareOpKind]string{
	pyast.OpGt:  `\supset`,
	pyast.OpGtE: `\supseteq`,
	pyast.OpLt:  `\subset`,
	pyast.OpLtE: `\subseteq`,
})

func mergeCompareOps(base, over map[pyast.CompareOpKind]string) map[pyast.CompareOpKind]string {
	merged := make(map[pyast.CompareOpKind]string, len(base))

	for op, latex := range base {
		merged[op] = latex
	}

	for op, latex := range over {
		merged[op] = latex
	}

	return merged
}

var boolOps = map[pyast.BoolOpKind]string{
	pyast.OpAnd: `\land`,
	pyast.OpOr:  `\lor`,
}

// FunctionRule describes the LaTeX syntax of a named function.
type FunctionRule struct {
	// Left/Right are concatenated around the rendered arguments.
	Left  string
	Right string
	// IsUnary renders the function as a prefix unary operator without call
	// parentheses, e.g. \sin x.
	IsUnary bool
	// IsWrapped marks rules whose output is already bracket-delimited.
	IsWrapped bool
}

func unaryRule(left string) FunctionRule {
	return FunctionRule{Left: left, IsUnary: true}
}

func wrappedRule(left, right string) FunctionRule {
	return FunctionRule{Left: left, Right: right, IsWrapped: true}
}

// builtinFuncs maps function names from the math builtins to their syntax.
var builtinFuncs = map[string]FunctionRule{
	"abs":       wrappedRule(`\mathopen{}\left|`, `\mathclose{}\right|`),
	"acos":      unaryRule(`\arccos`),
	"acosh":     unaryRule(`\mathrm{arcosh}`),
	"arccos":    unaryRule(`\arccos`),
	"arccot":    unaryRule(`\mathrm{arccot}`),
	"arccsc":    unaryRule(`\mathrm{arccsc}`),
	"arcosh":    unaryRule(`\mathrm{arcosh}`),
	"arcoth":    unaryRule(`\mathrm{arcoth}`),
	"arcsec":    unaryRule(`\mathrm{arcsec}`),
	"arcsch":    unaryRule(`\mathrm{arcsch}`),
	"arcsin":    unaryRule(`\arcsin`),
	"arctan":    unaryRule(`\arctan`),
	"arsech":    unaryRule(`\mathrm{arsech}`),
	"arsinh":    unaryRule(`\mathrm{arsinh}`),
	"artanh":    unaryRule(`\mathrm{artanh}`),
	"asin":      unaryRule(`\arcsin`),
	"asinh":     unaryRule(`\mathrm{arsinh}`),
	"atan":      unaryRule(`\arctan`),
	"atanh":     unaryRule(`\mathrm{artanh}`),
	"ceil":      wrappedRule(`\mathopen{}\left\lceil`, `\mathclose{}\right\rceil`),
	"cos":       unaryRule(`\cos`),
	"cosh":      unaryRule(`\cosh`),
	"cot":       unaryRule(`\cot`),
	"coth":      unaryRule(`\coth`),
	"csc":       unaryRule(`\csc`),
	"csch":      unaryRule(`\mathrm{csch}`),
	"exp":       unaryRule(`\exp`),
	"fabs":      wrappedRule(`\mathopen{}\left|`, `\mathclose{}\right|`),
	"factorial": {Right: `!`, IsUnary: true},
	"floor":     wrappedRule(`\mathopen{}\left\lfloor`, `\mathclose{}\right\rfloor`),
	"fsum":      unaryRule(`\sum`),
	"gamma":     unaryRule(`\Gamma`),
	"log":       unaryRule(`\log`),
	"log10":     unaryRule(`\log_{10}`),
	"log2":      unaryRule(`\log_2`),
	"prod":      unaryRule(`\prod`),
	"sec":       unaryRule(`\sec`),
	"sech":      unaryRule(`\mathrm{sech}`),
	"sin":       unaryRule(`\sin`),
	"sinh":      unaryRule(`\sinh`),
	"sqrt":      wrappedRule(`\sqrt{`, `}`),
	"sum":       unaryRule(`\sum`),
	"tan":       unaryRule(`\tan`),
	"tanh":      unaryRule(`\tanh`),
}

// BuiltinFunctionNames returns the sorted names of the builtin function
// rule table. Used by the CLI rules command.
func BuiltinFunctionNames() []string {
	names := make([]string, 0, len(builtinFuncs))

	for name := range builtinFuncs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// BuiltinFunctionRule looks up the rule for a builtin function name.
func BuiltinFunctionRule(name string) (FunctionRule, bool) {
	rule, ok := builtinFuncs[name]

	return rule, ok
}
