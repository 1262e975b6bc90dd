package texgen

import "github.com/Sumatoshi-tech/texfang/pkg/pyast"

// Operator precedence values. Higher binds tighter. The values control only
// the placement of parentheses around rendered operands; they do not affect
// the tree itself.
const (
	precPow     = 120
	precUnary   = 110
	precMult    = 100
	precAdd     = 90
	precShift   = 80
	precBitAnd  = 70
	precBitXor  = 60
	precBitOr   = 50
	precCompare = 40
	precAnd     = 20
	precOr      = 10

	// CallPrecedence treats function application as a unary-like operator
	// one tier above the unary operators. This wraps a unary argument
	// (exp(-x) renders \exp(-x)) without wrapping the call itself
	// (-exp(x) renders -\exp x).
	CallPrecedence = precUnary + 1

	// InfPrecedence marks atomic subtrees that never need wrapping.
	InfPrecedence = 1_000_000
)

var binOpPrecedence = map[pyast.BinOpKind]int{
	pyast.OpPow:      precPow,
	pyast.OpMult:     precMult,
	pyast.OpMatMult:  precMult,
	pyast.OpDiv:      precMult,
	pyast.OpFloorDiv: precMult,
	pyast.OpMod:      precMult,
	pyast.OpAdd:      precAdd,
	pyast.OpSub:      precAdd,
	pyast.OpLShift:   precShift,
	pyast.OpRShift:   precShift,
	pyast.OpBitAnd:   precBitAnd,
	pyast.OpBitXor:   precBitXor,
	pyast.OpBitOr:    precBitOr,
}

// The not operator gets the same tier as the other unary operators: its
// LaTeX counterpart \lnot reads as binding tightly.
var unaryOpPrecedence = map[pyast.UnaryOpKind]int{
	pyast.OpUAdd:   precUnary,
	pyast.OpUSub:   precUnary,
	pyast.OpInvert: precUnary,
	pyast.OpNot:    precUnary,
}

var boolOpPrecedence = map[pyast.BoolOpKind]int{
	pyast.OpAnd: precAnd,
	pyast.OpOr:  precOr,
}

// PrecedenceOf returns the precedence of the subtree rooted at node.
// Operator nodes return their operator's table entry; comparison chains
// return the first operator's tier (all comparison operators share one
// tier); calls return CallPrecedence; everything else is atomic and
// returns InfPrecedence.
func PrecedenceOf(node pyast.Node) int {
	switch n := node.(type) {
	case *pyast.Call:
		return CallPrecedence
	case *pyast.BinOp:
		return binOpPrecedence[n.Op]
	case *pyast.UnaryOp:
		return unaryOpPrecedence[n.Op]
	case *pyast.BoolOp:
		return boolOpPrecedence[n.Op]
	case *pyast.Compare:
		return precCompare
	default:
		return InfPrecedence
	}
}
