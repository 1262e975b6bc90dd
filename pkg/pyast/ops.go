package pyast

// BinOpKind enumerates binary operators.
type BinOpKind int

// Binary operator constants.
const (
	OpAdd BinOpKind = iota
	OpSub
	OpMult
	OpMatMult
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitAnd
	OpBitOr
	OpBitXor
)

func (op BinOpKind) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMult:
		return "Mult"
	case OpMatMult:
		return "MatMult"
	case OpDiv:
		return "Div"
	case OpFloorDiv:
		return "FloorDiv"
	case OpMod:
		return "Mod"
	case OpPow:
		return "Pow"
	case OpLShift:
		return "LShift"
	case OpRShift:
		return "RShift"
	case OpBitAnd:
		return "BitAnd"
	case OpBitOr:
		return "BitOr"
	case OpBitXor:
		return "BitXor"
	default:
		return "unknown"
	}
}

// UnaryOpKind enumerates unary operators.
type UnaryOpKind int

// Unary operator constants.
const (
	OpUAdd UnaryOpKind = iota
	OpUSub
	OpInvert
	OpNot
)

func (op UnaryOpKind) String() string {
	switch op {
	case OpUAdd:
		return "UAdd"
	case OpUSub:
		return "USub"
	case OpInvert:
		return "Invert"
	case OpNot:
		return "Not"
	default:
		return "unknown"
	}
}

// BoolOpKind enumerates boolean chain operators.
type BoolOpKind int

// Boolean operator constants.
const (
	OpAnd BoolOpKind = iota
	OpOr
)

func (op BoolOpKind) String() string {
	switch op {
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	default:
		return "unknown"
	}
}

// CompareOpKind enumerates comparison operators.
type CompareOpKind int

// Comparison operator constants.
const (
	OpEq CompareOpKind = iota
	OpNotEq
	OpLt
	OpLtE
	OpGt
	OpGtE
	OpIs
	OpIsNot
	OpIn
	OpNotIn
)

func (op CompareOpKind) String() string {
	switch op {
	case OpEq:
		return "Eq"
	case OpNotEq:
		return "NotEq"
	case OpLt:
		return "Lt"
	case OpLtE:
		return "LtE"
	case OpGt:
		return "Gt"
	case OpGtE:
		return "GtE"
	case OpIs:
		return "Is"
	case OpIsNot:
		return "IsNot"
	case OpIn:
		return "In"
	case OpNotIn:
		return "NotIn"
	default:
		return "unknown"
	}
}
