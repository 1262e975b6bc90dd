package pyast

import "strconv"

// MakeInt creates an integer Constant with its canonical spelling.
func MakeInt(value int64) *Constant {
	return &Constant{Tag: ConstInt, Int: value, Text: strconv.FormatInt(value, 10)}
}

// NestedAttribute builds a Name or nested Attribute chain from dotted name
// parts, e.g. ["numpy", "linalg", "inv"] becomes numpy.linalg.inv.
func NestedAttribute(parts ...string) Expr {
	var expr Expr = &Name{Ident: parts[0]}

	for _, part := range parts[1:] {
		expr = &Attribute{Value: expr, Attr: part}
	}

	return expr
}

// FunctionName extracts the called function name from a Call node.
// For attribute calls (e.g. np.sin) the rightmost segment is returned.
// The second result reports whether a name could be extracted.
func FunctionName(call *Call) (string, bool) {
	switch fn := call.Func.(type) {
	case *Name:
		return fn.Ident, true
	case *Attribute:
		return fn.Attr, true
	default:
		return "", false
	}
}

// IntValue extracts an int constant from the given expression.
// Boolean constants do not count as ints.
func IntValue(expr Expr) (int64, bool) {
	c, ok := expr.(*Constant)
	if !ok || c.Tag != ConstInt {
		return 0, false
	}

	return c.Int, true
}

// IsConstant reports whether the expression is a literal constant.
func IsConstant(expr Expr) bool {
	_, ok := expr.(*Constant)

	return ok
}

// IsStrConstant reports whether the expression is a string literal.
func IsStrConstant(expr Expr) bool {
	c, ok := expr.(*Constant)

	return ok && c.Tag == ConstStr
}
