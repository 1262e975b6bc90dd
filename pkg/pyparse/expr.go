package pyparse

import (
	"strconv"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

var binOps = map[string]pyast.BinOpKind{
	"+":  pyast.OpAdd,
	"-":  pyast.OpSub,
	"*":  pyast.OpMult,
	"@":  pyast.OpMatMult,
	"/":  pyast.OpDiv,
	"//": pyast.OpFloorDiv,
	"%":  pyast.OpMod,
	"**": pyast.OpPow,
	"<<": pyast.OpLShift,
	">>": pyast.OpRShift,
	"&":  pyast.OpBitAnd,
	"|":  pyast.OpBitOr,
	"^":  pyast.OpBitXor,
}

var compareOps = map[string]pyast.CompareOpKind{
	"==":     pyast.OpEq,
	"!=":     pyast.OpNotEq,
	"<>":     pyast.OpNotEq,
	"<":      pyast.OpLt,
	"<=":     pyast.OpLtE,
	">":      pyast.OpGt,
	">=":     pyast.OpGtE,
	"is":     pyast.OpIs,
	"is not": pyast.OpIsNot,
	"in":     pyast.OpIn,
	"not in": pyast.OpNotIn,
}

var unaryOps = map[string]pyast.UnaryOpKind{
	"+": pyast.OpUAdd,
	"-": pyast.OpUSub,
	"~": pyast.OpInvert,
}

func (c *converter) expr(n sitter.Node) (pyast.Expr, error) {
	switch n.Type() {
	case "parenthesized_expression":
		if n.NamedChildCount() != 1 {
			return nil, c.errorf(n, "unsupported parenthesized expression")
		}

		return c.expr(n.NamedChild(0))

	case "identifier":
		return &pyast.Name{Ident: c.text(n)}, nil

	case "attribute":
		value, err := c.fieldExpr(n, "object")
		if err != nil {
			return nil, err
		}

		attr := n.ChildByFieldName("attribute")
		if attr.IsNull() {
			return nil, c.errorf(n, "attribute without name")
		}

		return &pyast.Attribute{Value: value, Attr: c.text(attr)}, nil

	case "integer":
		return c.intLiteral(n), nil

	case "float":
		return &pyast.Constant{Tag: pyast.ConstFloat, Text: c.text(n)}, nil

	case "true":
		return &pyast.Constant{Tag: pyast.ConstBool, Bool: true}, nil

	case "false":
		return &pyast.Constant{Tag: pyast.ConstBool, Bool: false}, nil

	case "none":
		return &pyast.Constant{Tag: pyast.ConstNone}, nil

	case "ellipsis":
		return &pyast.Constant{Tag: pyast.ConstEllipsis}, nil

	case "string":
		return c.stringLiteral(n)

	case "unary_operator":
		return c.unaryOperator(n)

	case "not_operator":
		operand, err := c.fieldExpr(n, "argument")
		if err != nil {
			return nil, err
		}

		return &pyast.UnaryOp{Op: pyast.OpNot, Operand: operand}, nil

	case "binary_operator":
		return c.binaryOperator(n)

	case "boolean_operator":
		return c.booleanOperator(n)

	case "comparison_operator":
		return c.comparisonOperator(n)

	case "call":
		return c.call(n)

	case "tuple", "expression_list", "pattern_list":
		elts, err := c.exprList(n)
		if err != nil {
			return nil, err
		}

		return &pyast.Tuple{Elts: elts}, nil

	case "list":
		elts, err := c.exprList(n)
		if err != nil {
			return nil, err
		}

		return &pyast.List{Elts: elts}, nil

	case "set":
		elts, err := c.exprList(n)
		if err != nil {
			return nil, err
		}

		return &pyast.Set{Elts: elts}, nil

	case "list_comprehension":
		elt, gens, err := c.comprehension(n)
		if err != nil {
			return nil, err
		}

		return &pyast.ListComp{Elt: elt, Generators: gens}, nil

	case "set_comprehension":
		elt, gens, err := c.comprehension(n)
		if err != nil {
			return nil, err
		}

		return &pyast.SetComp{Elt: elt, Generators: gens}, nil

	case "generator_expression":
		elt, gens, err := c.comprehension(n)
		if err != nil {
			return nil, err
		}

		return &pyast.GeneratorExp{Elt: elt, Generators: gens}, nil

	case "conditional_expression":
		return c.conditional(n)

	case "subscript":
		return c.subscript(n)

	default:
		return nil, c.errorf(n, "unsupported expression: %s", n.Type())
	}
}

// intLiteral keeps the source spelling. Values that do not fit an int64
// lose their integer snapshot but still render verbatim.
func (c *converter) intLiteral(n sitter.Node) *pyast.Constant {
	text := c.text(n)

	value, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64)
	if err != nil {
		return &pyast.Constant{Tag: pyast.ConstFloat, Text: text}
	}

	return &pyast.Constant{Tag: pyast.ConstInt, Int: value, Text: text}
}

// stringLiteral extracts the content between the quote tokens.
func (c *converter) stringLiteral(n sitter.Node) (pyast.Expr, error) {
	var (
		start, end         sitter.Node
		haveStart, haveEnd bool
	)

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case "string_start":
			start, haveStart = child, true
		case "string_end":
			end, haveEnd = child, true
		case "interpolation":
			return nil, c.errorf(n, "unsupported f-string")
		}
	}

	if !haveStart || !haveEnd {
		return nil, c.errorf(n, "unsupported string literal")
	}

	content := string(c.src[start.EndByte():end.StartByte()])

	return &pyast.Constant{Tag: pyast.ConstStr, Str: content}, nil
}

func (c *converter) unaryOperator(n sitter.Node) (pyast.Expr, error) {
	opNode := n.ChildByFieldName("operator")
	if opNode.IsNull() {
		return nil, c.errorf(n, "unary operator without operator")
	}

	op, ok := unaryOps[c.text(opNode)]
	if !ok {
		return nil, c.errorf(n, "unsupported operator: %s", c.text(opNode))
	}

	operand, err := c.fieldExpr(n, "argument")
	if err != nil {
		return nil, err
	}

	return &pyast.UnaryOp{Op: op, Operand: operand}, nil
}

func (c *converter) binaryOperator(n sitter.Node) (pyast.Expr, error) {
	left, err := c.fieldExpr(n, "left")
	if err != nil {
		return nil, err
	}

	right, err := c.fieldExpr(n, "right")
	if err != nil {
		return nil, err
	}

	opNode := n.ChildByFieldName("operator")
	if opNode.IsNull() {
		return nil, c.errorf(n, "binary operator without operator")
	}

	op, ok := binOps[c.text(opNode)]
	if !ok {
		return nil, c.errorf(n, "unsupported operator: %s", c.text(opNode))
	}

	return &pyast.BinOp{Left: left, Op: op, Right: right}, nil
}

// booleanOperator flattens chains like a and b and c into one BoolOp.
func (c *converter) booleanOperator(n sitter.Node) (pyast.Expr, error) {
	left, err := c.fieldExpr(n, "left")
	if err != nil {
		return nil, err
	}

	right, err := c.fieldExpr(n, "right")
	if err != nil {
		return nil, err
	}

	op := pyast.OpAnd

	opNode := n.ChildByFieldName("operator")
	if !opNode.IsNull() && c.text(opNode) == "or" {
		op = pyast.OpOr
	}

	if chain, ok := left.(*pyast.BoolOp); ok && chain.Op == op {
		return &pyast.BoolOp{Op: op, Values: append(chain.Values, right)}, nil
	}

	return &pyast.BoolOp{Op: op, Values: []pyast.Expr{left, right}}, nil
}

func (c *converter) comparisonOperator(n sitter.Node) (pyast.Expr, error) {
	var (
		operands []pyast.Expr
		ops      []pyast.CompareOpKind
	)

	for i := range n.ChildCount() {
		child := n.Child(i)

		if child.IsNamed() {
			if child.Type() == "comment" {
				continue
			}

			operand, err := c.expr(child)
			if err != nil {
				return nil, err
			}

			operands = append(operands, operand)

			continue
		}

		op, ok := compareOps[c.text(child)]
		if !ok {
			return nil, c.errorf(n, "unsupported operator: %s", c.text(child))
		}

		ops = append(ops, op)
	}

	if len(operands) < 2 || len(ops) != len(operands)-1 {
		return nil, c.errorf(n, "unsupported comparison")
	}

	return &pyast.Compare{Left: operands[0], Ops: ops, Comparators: operands[1:]}, nil
}

func (c *converter) call(n sitter.Node) (pyast.Expr, error) {
	fn, err := c.fieldExpr(n, "function")
	if err != nil {
		return nil, err
	}

	argsNode := n.ChildByFieldName("arguments")
	if argsNode.IsNull() {
		return &pyast.Call{Func: fn}, nil
	}

	// A generator expression may stand directly as the argument list.
	if argsNode.Type() == "generator_expression" {
		arg, err := c.expr(argsNode)
		if err != nil {
			return nil, err
		}

		return &pyast.Call{Func: fn, Args: []pyast.Expr{arg}}, nil
	}

	var (
		args     []pyast.Expr
		keywords []pyast.Keyword
	)

	for i := range argsNode.NamedChildCount() {
		child := argsNode.NamedChild(i)

		switch child.Type() {
		case "comment":
			continue

		case "keyword_argument":
			name := child.ChildByFieldName("name")

			value, err := c.fieldExpr(child, "value")
			if err != nil {
				return nil, err
			}

			if name.IsNull() {
				return nil, c.errorf(child, "keyword argument without name")
			}

			keywords = append(keywords, pyast.Keyword{Arg: c.text(name), Value: value})

		case "list_splat", "dictionary_splat":
			return nil, c.errorf(child, "unsupported argument: %s", child.Type())

		default:
			arg, err := c.expr(child)
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}
	}

	return &pyast.Call{Func: fn, Args: args, Keywords: keywords}, nil
}

func (c *converter) exprList(n sitter.Node) ([]pyast.Expr, error) {
	var elts []pyast.Expr

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}

		elt, err := c.expr(child)
		if err != nil {
			return nil, err
		}

		elts = append(elts, elt)
	}

	return elts, nil
}

func (c *converter) comprehension(n sitter.Node) (pyast.Expr, []*pyast.Comprehension, error) {
	elt, err := c.fieldExpr(n, "body")
	if err != nil {
		return nil, nil, err
	}

	var gens []*pyast.Comprehension

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case "for_in_clause":
			target, err := c.fieldExpr(child, "left")
			if err != nil {
				return nil, nil, err
			}

			iter, err := c.fieldExpr(child, "right")
			if err != nil {
				return nil, nil, err
			}

			gens = append(gens, &pyast.Comprehension{Target: target, Iter: iter})

		case "if_clause":
			if len(gens) == 0 || child.NamedChildCount() != 1 {
				return nil, nil, c.errorf(child, "unsupported comprehension")
			}

			cond, err := c.expr(child.NamedChild(0))
			if err != nil {
				return nil, nil, err
			}

			last := gens[len(gens)-1]
			last.Ifs = append(last.Ifs, cond)
		}
	}

	if len(gens) == 0 {
		return nil, nil, c.errorf(n, "comprehension without generators")
	}

	return elt, gens, nil
}

// conditional converts body if test else orelse; the keywords are
// anonymous tokens, so the three named children are positional.
func (c *converter) conditional(n sitter.Node) (pyast.Expr, error) {
	if n.NamedChildCount() != 3 {
		return nil, c.errorf(n, "unsupported conditional expression")
	}

	body, err := c.expr(n.NamedChild(0))
	if err != nil {
		return nil, err
	}

	test, err := c.expr(n.NamedChild(1))
	if err != nil {
		return nil, err
	}

	orElse, err := c.expr(n.NamedChild(2))
	if err != nil {
		return nil, err
	}

	return &pyast.IfExp{Test: test, Body: body, OrElse: orElse}, nil
}

// subscript collects the value plus one or more indices; multiple
// indices form a tuple, matching a[i, j].
func (c *converter) subscript(n sitter.Node) (pyast.Expr, error) {
	value, err := c.fieldExpr(n, "value")
	if err != nil {
		return nil, err
	}

	var indices []pyast.Expr

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case "comment":
			continue
		case "slice":
			return nil, c.errorf(child, "unsupported slice")
		}

		if i == 0 {
			// The first named child is the subscripted value.
			continue
		}

		index, err := c.expr(child)
		if err != nil {
			return nil, err
		}

		indices = append(indices, index)
	}

	if len(indices) == 0 {
		return nil, c.errorf(n, "subscript without index")
	}

	if len(indices) == 1 {
		return &pyast.Subscript{Value: value, Index: indices[0]}, nil
	}

	return &pyast.Subscript{Value: value, Index: &pyast.Tuple{Elts: indices}}, nil
}
