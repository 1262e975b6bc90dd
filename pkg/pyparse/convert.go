package pyparse

import (
	"fmt"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// converter lowers the tree-sitter CST into the pyast tree.
type converter struct {
	src []byte
}

func (c *converter) text(n sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) errorf(n sitter.Node, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	start := n.StartPoint()

	return fmt.Errorf("%w: %s at %d:%d", ErrParse, detail, start.Row+1, start.Column+1)
}

func (c *converter) module(root sitter.Node) (*pyast.Module, error) {
	body, err := c.body(root)
	if err != nil {
		return nil, err
	}

	return &pyast.Module{Body: body}, nil
}

// body converts the named children of a block-like node, skipping
// comments.
func (c *converter) body(n sitter.Node) ([]pyast.Stmt, error) {
	var out []pyast.Stmt

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}

		stmt, err := c.stmt(child)
		if err != nil {
			return nil, err
		}

		out = append(out, stmt)
	}

	return out, nil
}

func (c *converter) stmt(n sitter.Node) (pyast.Stmt, error) {
	switch n.Type() {
	case "expression_statement":
		return c.exprStatement(n)
	case "function_definition":
		return c.functionDef(n)
	case "return_statement":
		return c.returnStatement(n)
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement":
		return c.forStatement(n)
	case "while_statement":
		return c.whileStatement(n)
	case "match_statement":
		return c.matchStatement(n)
	case "pass_statement":
		return &pyast.Pass{}, nil
	case "break_statement":
		return &pyast.Break{}, nil
	case "continue_statement":
		return &pyast.Continue{}, nil
	default:
		return nil, c.errorf(n, "unsupported statement: %s", n.Type())
	}
}

// exprStatement unwraps assignments, which the grammar nests inside
// expression statements.
func (c *converter) exprStatement(n sitter.Node) (pyast.Stmt, error) {
	if n.NamedChildCount() != 1 {
		return nil, c.errorf(n, "unsupported expression statement")
	}

	inner := n.NamedChild(0)

	switch inner.Type() {
	case "assignment":
		return c.assignment(inner)
	case "augmented_assignment":
		return c.augmentedAssignment(inner)
	default:
		value, err := c.expr(inner)
		if err != nil {
			return nil, err
		}

		return &pyast.ExprStmt{Value: value}, nil
	}
}

// assignment handles chained targets: a = b = value.
func (c *converter) assignment(n sitter.Node) (pyast.Stmt, error) {
	var targets []pyast.Expr

	current := n

	for current.Type() == "assignment" {
		left := current.ChildByFieldName("left")
		if left.IsNull() {
			return nil, c.errorf(n, "assignment without target")
		}

		target, err := c.expr(left)
		if err != nil {
			return nil, err
		}

		targets = append(targets, target)

		right := current.ChildByFieldName("right")
		if right.IsNull() {
			return nil, c.errorf(n, "assignment without value")
		}

		current = right
	}

	value, err := c.expr(current)
	if err != nil {
		return nil, err
	}

	return &pyast.Assign{Targets: targets, Value: value}, nil
}

var augOps = map[string]pyast.BinOpKind{
	"+=":  pyast.OpAdd,
	"-=":  pyast.OpSub,
	"*=":  pyast.OpMult,
	"/=":  pyast.OpDiv,
	"//=": pyast.OpFloorDiv,
	"%=":  pyast.OpMod,
	"**=": pyast.OpPow,
	"@=":  pyast.OpMatMult,
	"<<=": pyast.OpLShift,
	">>=": pyast.OpRShift,
	"&=":  pyast.OpBitAnd,
	"|=":  pyast.OpBitOr,
	"^=":  pyast.OpBitXor,
}

func (c *converter) augmentedAssignment(n sitter.Node) (pyast.Stmt, error) {
	target, err := c.fieldExpr(n, "left")
	if err != nil {
		return nil, err
	}

	value, err := c.fieldExpr(n, "right")
	if err != nil {
		return nil, err
	}

	opNode := n.ChildByFieldName("operator")
	if opNode.IsNull() {
		return nil, c.errorf(n, "augmented assignment without operator")
	}

	op, ok := augOps[c.text(opNode)]
	if !ok {
		return nil, c.errorf(n, "unsupported operator: %s", c.text(opNode))
	}

	return &pyast.AugAssign{Target: target, Op: op, Value: value}, nil
}

func (c *converter) functionDef(n sitter.Node) (pyast.Stmt, error) {
	name := n.ChildByFieldName("name")
	if name.IsNull() {
		return nil, c.errorf(n, "function without name")
	}

	args, err := c.parameters(n.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}

	var returns pyast.Expr

	if rt := n.ChildByFieldName("return_type"); !rt.IsNull() {
		returns, err = c.typeExpr(rt)
		if err != nil {
			return nil, err
		}
	}

	bodyNode := n.ChildByFieldName("body")
	if bodyNode.IsNull() {
		return nil, c.errorf(n, "function without body")
	}

	body, err := c.body(bodyNode)
	if err != nil {
		return nil, err
	}

	return &pyast.FunctionDef{Name: c.text(name), Args: args, Body: body, Returns: returns}, nil
}

func (c *converter) parameters(n sitter.Node) ([]*pyast.Arg, error) {
	if n.IsNull() {
		return nil, nil
	}

	var args []*pyast.Arg

	for i := range n.NamedChildCount() {
		param := n.NamedChild(i)

		switch param.Type() {
		case "identifier":
			args = append(args, &pyast.Arg{Name: c.text(param)})

		case "typed_parameter":
			// First named child is the parameter name.
			name := param.NamedChild(0)

			annotation, err := c.fieldType(param, "type")
			if err != nil {
				return nil, err
			}

			args = append(args, &pyast.Arg{Name: c.text(name), Annotation: annotation})

		case "default_parameter":
			name := param.ChildByFieldName("name")
			if name.IsNull() {
				return nil, c.errorf(param, "unsupported parameter")
			}

			args = append(args, &pyast.Arg{Name: c.text(name)})

		case "typed_default_parameter":
			name := param.ChildByFieldName("name")
			if name.IsNull() {
				return nil, c.errorf(param, "unsupported parameter")
			}

			annotation, err := c.fieldType(param, "type")
			if err != nil {
				return nil, err
			}

			args = append(args, &pyast.Arg{Name: c.text(name), Annotation: annotation})

		case "comment":
			continue

		default:
			return nil, c.errorf(param, "unsupported parameter: %s", param.Type())
		}
	}

	return args, nil
}

func (c *converter) returnStatement(n sitter.Node) (pyast.Stmt, error) {
	if n.NamedChildCount() == 0 {
		return &pyast.Return{}, nil
	}

	value, err := c.expr(n.NamedChild(0))
	if err != nil {
		return nil, err
	}

	return &pyast.Return{Value: value}, nil
}

func (c *converter) ifStatement(n sitter.Node) (pyast.Stmt, error) {
	test, err := c.fieldExpr(n, "condition")
	if err != nil {
		return nil, err
	}

	consequence := n.ChildByFieldName("consequence")
	if consequence.IsNull() {
		return nil, c.errorf(n, "if without body")
	}

	body, err := c.body(consequence)
	if err != nil {
		return nil, err
	}

	orElse, err := c.alternatives(n)
	if err != nil {
		return nil, err
	}

	return &pyast.If{Test: test, Body: body, OrElse: orElse}, nil
}

// alternatives folds elif and else clauses into the nested OrElse
// representation.
func (c *converter) alternatives(n sitter.Node) ([]pyast.Stmt, error) {
	var clauses []sitter.Node

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if t := child.Type(); t == "elif_clause" || t == "else_clause" {
			clauses = append(clauses, child)
		}
	}

	return c.foldClauses(clauses)
}

func (c *converter) foldClauses(clauses []sitter.Node) ([]pyast.Stmt, error) {
	if len(clauses) == 0 {
		return nil, nil
	}

	head := clauses[0]

	if head.Type() == "else_clause" {
		bodyNode := head.ChildByFieldName("body")
		if bodyNode.IsNull() {
			return nil, c.errorf(head, "else without body")
		}

		return c.body(bodyNode)
	}

	test, err := c.fieldExpr(head, "condition")
	if err != nil {
		return nil, err
	}

	consequence := head.ChildByFieldName("consequence")
	if consequence.IsNull() {
		return nil, c.errorf(head, "elif without body")
	}

	body, err := c.body(consequence)
	if err != nil {
		return nil, err
	}

	orElse, err := c.foldClauses(clauses[1:])
	if err != nil {
		return nil, err
	}

	return []pyast.Stmt{&pyast.If{Test: test, Body: body, OrElse: orElse}}, nil
}

func (c *converter) forStatement(n sitter.Node) (pyast.Stmt, error) {
	target, err := c.fieldExpr(n, "left")
	if err != nil {
		return nil, err
	}

	iter, err := c.fieldExpr(n, "right")
	if err != nil {
		return nil, err
	}

	bodyNode := n.ChildByFieldName("body")
	if bodyNode.IsNull() {
		return nil, c.errorf(n, "for without body")
	}

	body, err := c.body(bodyNode)
	if err != nil {
		return nil, err
	}

	orElse, err := c.elseClause(n)
	if err != nil {
		return nil, err
	}

	return &pyast.For{Target: target, Iter: iter, Body: body, OrElse: orElse}, nil
}

func (c *converter) whileStatement(n sitter.Node) (pyast.Stmt, error) {
	test, err := c.fieldExpr(n, "condition")
	if err != nil {
		return nil, err
	}

	bodyNode := n.ChildByFieldName("body")
	if bodyNode.IsNull() {
		return nil, c.errorf(n, "while without body")
	}

	body, err := c.body(bodyNode)
	if err != nil {
		return nil, err
	}

	orElse, err := c.elseClause(n)
	if err != nil {
		return nil, err
	}

	return &pyast.While{Test: test, Body: body, OrElse: orElse}, nil
}

func (c *converter) elseClause(n sitter.Node) ([]pyast.Stmt, error) {
	alt := n.ChildByFieldName("alternative")
	if alt.IsNull() {
		return nil, nil
	}

	bodyNode := alt.ChildByFieldName("body")
	if bodyNode.IsNull() {
		return nil, c.errorf(alt, "else without body")
	}

	return c.body(bodyNode)
}

func (c *converter) matchStatement(n sitter.Node) (pyast.Stmt, error) {
	subject, err := c.fieldExpr(n, "subject")
	if err != nil {
		return nil, err
	}

	bodyNode := n.ChildByFieldName("body")
	if bodyNode.IsNull() {
		return nil, c.errorf(n, "match without body")
	}

	var cases []*pyast.MatchCase

	for i := range bodyNode.NamedChildCount() {
		child := bodyNode.NamedChild(i)
		if child.Type() != "case_clause" {
			continue
		}

		mc, err := c.caseClause(child)
		if err != nil {
			return nil, err
		}

		cases = append(cases, mc)
	}

	return &pyast.Match{Subject: subject, Cases: cases}, nil
}

func (c *converter) caseClause(n sitter.Node) (*pyast.MatchCase, error) {
	var pattern pyast.Pattern

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.Type() != "case_pattern" {
			continue
		}

		if pattern != nil {
			return nil, c.errorf(n, "unsupported case with multiple patterns")
		}

		var err error

		pattern, err = c.casePattern(child)
		if err != nil {
			return nil, err
		}
	}

	if pattern == nil {
		return nil, c.errorf(n, "case without pattern")
	}

	if guard := n.ChildByFieldName("guard"); !guard.IsNull() {
		return nil, c.errorf(n, "unsupported case guard")
	}

	consequence := n.ChildByFieldName("consequence")
	if consequence.IsNull() {
		return nil, c.errorf(n, "case without body")
	}

	body, err := c.body(consequence)
	if err != nil {
		return nil, err
	}

	return &pyast.MatchCase{Pattern: pattern, Body: body}, nil
}

func (c *converter) casePattern(n sitter.Node) (pyast.Pattern, error) {
	if c.text(n) == "_" {
		return &pyast.MatchAs{}, nil
	}

	if n.NamedChildCount() == 0 {
		return nil, c.errorf(n, "unsupported case pattern")
	}

	inner := n.NamedChild(0)

	// A bare dotted name of one segment is a capture pattern.
	if inner.Type() == "dotted_name" && inner.NamedChildCount() == 1 {
		return &pyast.MatchAs{Name: c.text(inner)}, nil
	}

	if inner.Type() == "identifier" {
		return &pyast.MatchAs{Name: c.text(inner)}, nil
	}

	value, err := c.expr(inner)
	if err != nil {
		return nil, err
	}

	return &pyast.MatchValue{Value: value}, nil
}

// typeExpr unwraps the grammar's type node, which wraps annotation
// expressions in signatures, before converting the expression inside.
func (c *converter) typeExpr(n sitter.Node) (pyast.Expr, error) {
	if n.Type() == "type" {
		if n.NamedChildCount() != 1 {
			return nil, c.errorf(n, "unsupported type annotation")
		}

		return c.expr(n.NamedChild(0))
	}

	return c.expr(n)
}

func (c *converter) fieldType(n sitter.Node, field string) (pyast.Expr, error) {
	child := n.ChildByFieldName(field)
	if child.IsNull() {
		return nil, c.errorf(n, "%s without %s", n.Type(), field)
	}

	return c.typeExpr(child)
}

func (c *converter) fieldExpr(n sitter.Node, field string) (pyast.Expr, error) {
	child := n.ChildByFieldName(field)
	if child.IsNull() {
		return nil, c.errorf(n, "%s without %s", n.Type(), field)
	}

	return c.expr(child)
}
