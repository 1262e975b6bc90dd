package rewrite

import (
	"fmt"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// AssignmentReducer substitutes intermediate assignments into the final
// return expression, so a straight-line function renders as a single
// formula. Only function bodies of the shape [docstrings, assignments...,
// return] can be reduced.
type AssignmentReducer struct{}

func (AssignmentReducer) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{stmt: reduceFunctionDef}

	return t.rewriteNode(node)
}

func reduceFunctionDef(stmt pyast.Stmt) (pyast.Stmt, error) {
	fn, ok := stmt.(*pyast.FunctionDef)
	if !ok {
		return stmt, nil
	}

	values := map[string]pyast.Expr{}
	body := make([]pyast.Stmt, 0, len(fn.Body))

	for _, s := range fn.Body {
		switch s := s.(type) {
		case *pyast.ExprStmt:
			if pyast.IsStrConstant(s.Value) {
				body = append(body, s)

				continue
			}

			return nil, fmt.Errorf("cannot reduce assignments: unexpected statement: %s", s.Kind())

		case *pyast.Assign:
			if len(s.Targets) != 1 {
				return nil, fmt.Errorf("cannot reduce assignments: multiple targets")
			}

			target, ok := s.Targets[0].(*pyast.Name)
			if !ok {
				return nil, fmt.Errorf("cannot reduce assignments: target must be a name: %s", s.Targets[0].Kind())
			}

			value, err := substituteNames(s.Value, values)
			if err != nil {
				return nil, err
			}

			values[target.Ident] = value

		case *pyast.Return:
			if s.Value == nil {
				body = append(body, s)

				continue
			}

			value, err := substituteNames(s.Value, values)
			if err != nil {
				return nil, err
			}

			body = append(body, &pyast.Return{Value: value})

		default:
			return nil, fmt.Errorf("cannot reduce assignments: unexpected statement: %s", s.Kind())
		}
	}

	return &pyast.FunctionDef{Name: fn.Name, Args: fn.Args, Body: body, Returns: fn.Returns}, nil
}

func substituteNames(expr pyast.Expr, values map[string]pyast.Expr) (pyast.Expr, error) {
	t := transform{expr: func(e pyast.Expr) (pyast.Expr, error) {
		if name, ok := e.(*pyast.Name); ok {
			if value, ok := values[name.Ident]; ok {
				return value, nil
			}
		}

		return e, nil
	}}

	return t.rewriteExpr(expr)
}
