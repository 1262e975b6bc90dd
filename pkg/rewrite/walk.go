package rewrite

import (
	"fmt"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// transform rebuilds a tree while applying hooks.
//
// exprPre runs before an expression's children are rebuilt; a claimed
// result is taken as-is without descending. expr and stmt run after the
// children were rebuilt. A nil statement returned by the stmt hook drops
// the statement from its body.
type transform struct {
	exprPre func(pyast.Expr) (out pyast.Expr, claimed bool, err error)
	expr    func(pyast.Expr) (pyast.Expr, error)
	stmt    func(pyast.Stmt) (pyast.Stmt, error)
}

func (t transform) rewriteNode(node pyast.Node) (pyast.Node, error) {
	switch n := node.(type) {
	case pyast.Expr:
		return t.rewriteExpr(n)
	case pyast.Stmt:
		out, err := t.rewriteStmt(n)
		if err != nil {
			return nil, err
		}

		if out == nil {
			return nil, fmt.Errorf("rewrite removed the top-level statement: %s", node.Kind())
		}

		return out, nil
	default:
		return nil, fmt.Errorf("cannot rewrite node: %s", node.Kind())
	}
}

func (t transform) rewriteExpr(expr pyast.Expr) (pyast.Expr, error) {
	if expr == nil {
		return nil, nil
	}

	if t.exprPre != nil {
		out, claimed, err := t.exprPre(expr)
		if err != nil {
			return nil, err
		}

		if claimed {
			return out, nil
		}
	}

	rebuilt, err := t.rebuildExpr(expr)
	if err != nil {
		return nil, err
	}

	if t.expr != nil {
		return t.expr(rebuilt)
	}

	return rebuilt, nil
}

func (t transform) rebuildExpr(expr pyast.Expr) (pyast.Expr, error) {
	switch e := expr.(type) {
	case *pyast.Constant, *pyast.Name:
		return expr, nil

	case *pyast.Attribute:
		value, err := t.rewriteExpr(e.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.Attribute{Value: value, Attr: e.Attr}, nil

	case *pyast.UnaryOp:
		operand, err := t.rewriteExpr(e.Operand)
		if err != nil {
			return nil, err
		}

		return &pyast.UnaryOp{Op: e.Op, Operand: operand}, nil

	case *pyast.BinOp:
		left, err := t.rewriteExpr(e.Left)
		if err != nil {
			return nil, err
		}

		right, err := t.rewriteExpr(e.Right)
		if err != nil {
			return nil, err
		}

		return &pyast.BinOp{Left: left, Op: e.Op, Right: right}, nil

	case *pyast.BoolOp:
		values, err := t.rewriteExprs(e.Values)
		if err != nil {
			return nil, err
		}

		return &pyast.BoolOp{Op: e.Op, Values: values}, nil

	case *pyast.Compare:
		left, err := t.rewriteExpr(e.Left)
		if err != nil {
			return nil, err
		}

		comparators, err := t.rewriteExprs(e.Comparators)
		if err != nil {
			return nil, err
		}

		ops := make([]pyast.CompareOpKind, len(e.Ops))
		copy(ops, e.Ops)

		return &pyast.Compare{Left: left, Ops: ops, Comparators: comparators}, nil

	case *pyast.Call:
		fn, err := t.rewriteExpr(e.Func)
		if err != nil {
			return nil, err
		}

		args, err := t.rewriteExprs(e.Args)
		if err != nil {
			return nil, err
		}

		keywords := make([]pyast.Keyword, len(e.Keywords))

		for i, kw := range e.Keywords {
			value, err := t.rewriteExpr(kw.Value)
			if err != nil {
				return nil, err
			}

			keywords[i] = pyast.Keyword{Arg: kw.Arg, Value: value}
		}

		return &pyast.Call{Func: fn, Args: args, Keywords: keywords}, nil

	case *pyast.Tuple:
		elts, err := t.rewriteExprs(e.Elts)
		if err != nil {
			return nil, err
		}

		return &pyast.Tuple{Elts: elts}, nil

	case *pyast.List:
		elts, err := t.rewriteExprs(e.Elts)
		if err != nil {
			return nil, err
		}

		return &pyast.List{Elts: elts}, nil

	case *pyast.Set:
		elts, err := t.rewriteExprs(e.Elts)
		if err != nil {
			return nil, err
		}

		return &pyast.Set{Elts: elts}, nil

	case *pyast.ListComp:
		elt, gens, err := t.rewriteComp(e.Elt, e.Generators)
		if err != nil {
			return nil, err
		}

		return &pyast.ListComp{Elt: elt, Generators: gens}, nil

	case *pyast.SetComp:
		elt, gens, err := t.rewriteComp(e.Elt, e.Generators)
		if err != nil {
			return nil, err
		}

		return &pyast.SetComp{Elt: elt, Generators: gens}, nil

	case *pyast.GeneratorExp:
		elt, gens, err := t.rewriteComp(e.Elt, e.Generators)
		if err != nil {
			return nil, err
		}

		return &pyast.GeneratorExp{Elt: elt, Generators: gens}, nil

	case *pyast.IfExp:
		test, err := t.rewriteExpr(e.Test)
		if err != nil {
			return nil, err
		}

		body, err := t.rewriteExpr(e.Body)
		if err != nil {
			return nil, err
		}

		orElse, err := t.rewriteExpr(e.OrElse)
		if err != nil {
			return nil, err
		}

		return &pyast.IfExp{Test: test, Body: body, OrElse: orElse}, nil

	case *pyast.Subscript:
		value, err := t.rewriteExpr(e.Value)
		if err != nil {
			return nil, err
		}

		index, err := t.rewriteExpr(e.Index)
		if err != nil {
			return nil, err
		}

		return &pyast.Subscript{Value: value, Index: index}, nil

	default:
		return nil, fmt.Errorf("cannot rewrite expression: %s", expr.Kind())
	}
}

func (t transform) rewriteExprs(exprs []pyast.Expr) ([]pyast.Expr, error) {
	out := make([]pyast.Expr, len(exprs))

	for i, expr := range exprs {
		rebuilt, err := t.rewriteExpr(expr)
		if err != nil {
			return nil, err
		}

		out[i] = rebuilt
	}

	return out, nil
}

func (t transform) rewriteComp(elt pyast.Expr, gens []*pyast.Comprehension) (pyast.Expr, []*pyast.Comprehension, error) {
	newElt, err := t.rewriteExpr(elt)
	if err != nil {
		return nil, nil, err
	}

	newGens := make([]*pyast.Comprehension, len(gens))

	for i, gen := range gens {
		target, err := t.rewriteExpr(gen.Target)
		if err != nil {
			return nil, nil, err
		}

		iter, err := t.rewriteExpr(gen.Iter)
		if err != nil {
			return nil, nil, err
		}

		ifs, err := t.rewriteExprs(gen.Ifs)
		if err != nil {
			return nil, nil, err
		}

		newGens[i] = &pyast.Comprehension{Target: target, Iter: iter, Ifs: ifs}
	}

	return newElt, newGens, nil
}

func (t transform) rewriteStmt(stmt pyast.Stmt) (pyast.Stmt, error) {
	rebuilt, err := t.rebuildStmt(stmt)
	if err != nil {
		return nil, err
	}

	if t.stmt != nil {
		return t.stmt(rebuilt)
	}

	return rebuilt, nil
}

func (t transform) rebuildStmt(stmt pyast.Stmt) (pyast.Stmt, error) {
	switch s := stmt.(type) {
	case *pyast.Module:
		body, err := t.rewriteBody(s.Body)
		if err != nil {
			return nil, err
		}

		return &pyast.Module{Body: body}, nil

	case *pyast.FunctionDef:
		args := make([]*pyast.Arg, len(s.Args))

		for i, arg := range s.Args {
			annotation, err := t.rewriteExpr(arg.Annotation)
			if err != nil {
				return nil, err
			}

			args[i] = &pyast.Arg{Name: arg.Name, Annotation: annotation}
		}

		body, err := t.rewriteBody(s.Body)
		if err != nil {
			return nil, err
		}

		returns, err := t.rewriteExpr(s.Returns)
		if err != nil {
			return nil, err
		}

		return &pyast.FunctionDef{Name: s.Name, Args: args, Body: body, Returns: returns}, nil

	case *pyast.Return:
		value, err := t.rewriteExpr(s.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.Return{Value: value}, nil

	case *pyast.Assign:
		targets, err := t.rewriteExprs(s.Targets)
		if err != nil {
			return nil, err
		}

		value, err := t.rewriteExpr(s.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.Assign{Targets: targets, Value: value}, nil

	case *pyast.AugAssign:
		target, err := t.rewriteExpr(s.Target)
		if err != nil {
			return nil, err
		}

		value, err := t.rewriteExpr(s.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.AugAssign{Target: target, Op: s.Op, Value: value}, nil

	case *pyast.ExprStmt:
		value, err := t.rewriteExpr(s.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.ExprStmt{Value: value}, nil

	case *pyast.If:
		test, err := t.rewriteExpr(s.Test)
		if err != nil {
			return nil, err
		}

		body, err := t.rewriteBody(s.Body)
		if err != nil {
			return nil, err
		}

		orElse, err := t.rewriteBody(s.OrElse)
		if err != nil {
			return nil, err
		}

		return &pyast.If{Test: test, Body: body, OrElse: orElse}, nil

	case *pyast.For:
		target, err := t.rewriteExpr(s.Target)
		if err != nil {
			return nil, err
		}

		iter, err := t.rewriteExpr(s.Iter)
		if err != nil {
			return nil, err
		}

		body, err := t.rewriteBody(s.Body)
		if err != nil {
			return nil, err
		}

		orElse, err := t.rewriteBody(s.OrElse)
		if err != nil {
			return nil, err
		}

		return &pyast.For{Target: target, Iter: iter, Body: body, OrElse: orElse}, nil

	case *pyast.While:
		test, err := t.rewriteExpr(s.Test)
		if err != nil {
			return nil, err
		}

		body, err := t.rewriteBody(s.Body)
		if err != nil {
			return nil, err
		}

		orElse, err := t.rewriteBody(s.OrElse)
		if err != nil {
			return nil, err
		}

		return &pyast.While{Test: test, Body: body, OrElse: orElse}, nil

	case *pyast.Pass, *pyast.Break, *pyast.Continue:
		return stmt, nil

	case *pyast.Match:
		subject, err := t.rewriteExpr(s.Subject)
		if err != nil {
			return nil, err
		}

		cases := make([]*pyast.MatchCase, len(s.Cases))

		for i, mc := range s.Cases {
			pattern, err := t.rewritePattern(mc.Pattern)
			if err != nil {
				return nil, err
			}

			body, err := t.rewriteBody(mc.Body)
			if err != nil {
				return nil, err
			}

			cases[i] = &pyast.MatchCase{Pattern: pattern, Body: body}
		}

		return &pyast.Match{Subject: subject, Cases: cases}, nil

	default:
		return nil, fmt.Errorf("cannot rewrite statement: %s", stmt.Kind())
	}
}

func (t transform) rewritePattern(pattern pyast.Pattern) (pyast.Pattern, error) {
	switch p := pattern.(type) {
	case *pyast.MatchValue:
		value, err := t.rewriteExpr(p.Value)
		if err != nil {
			return nil, err
		}

		return &pyast.MatchValue{Value: value}, nil
	case *pyast.MatchAs:
		return pattern, nil
	default:
		return nil, fmt.Errorf("cannot rewrite pattern: %s", pattern.Kind())
	}
}

func (t transform) rewriteBody(stmts []pyast.Stmt) ([]pyast.Stmt, error) {
	out := make([]pyast.Stmt, 0, len(stmts))

	for _, stmt := range stmts {
		rebuilt, err := t.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}

		if rebuilt != nil {
			out = append(out, rebuilt)
		}
	}

	return out, nil
}
