package rewrite

import (
	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// AugAssignReplacer lowers augmented assignments to plain assignments,
// e.g. x += y becomes x = x + y.
type AugAssignReplacer struct{}

func (AugAssignReplacer) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{stmt: func(stmt pyast.Stmt) (pyast.Stmt, error) {
		aug, ok := stmt.(*pyast.AugAssign)
		if !ok {
			return stmt, nil
		}

		return &pyast.Assign{
			Targets: []pyast.Expr{aug.Target},
			Value:   &pyast.BinOp{Left: aug.Target, Op: aug.Op, Right: aug.Value},
		}, nil
	}}

	return t.rewriteNode(node)
}
