package rewrite

import (
	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// DocstringRemover drops bare string literal statements, which are
// docstrings in nearly every position they appear in.
type DocstringRemover struct{}

func (DocstringRemover) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{stmt: func(stmt pyast.Stmt) (pyast.Stmt, error) {
		if expr, ok := stmt.(*pyast.ExprStmt); ok && pyast.IsStrConstant(expr.Value) {
			return nil, nil
		}

		return stmt, nil
	}}

	return t.rewriteNode(node)
}
