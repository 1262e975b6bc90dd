// Package rewrite provides tree normalization passes that run between
// parsing and LaTeX generation. Each pass rebuilds the tree rather than
// mutating it, so the input node stays usable.
package rewrite

import (
	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// Rewriter transforms a tree into an equivalent or simplified tree.
type Rewriter interface {
	Rewrite(node pyast.Node) (pyast.Node, error)
}

// Apply runs rewriters in order, feeding each one the output of the
// previous.
func Apply(node pyast.Node, rewriters ...Rewriter) (pyast.Node, error) {
	var err error

	for _, r := range rewriters {
		node, err = r.Rewrite(node)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}
