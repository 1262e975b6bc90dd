package texgen

import (
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// TypeAnnotationPlugin renders jaxtyping style array annotations such as
// Float[Array, "n m"] as real coordinate spaces.
type TypeAnnotationPlugin struct{}

func (TypeAnnotationPlugin) Render(_ *Chain, node pyast.Node) (string, error) {
	sub, ok := node.(*pyast.Subscript)
	if !ok {
		return "", ErrSkip
	}

	dtype, ok := sub.Value.(*pyast.Name)
	if !ok || (dtype.Ident != "Float" && dtype.Ident != "Int") {
		return "", ErrSkip
	}

	tuple, ok := sub.Index.(*pyast.Tuple)
	if !ok || len(tuple.Elts) != 2 {
		return "", ErrSkip
	}

	array, ok := tuple.Elts[0].(*pyast.Name)
	if !ok || array.Ident != "Array" {
		return "", ErrSkip
	}

	dims, ok := tuple.Elts[1].(*pyast.Constant)
	if !ok || dims.Tag != pyast.ConstStr {
		return "", ErrSkip
	}

	dim := strings.Join(strings.Fields(dims.Str), ` \times `)

	return `\mathbb{R}^{` + dim + `}`, nil
}
