package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// PrefixTrimmer removes module prefixes from attribute chains, e.g.
// math.sqrt becomes sqrt. Prefixes match leftmost longest.
type PrefixTrimmer struct {
	prefixes [][]string
}

// NewPrefixTrimmer validates the prefixes. Each must be an identifier or
// identifiers joined by periods, e.g. "numpy.random".
func NewPrefixTrimmer(prefixes []string) (*PrefixTrimmer, error) {
	parsed := make([][]string, 0, len(prefixes))

	for _, p := range prefixes {
		if !prefixPattern.MatchString(p) {
			return nil, fmt.Errorf("invalid prefix: %s", p)
		}

		parsed = append(parsed, strings.Split(p, "."))
	}

	return &PrefixTrimmer{prefixes: parsed}, nil
}

func (r *PrefixTrimmer) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{exprPre: r.trim}

	return t.rewriteNode(node)
}

func (r *PrefixTrimmer) trim(expr pyast.Expr) (pyast.Expr, bool, error) {
	attr, ok := expr.(*pyast.Attribute)
	if !ok {
		return nil, false, nil
	}

	prefix, err := pyast.AnalyzeAttribute(attr.Value)
	if err != nil {
		// Complex bases such as calls cannot carry a module prefix.
		return nil, false, nil
	}

	// Leftmost longest match. Naive scan, fine for small prefix sets.
	matched := 0

	for _, p := range r.prefixes {
		length := min(len(p), len(prefix))
		if matched < length && equalParts(prefix[:length], p[:length]) && len(p) == length {
			matched = length
		}
	}

	parts := append(append([]string{}, prefix[matched:]...), attr.Attr)

	return pyast.NestedAttribute(parts...), true, nil
}

func equalParts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
