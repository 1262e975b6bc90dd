package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var pythonKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {},
	"finally": {}, "for": {}, "from": {}, "global": {}, "if": {},
	"import": {}, "in": {}, "is": {}, "lambda": {}, "nonlocal": {},
	"not": {}, "or": {}, "pass": {}, "raise": {}, "return": {}, "try": {},
	"while": {}, "with": {}, "yield": {},
}

// IdentifierReplacer renames identifiers before generation, so the
// generators see the replaced tree. Both keys and values may be dotted
// names; a dotted replacement applies only where an attribute chain can
// stand.
type IdentifierReplacer struct {
	mapping map[string]string
}

// NewIdentifierReplacer validates the mapping. Keys and values must be
// identifiers or dotted identifiers and must not be Python keywords.
func NewIdentifierReplacer(mapping map[string]string) (*IdentifierReplacer, error) {
	for k, v := range mapping {
		if err := checkIdentifier(k); err != nil {
			return nil, err
		}

		if err := checkIdentifier(v); err != nil {
			return nil, err
		}
	}

	return &IdentifierReplacer{mapping: mapping}, nil
}

func checkIdentifier(name string) error {
	if _, ok := pythonKeywords[name]; ok {
		return fmt.Errorf("%q is not an identifier name", name)
	}

	for _, part := range strings.Split(name, ".") {
		if !identPattern.MatchString(part) {
			return fmt.Errorf("%q is not an identifier name", name)
		}
	}

	return nil
}

func (r *IdentifierReplacer) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{
		exprPre: r.replaceExpr,
		stmt:    r.replaceStmt,
	}

	return t.rewriteNode(node)
}

// replace maps a name, refusing dotted replacements where only a plain
// identifier can stand.
func (r *IdentifierReplacer) replace(name string, allowAttribute bool) string {
	replaced, ok := r.mapping[name]
	if !ok {
		return name
	}

	if !allowAttribute && strings.Contains(replaced, ".") {
		return name
	}

	return replaced
}

func (r *IdentifierReplacer) replaceExpr(expr pyast.Expr) (pyast.Expr, bool, error) {
	switch e := expr.(type) {
	case *pyast.Name:
		replaced := r.replace(e.Ident, true)

		return pyast.NestedAttribute(strings.Split(replaced, ".")...), true, nil
	case *pyast.Attribute:
		parts, err := pyast.AnalyzeAttribute(e)
		if err != nil {
			// Complex bases such as calls keep their dotted tail as-is.
			return nil, false, nil
		}

		replaced := r.replace(strings.Join(parts, "."), true)

		return pyast.NestedAttribute(strings.Split(replaced, ".")...), true, nil
	default:
		return nil, false, nil
	}
}

func (r *IdentifierReplacer) replaceStmt(stmt pyast.Stmt) (pyast.Stmt, error) {
	fn, ok := stmt.(*pyast.FunctionDef)
	if !ok {
		return stmt, nil
	}

	args := make([]*pyast.Arg, len(fn.Args))
	for i, arg := range fn.Args {
		args[i] = &pyast.Arg{Name: r.replace(arg.Name, false), Annotation: arg.Annotation}
	}

	return &pyast.FunctionDef{
		Name:    r.replace(fn.Name, false),
		Args:    args,
		Body:    fn.Body,
		Returns: fn.Returns,
	}, nil
}
