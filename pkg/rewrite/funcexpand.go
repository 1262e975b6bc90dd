package rewrite

import (
	"sort"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// FunctionExpander replaces calls to selected math helpers with their
// defining expressions, e.g. exp(x) becomes e to the power of x and
// hypot(a, b) becomes sqrt(a squared plus b squared). Expansions are
// applied recursively, so expm1 reaches e when exp is also enabled.
type FunctionExpander struct {
	targets map[string]struct{}
}

// NewFunctionExpander creates an expander for the given function names.
// Unknown names are ignored.
func NewFunctionExpander(names []string) *FunctionExpander {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[name] = struct{}{}
	}

	return &FunctionExpander{targets: targets}
}

// ExpandableFunctions lists the function names the expander understands.
func ExpandableFunctions() []string {
	names := make([]string, 0, len(expansions))
	for name := range expansions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *FunctionExpander) Rewrite(node pyast.Node) (pyast.Node, error) {
	t := transform{expr: r.expand}

	return t.rewriteNode(node)
}

func (r *FunctionExpander) expand(expr pyast.Expr) (pyast.Expr, error) {
	call, ok := expr.(*pyast.Call)
	if !ok {
		return expr, nil
	}

	name, ok := pyast.FunctionName(call)
	if !ok {
		return expr, nil
	}

	if _, ok := r.targets[name]; !ok {
		return expr, nil
	}

	expansion, ok := expansions[name]
	if !ok {
		return expr, nil
	}

	out, ok := expansion(call)
	if !ok {
		return expr, nil
	}

	// Expansions may produce further expandable calls, e.g. expm1
	// produces exp.
	t := transform{expr: r.expand}

	return t.rewriteExpr(out)
}

type expansionFunc func(call *pyast.Call) (pyast.Expr, bool)

var expansions = map[string]expansionFunc{
	"atan2": expandAtan2,
	"exp":   expandExp,
	"exp2":  expandExp2,
	"expm1": expandExpm1,
	"hypot": expandHypot,
	"log1p": expandLog1p,
	"pow":   expandPow,
}

func call1(name string, arg pyast.Expr) *pyast.Call {
	return &pyast.Call{Func: &pyast.Name{Ident: name}, Args: []pyast.Expr{arg}}
}

func expandAtan2(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 2 {
		return nil, false
	}

	ratio := &pyast.BinOp{Left: call.Args[0], Op: pyast.OpDiv, Right: call.Args[1]}

	return call1("atan", ratio), true
}

func expandExp(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 1 {
		return nil, false
	}

	return &pyast.BinOp{Left: &pyast.Name{Ident: "e"}, Op: pyast.OpPow, Right: call.Args[0]}, true
}

func expandExp2(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 1 {
		return nil, false
	}

	return &pyast.BinOp{Left: pyast.MakeInt(2), Op: pyast.OpPow, Right: call.Args[0]}, true
}

func expandExpm1(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 1 {
		return nil, false
	}

	return &pyast.BinOp{Left: call1("exp", call.Args[0]), Op: pyast.OpSub, Right: pyast.MakeInt(1)}, true
}

func expandHypot(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) == 0 {
		return pyast.MakeInt(0), true
	}

	var sum pyast.Expr

	for _, arg := range call.Args {
		squared := &pyast.BinOp{Left: arg, Op: pyast.OpPow, Right: pyast.MakeInt(2)}
		if sum == nil {
			sum = squared
		} else {
			sum = &pyast.BinOp{Left: sum, Op: pyast.OpAdd, Right: squared}
		}
	}

	return call1("sqrt", sum), true
}

func expandLog1p(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 1 {
		return nil, false
	}

	sum := &pyast.BinOp{Left: pyast.MakeInt(1), Op: pyast.OpAdd, Right: call.Args[0]}

	return call1("log", sum), true
}

func expandPow(call *pyast.Call) (pyast.Expr, bool) {
	if len(call.Args) != 2 {
		return nil, false
	}

	return &pyast.BinOp{Left: call.Args[0], Op: pyast.OpPow, Right: call.Args[1]}, true
}
