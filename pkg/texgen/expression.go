package texgen

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// CompilerConfig controls the generic expression compiler.
type CompilerConfig struct {
	// UseMathSymbols converts identifiers with a math symbol surface
	// (e.g. "alpha") to the LaTeX symbol (e.g. "\alpha").
	UseMathSymbols bool
	// UseSetSymbols swaps the arithmetic rendering tables for their
	// set-theoretic counterparts.
	UseSetSymbols bool
	// UseMathrm wraps plain multi-character identifiers in \mathrm{}.
	UseMathrm bool
	// Identifiers overrides identifier rendering, bypassing all other
	// conversion rules.
	Identifiers map[string]string
}

// ExpressionCompiler is the terminal plugin of a rendering chain: the
// generic, precedence-aware renderer for every expression kind.
type ExpressionCompiler struct {
	ident      *IdentifierConverter
	binOpRules map[pyast.BinOpKind]BinOpRule
	compareOps map[pyast.CompareOpKind]string
}

// NewExpressionCompiler creates a compiler with the given configuration.
func NewExpressionCompiler(cfg CompilerConfig) *ExpressionCompiler {
	rules, cmp := binOpRules, compareOps
	if cfg.UseSetSymbols {
		rules, cmp = setBinOpRules, setCompareOps
	}

	return &ExpressionCompiler{
		ident:      NewIdentifierConverter(cfg.UseMathSymbols, cfg.UseMathrm, cfg.Identifiers),
		binOpRules: rules,
		compareOps: cmp,
	}
}

// Identifiers exposes the identifier converter, shared with the statement
// renderers of the same chain.
func (g *ExpressionCompiler) Identifiers() *IdentifierConverter {
	return g.ident
}

// Render renders any expression node; statement nodes are declined.
func (g *ExpressionCompiler) Render(chain *Chain, node pyast.Node) (string, error) {
	switch n := node.(type) {
	case *pyast.Constant:
		return renderConstant(n)
	case *pyast.Name:
		latex, _ := g.ident.Convert(n.Ident)

		return latex, nil
	case *pyast.Attribute:
		return g.renderAttribute(chain, n)
	case *pyast.UnaryOp:
		return g.renderUnaryOp(chain, n)
	case *pyast.BinOp:
		return g.renderBinOp(chain, n)
	case *pyast.BoolOp:
		return g.renderBoolOp(chain, n)
	case *pyast.Compare:
		return g.renderCompare(chain, n)
	case *pyast.Call:
		return g.renderCall(chain, n)
	case *pyast.Tuple:
		return renderCollection(chain, n.Elts, `\mathopen{}\left( `, ` \mathclose{}\right)`)
	case *pyast.List:
		return renderCollection(chain, n.Elts, `\mathopen{}\left[ `, ` \mathclose{}\right]`)
	case *pyast.Set:
		return renderCollection(chain, n.Elts, `\mathopen{}\left\{ `, ` \mathclose{}\right\}`)
	case *pyast.ListComp:
		return renderComp(chain, n.Elt, n.Generators, `\mathopen{}\left[ `, ` \mathclose{}\right]`)
	case *pyast.SetComp:
		return renderComp(chain, n.Elt, n.Generators, `\mathopen{}\left\{ `, ` \mathclose{}\right\}`)
	case *pyast.Comprehension:
		return g.renderComprehension(chain, n)
	case *pyast.IfExp:
		return g.renderIfExp(chain, n)
	case *pyast.Subscript:
		return g.renderSubscript(chain, n)
	default:
		return "", ErrSkip
	}
}

func renderConstant(node *pyast.Constant) (string, error) {
	switch node.Tag {
	case pyast.ConstNone:
		return `\mathrm{None}`, nil
	case pyast.ConstBool:
		if node.Bool {
			return `\mathrm{True}`, nil
		}

		return `\mathrm{False}`, nil
	case pyast.ConstInt, pyast.ConstFloat:
		return node.Text, nil
	case pyast.ConstStr:
		return `\textrm{"` + node.Str + `"}`, nil
	case pyast.ConstEllipsis:
		return `\cdots`, nil
	default:
		return "", &UnsupportedError{Construct: "Constant"}
	}
}

func (g *ExpressionCompiler) renderAttribute(chain *Chain, node *pyast.Attribute) (string, error) {
	// A fully qualified override takes precedence over per-segment
	// conversion.
	if parts, err := pyast.AnalyzeAttribute(node); err == nil {
		if latex, ok := g.ident.Override(strings.Join(parts, ".")); ok {
			return latex, nil
		}
	}

	value, err := chain.Render(node.Value)
	if err != nil {
		return "", err
	}

	attr, _ := g.ident.Convert(node.Attr)

	return value + "." + attr, nil
}

// wrapParens wraps already-rendered LaTeX in explicit delimiters.
func wrapParens(latex string) string {
	return `\mathopen{}\left( ` + latex + ` \mathclose{}\right)`
}

// wrapOperand renders a child operand, wrapping it when its precedence is
// lower than the parent's, or unconditionally when force is set.
func wrapOperand(chain *Chain, child pyast.Expr, parentPrec int, force bool) (string, error) {
	latex, err := chain.Render(child)
	if err != nil {
		return "", err
	}

	if force || PrecedenceOf(child) < parentPrec {
		return wrapParens(latex), nil
	}

	return latex, nil
}

// wrapBinOperand renders one operand of a binary operator according to the
// operand rule. Self-delimiting children (wrapped function calls, wrapped
// binary rules) suppress wrapping regardless of precedence.
func (g *ExpressionCompiler) wrapBinOperand(
	chain *Chain, child pyast.Expr, parentPrec int, rule BinOperandRule,
) (string, error) {
	if !rule.Wrap {
		return chain.Render(child)
	}

	if call, ok := child.(*pyast.Call); ok {
		if name, found := pyast.FunctionName(call); found {
			if fnRule, known := builtinFuncs[name]; known && fnRule.IsWrapped {
				return chain.Render(child)
			}
		}
	}

	childBin, ok := child.(*pyast.BinOp)
	if !ok {
		return wrapOperand(chain, child, parentPrec, false)
	}

	latex, err := chain.Render(child)
	if err != nil {
		return "", err
	}

	if g.binOpRules[childBin.Op].IsWrapped {
		return latex, nil
	}

	childPrec := PrecedenceOf(child)
	if childPrec > parentPrec || (childPrec == parentPrec && !rule.Force) {
		return latex, nil
	}

	return wrapParens(latex), nil
}

func (g *ExpressionCompiler) renderBinOp(chain *Chain, node *pyast.BinOp) (string, error) {
	prec := PrecedenceOf(node)
	rule := g.binOpRules[node.Op]

	lhs, err := g.wrapBinOperand(chain, node.Left, prec, rule.OperandLeft)
	if err != nil {
		return "", err
	}

	rhs, err := g.wrapBinOperand(chain, node.Right, prec, rule.OperandRight)
	if err != nil {
		return "", err
	}

	if (node.Op == pyast.OpMult || node.Op == pyast.OpMatMult) &&
		shouldElideMultOp(lhs, rhs, node.Left, node.Right) {
		return rule.LatexLeft + lhs + " " + rhs + rule.LatexRight, nil
	}

	return rule.LatexLeft + lhs + rule.LatexMiddle + rhs + rule.LatexRight, nil
}

func (g *ExpressionCompiler) renderUnaryOp(chain *Chain, node *pyast.UnaryOp) (string, error) {
	latex, err := wrapOperand(chain, node.Operand, PrecedenceOf(node), false)
	if err != nil {
		return "", err
	}

	return unaryOps[node.Op] + latex, nil
}

func (g *ExpressionCompiler) renderCompare(chain *Chain, node *pyast.Compare) (string, error) {
	parentPrec := PrecedenceOf(node)

	out, err := wrapOperand(chain, node.Left, parentPrec, false)
	if err != nil {
		return "", err
	}

	// A chain of comparisons shares one precedence context: each
	// (operator, operand) pair is concatenated, never nested.
	for i, op := range node.Ops {
		rhs, rerr := wrapOperand(chain, node.Comparators[i], parentPrec, false)
		if rerr != nil {
			return "", rerr
		}

		out += " " + g.compareOps[op] + " " + rhs
	}

	return out, nil
}

func (g *ExpressionCompiler) renderBoolOp(chain *Chain, node *pyast.BoolOp) (string, error) {
	parentPrec := PrecedenceOf(node)
	values := make([]string, len(node.Values))

	for i, value := range node.Values {
		latex, err := wrapOperand(chain, value, parentPrec, false)
		if err != nil {
			return "", err
		}

		values[i] = latex
	}

	return strings.Join(values, " "+boolOps[node.Op]+" "), nil
}

func (g *ExpressionCompiler) renderCall(chain *Chain, node *pyast.Call) (string, error) {
	name, hasName := pyast.FunctionName(node)

	rule, known := FunctionRule{}, false
	if hasName {
		rule, known = builtinFuncs[name]
	}

	if !known {
		fnLatex, err := chain.Render(node.Func)
		if err != nil {
			return "", err
		}

		rule = FunctionRule{Left: fnLatex}
	}

	var elements []string

	if rule.IsUnary && len(node.Args) == 1 {
		arg := node.Args[0]

		// Factorial's postfix "!" is ambiguous without explicit grouping
		// on both sides, and a pow argument would bind its superscript to
		// the wrong operand.
		force := false
		if argCall, ok := arg.(*pyast.Call); ok {
			argName, _ := pyast.FunctionName(argCall)
			force = name == "factorial" || argName == "factorial"
		}

		if argBin, ok := arg.(*pyast.BinOp); ok && argBin.Op == pyast.OpPow {
			force = true
		}

		argLatex, err := wrapOperand(chain, arg, CallPrecedence, force)
		if err != nil {
			return "", err
		}

		elements = []string{rule.Left, argLatex, rule.Right}
	} else {
		args, err := chain.RenderAll(node.Args, ", ")
		if err != nil {
			return "", err
		}

		if rule.IsWrapped {
			elements = []string{rule.Left, args, rule.Right}
		} else {
			elements = []string{rule.Left, `\mathopen{}\left(`, args, `\mathclose{}\right)`, rule.Right}
		}
	}

	nonEmpty := make([]string, 0, len(elements))

	for _, element := range elements {
		if element != "" {
			nonEmpty = append(nonEmpty, element)
		}
	}

	return strings.Join(nonEmpty, " "), nil
}

func renderCollection(chain *Chain, elts []pyast.Expr, left, right string) (string, error) {
	inner, err := chain.RenderAll(elts, ", ")
	if err != nil {
		return "", err
	}

	return left + inner + right, nil
}

func renderComp(chain *Chain, elt pyast.Expr, gens []*pyast.Comprehension, left, right string) (string, error) {
	eltLatex, err := chain.Render(elt)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(gens))

	for i, gen := range gens {
		latex, gerr := chain.Render(gen)
		if gerr != nil {
			return "", gerr
		}

		parts[i] = latex
	}

	return left + eltLatex + ` \mid ` + strings.Join(parts, ", ") + right, nil
}

func (g *ExpressionCompiler) renderComprehension(chain *Chain, node *pyast.Comprehension) (string, error) {
	target, err := chain.Render(node.Target)
	if err != nil {
		return "", err
	}

	iter, err := chain.Render(node.Iter)
	if err != nil {
		return "", err
	}

	head := target + ` \in ` + iter
	if len(node.Ifs) == 0 {
		return head, nil
	}

	conds := []string{head}

	for _, cond := range node.Ifs {
		latex, cerr := chain.Render(cond)
		if cerr != nil {
			return "", cerr
		}

		conds = append(conds, latex)
	}

	for i, cond := range conds {
		conds[i] = wrapParens(cond)
	}

	return strings.Join(conds, ` \land `), nil
}

func (g *ExpressionCompiler) renderIfExp(chain *Chain, node *pyast.IfExp) (string, error) {
	// A chain of conditional expressions becomes a single case bracket
	// with one row per condition and a final otherwise row.
	latex := `\left\{ \begin{array}{ll} `

	var current pyast.Expr = node

	for {
		ifexp, ok := current.(*pyast.IfExp)
		if !ok {
			break
		}

		cond, err := chain.Render(ifexp.Test)
		if err != nil {
			return "", err
		}

		body, err := chain.Render(ifexp.Body)
		if err != nil {
			return "", err
		}

		latex += body + `, & \mathrm{if} \ ` + cond + ` \\ `
		current = ifexp.OrElse
	}

	otherwise, err := chain.Render(current)
	if err != nil {
		return "", err
	}

	return latex + otherwise + `, & \mathrm{otherwise} \end{array} \right.`, nil
}

// flattenSubscript converts x[i][j][...] into the root value and the flat
// list of index renderings.
func flattenSubscript(chain *Chain, node *pyast.Subscript) (string, []string, error) {
	var (
		value   string
		indices []string
		err     error
	)

	if inner, ok := node.Value.(*pyast.Subscript); ok {
		value, indices, err = flattenSubscript(chain, inner)
	} else {
		value, err = chain.Render(node.Value)
	}

	if err != nil {
		return "", nil, err
	}

	index, err := chain.Render(node.Index)
	if err != nil {
		return "", nil, err
	}

	return value, append(indices, index), nil
}

func (g *ExpressionCompiler) renderSubscript(chain *Chain, node *pyast.Subscript) (string, error) {
	value, indices, err := flattenSubscript(chain, node)
	if err != nil {
		return "", err
	}

	return value + "_{" + strings.Join(indices, ", ") + "}", nil
}

// Patterns classifying rendered fragment boundaries for multiplication
// elision.
var (
	rBracketPattern = regexp.MustCompile(`\\mathclose[^ ]+$`)
	rWordPattern    = regexp.MustCompile(`\\mathrm\{[^ ]+\}$`)
)

// Leaf classes for the elision decision.
const (
	multClassCall    = 'f'
	multClassBracket = 'b'
	multClassWord    = 'w'
	multClassNumeral = 'n'
	multClassAtom    = 'a'
	multClassGeneral = 'm'
)

func classifyMultLeft(latex string, expr pyast.Expr) byte {
	if _, ok := expr.(*pyast.Call); ok {
		return multClassCall
	}

	if rBracketPattern.MatchString(latex) {
		return multClassBracket
	}

	if rWordPattern.MatchString(latex) {
		return multClassWord
	}

	if runes := []rune(latex); len(runes) > 0 && unicode.IsDigit(runes[len(runes)-1]) {
		return multClassNumeral
	}

	// Descend to the rightmost effective leaf.
	leaf := expr

descend:
	for {
		switch e := leaf.(type) {
		case *pyast.UnaryOp:
			leaf = e.Operand
		case *pyast.BinOp:
			leaf = e.Right
		case *pyast.Compare:
			leaf = e.Comparators[len(e.Comparators)-1]
		case *pyast.BoolOp:
			leaf = e.Values[len(e.Values)-1]
		default:
			break descend
		}
	}

	if name, ok := leaf.(*pyast.Name); ok && len(name.Ident) == 1 {
		return multClassAtom
	}

	return multClassGeneral
}

// classifyMultRight also reports whether elision is ruled out entirely: a
// unary minus on the right is never elided to avoid confusion with
// subtraction.
func classifyMultRight(latex string, expr pyast.Expr) (byte, bool) {
	if _, ok := expr.(*pyast.Call); ok {
		return multClassCall, false
	}

	if strings.HasPrefix(latex, `\mathopen`) {
		return multClassBracket, false
	}

	if strings.HasPrefix(latex, `\mathrm`) {
		return multClassWord, false
	}

	if runes := []rune(latex); len(runes) > 0 && unicode.IsDigit(runes[0]) {
		return multClassNumeral, false
	}

	// Descend to the leftmost effective leaf.
	leaf := expr

descend:
	for {
		switch e := leaf.(type) {
		case *pyast.UnaryOp:
			if e.Op == pyast.OpUSub {
				return 0, true
			}

			leaf = e.Operand
		case *pyast.BinOp:
			leaf = e.Left
		case *pyast.Compare:
			leaf = e.Left
		case *pyast.BoolOp:
			leaf = e.Values[0]
		default:
			break descend
		}
	}

	if name, ok := leaf.(*pyast.Name); ok && len(name.Ident) == 1 {
		return multClassAtom, false
	}

	return multClassGeneral, false
}

// shouldElideMultOp decides whether a product prints an explicit \cdot or
// relies on implicit adjacency. This is a deliberately partial, ad hoc
// approximation of visually correct adjacency; the exact decision table is
// pinned down by the package tests.
func shouldElideMultOp(lLatex, rLatex string, lExpr, rExpr pyast.Expr) bool {
	lClass := classifyMultLeft(lLatex, lExpr)

	rClass, never := classifyMultRight(rLatex, rExpr)
	if never {
		return false
	}

	// Numerals never touch a preceding factor without a glyph.
	if rClass == multClassNumeral {
		return false
	}

	if lClass == multClassBracket || lClass == multClassNumeral {
		return true
	}

	lPlain := lClass == multClassAtom || lClass == multClassGeneral
	rPlain := rClass == multClassAtom || rClass == multClassGeneral

	return lPlain && rPlain
}
