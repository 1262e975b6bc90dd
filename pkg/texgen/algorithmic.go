package texgen

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// algoLine is a rendered line plus its depth relative to the construct
// that produced it.
type algoLine struct {
	text string
	rel  int
}

// algoStyle abstracts the two algorithm notations: the LaTeX algorithmic
// environment and the notebook flavor built from math commands.
type algoStyle interface {
	lineBreak() string
	indent(line string, depth int) string
	statement(line string) string
	ret(value string, hasValue bool) string
	beginFor(target, iter string) string
	endFor() string
	beginWhile(cond string) string
	endWhile() string
	ifCmd(cond string) string
	elifCmd(cond string) string
	elseCmd() string
	endIf() string
	beginFunction(raw, converted, args string, top bool) []algoLine
	endFunction(top bool) []algoLine
	bodyOffset() int
}

// AlgorithmicCodegen renders statements as algorithm pseudocode. The
// indentation depth is held on the instance, so a codegen must not be
// shared across concurrent render calls; build one chain per call.
type AlgorithmicCodegen struct {
	ident *IdentifierConverter
	style algoStyle
	depth int
}

// NewAlgorithmicCodegen creates an algorithm renderer. With notebook set,
// the output avoids the algorithmic environment and uses math commands
// renderable by notebook display hooks.
func NewAlgorithmicCodegen(ident *IdentifierConverter, notebook bool) *AlgorithmicCodegen {
	var style algoStyle = texEnvStyle{}
	if notebook {
		style = notebookStyle{}
	}

	return &AlgorithmicCodegen{ident: ident, style: style}
}

// Render renders statement nodes of the algorithm style; expression nodes
// are declined.
func (g *AlgorithmicCodegen) Render(chain *Chain, node pyast.Node) (string, error) {
	switch n := node.(type) {
	case *pyast.Module:
		return chain.Render(n.Body[0])
	case *pyast.FunctionDef:
		return g.renderFunctionDef(chain, n)
	case *pyast.Assign:
		latex, err := renderAssign(chain, n, ` \gets `)
		if err != nil {
			return "", err
		}

		return g.line(g.style.statement(latex)), nil
	case *pyast.ExprStmt:
		latex, err := chain.Render(n.Value)
		if err != nil {
			return "", err
		}

		return g.line(g.style.statement(latex)), nil
	case *pyast.Return:
		return g.renderReturn(chain, n)
	case *pyast.If:
		return g.renderIf(chain, n)
	case *pyast.For:
		return g.renderFor(chain, n)
	case *pyast.While:
		return g.renderWhile(chain, n)
	case *pyast.Pass:
		return g.line(g.style.statement(`\mathbf{pass}`)), nil
	case *pyast.Break:
		return g.line(g.style.statement(`\mathbf{break}`)), nil
	case *pyast.Continue:
		return g.line(g.style.statement(`\mathbf{continue}`)), nil
	default:
		return "", ErrSkip
	}
}

func (g *AlgorithmicCodegen) line(text string) string {
	return g.style.indent(text, g.depth)
}

func (g *AlgorithmicCodegen) renderBody(chain *Chain, stmts []pyast.Stmt) ([]string, error) {
	lines := make([]string, len(stmts))

	for i, stmt := range stmts {
		latex, err := chain.Render(stmt)
		if err != nil {
			return nil, err
		}

		lines[i] = latex
	}

	return lines, nil
}

func (g *AlgorithmicCodegen) renderFunctionDef(chain *Chain, node *pyast.FunctionDef) (string, error) {
	converted, _ := g.ident.Convert(node.Name)

	args, err := renderArgs(chain, g.ident, node.Args)
	if err != nil {
		return "", err
	}

	top := g.depth == 0

	var lines []string

	for _, bl := range g.style.beginFunction(node.Name, converted, args, top) {
		lines = append(lines, g.style.indent(bl.text, g.depth+bl.rel))
	}

	base := g.depth
	g.depth = base + g.style.bodyOffset()

	body, err := g.renderBody(chain, node.Body)

	g.depth = base

	if err != nil {
		return "", err
	}

	lines = append(lines, body...)

	for _, bl := range g.style.endFunction(top) {
		lines = append(lines, g.style.indent(bl.text, g.depth+bl.rel))
	}

	return strings.Join(lines, g.style.lineBreak()), nil
}

func (g *AlgorithmicCodegen) renderReturn(chain *Chain, node *pyast.Return) (string, error) {
	if node.Value == nil {
		return g.line(g.style.ret("", false)), nil
	}

	value, err := chain.Render(node.Value)
	if err != nil {
		return "", err
	}

	return g.line(g.style.ret(value, true)), nil
}

func (g *AlgorithmicCodegen) renderFor(chain *Chain, node *pyast.For) (string, error) {
	if len(node.OrElse) != 0 {
		return "", &UnsupportedError{Construct: "For statement with the else clause"}
	}

	target, err := chain.Render(node.Target)
	if err != nil {
		return "", err
	}

	iter, err := chain.Render(node.Iter)
	if err != nil {
		return "", err
	}

	lines := []string{g.line(g.style.beginFor(target, iter))}

	g.depth++
	body, err := g.renderBody(chain, node.Body)
	g.depth--

	if err != nil {
		return "", err
	}

	lines = append(lines, body...)
	lines = append(lines, g.line(g.style.endFor()))

	return strings.Join(lines, g.style.lineBreak()), nil
}

func (g *AlgorithmicCodegen) renderWhile(chain *Chain, node *pyast.While) (string, error) {
	if len(node.OrElse) != 0 {
		return "", &UnsupportedError{Construct: "While statement with the else clause"}
	}

	cond, err := chain.Render(node.Test)
	if err != nil {
		return "", err
	}

	lines := []string{g.line(g.style.beginWhile(cond))}

	g.depth++
	body, err := g.renderBody(chain, node.Body)
	g.depth--

	if err != nil {
		return "", err
	}

	lines = append(lines, body...)
	lines = append(lines, g.line(g.style.endWhile()))

	return strings.Join(lines, g.style.lineBreak()), nil
}

func (g *AlgorithmicCodegen) renderIf(chain *Chain, node *pyast.If) (string, error) {
	branches := []*pyast.If{node}
	current := node

	for len(current.OrElse) == 1 {
		next, ok := current.OrElse[0].(*pyast.If)
		if !ok {
			break
		}

		branches = append(branches, next)
		current = next
	}

	var lines []string

	for i, branch := range branches {
		cond, err := chain.Render(branch.Test)
		if err != nil {
			return "", err
		}

		cmd := g.style.ifCmd(cond)
		if i > 0 {
			cmd = g.style.elifCmd(cond)
		}

		lines = append(lines, g.line(cmd))

		g.depth++
		body, err := g.renderBody(chain, branch.Body)
		g.depth--

		if err != nil {
			return "", err
		}

		lines = append(lines, body...)
	}

	if len(current.OrElse) > 0 {
		lines = append(lines, g.line(g.style.elseCmd()))

		g.depth++
		body, err := g.renderBody(chain, current.OrElse)
		g.depth--

		if err != nil {
			return "", err
		}

		lines = append(lines, body...)
	}

	lines = append(lines, g.line(g.style.endIf()))

	return strings.Join(lines, g.style.lineBreak()), nil
}

// texEnvStyle emits the LaTeX algorithmic environment.
type texEnvStyle struct{}

const spacesPerIndent = 4

func (texEnvStyle) lineBreak() string { return "\n" }

func (texEnvStyle) indent(line string, depth int) string {
	return strings.Repeat(" ", depth*spacesPerIndent) + line
}

func (texEnvStyle) statement(line string) string { return `\State $` + line + `$` }

func (texEnvStyle) ret(value string, hasValue bool) string {
	if hasValue {
		return `\State \Return $` + value + `$`
	}

	return `\State \Return`
}

func (texEnvStyle) beginFor(target, iter string) string {
	return `\For{$` + target + ` \in ` + iter + `$}`
}

func (texEnvStyle) endFor() string { return `\EndFor` }

func (texEnvStyle) beginWhile(cond string) string { return `\While{$` + cond + `$}` }

func (texEnvStyle) endWhile() string { return `\EndWhile` }

func (texEnvStyle) ifCmd(cond string) string { return `\If{$` + cond + `$}` }

func (texEnvStyle) elifCmd(cond string) string { return `\ElsIf{$` + cond + `$}` }

func (texEnvStyle) elseCmd() string { return `\Else` }

func (texEnvStyle) endIf() string { return `\EndIf` }

func (texEnvStyle) beginFunction(raw, _, args string, top bool) []algoLine {
	header := algoLine{text: `\Function{` + raw + `}{$` + args + `$}`, rel: 1}
	if top {
		return []algoLine{{text: `\begin{algorithmic}`, rel: 0}, header}
	}

	return []algoLine{header}
}

func (texEnvStyle) endFunction(top bool) []algoLine {
	footer := algoLine{text: `\EndFunction`, rel: 1}
	if top {
		return []algoLine{footer, {text: `\end{algorithmic}`, rel: 0}}
	}

	return []algoLine{footer}
}

func (texEnvStyle) bodyOffset() int { return 2 }

// notebookStyle emits math commands renderable without the algorithmic
// package, indenting with horizontal space.
type notebookStyle struct{}

const emPerIndent = 1

func (notebookStyle) lineBreak() string { return ` \\ ` }

func (notebookStyle) indent(line string, depth int) string {
	if depth <= 0 {
		return line
	}

	return fmt.Sprintf(`\hspace{%dem} %s`, depth*emPerIndent, line)
}

func (notebookStyle) statement(line string) string { return line }

func (notebookStyle) ret(value string, hasValue bool) string {
	if hasValue {
		return `\mathbf{return} \ ` + value
	}

	return `\mathbf{return}`
}

func (notebookStyle) beginFor(target, iter string) string {
	return `\mathbf{for} \ ` + target + ` \in ` + iter + ` \ \mathbf{do}`
}

func (notebookStyle) endFor() string { return `\mathbf{end \ for}` }

func (notebookStyle) beginWhile(cond string) string { return `\mathbf{while} \ ` + cond }

func (notebookStyle) endWhile() string { return `\mathbf{end \ while}` }

func (notebookStyle) ifCmd(cond string) string { return `\mathbf{if} \ ` + cond }

func (notebookStyle) elifCmd(cond string) string { return `\mathbf{else if} \ ` + cond }

func (notebookStyle) elseCmd() string { return `\mathbf{else}` }

func (notebookStyle) endIf() string { return `\mathbf{end \ if}` }

func (notebookStyle) beginFunction(_, converted, args string, top bool) []algoLine {
	header := `\mathbf{function} \ ` + converted + `(` + args + `)`
	if top {
		header = `\begin{array}{l} ` + header
	}

	return []algoLine{{text: header, rel: 0}}
}

func (notebookStyle) endFunction(top bool) []algoLine {
	footer := `\mathbf{end \ function}`
	if top {
		footer += ` \end{array}`
	}

	return []algoLine{{text: footer, rel: 0}}
}

func (notebookStyle) bodyOffset() int { return 1 }
