package texgen

import (
	"strings"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

// FunctionCodegen renders a FunctionDef as a single display equation:
// signature, optional leading assignments wrapped in an array environment,
// and the final return expression (or case bracket). It joins a chain as a
// statement-level plugin and delegates expressions back to the chain.
type FunctionCodegen struct {
	ident        *IdentifierConverter
	useSignature bool
}

// NewFunctionCodegen creates a function renderer sharing the chain's
// identifier converter.
func NewFunctionCodegen(ident *IdentifierConverter, useSignature bool) *FunctionCodegen {
	return &FunctionCodegen{ident: ident, useSignature: useSignature}
}

// Render renders statement nodes of the function style; expression nodes
// are declined.
func (g *FunctionCodegen) Render(chain *Chain, node pyast.Node) (string, error) {
	switch n := node.(type) {
	case *pyast.Module:
		return chain.Render(n.Body[0])
	case *pyast.FunctionDef:
		return g.renderFunctionDef(chain, n)
	case *pyast.Assign:
		return renderAssign(chain, n, " = ")
	case *pyast.Return:
		return renderReturn(chain, n)
	case *pyast.If:
		return g.renderIf(chain, n)
	case *pyast.Match:
		return g.renderMatch(chain, n)
	case *pyast.MatchValue:
		value, err := chain.Render(n.Value)
		if err != nil {
			return "", err
		}

		return " = " + value, nil
	default:
		return "", ErrSkip
	}
}

func (g *FunctionCodegen) renderFunctionDef(chain *Chain, node *pyast.FunctionDef) (string, error) {
	name, _ := g.ident.Convert(node.Name)

	var bodyStrs []string

	// Leading statements must be assignments; constant expression
	// statements (docstrings) are skipped.
	for _, child := range node.Body[:len(node.Body)-1] {
		if expr, ok := child.(*pyast.ExprStmt); ok && pyast.IsConstant(expr.Value) {
			continue
		}

		assign, ok := child.(*pyast.Assign)
		if !ok {
			return "", &UnsupportedError{
				Construct: string(child.Kind()) + " (only assignments are supported in multiline functions)",
			}
		}

		latex, err := renderAssign(chain, assign, " = ")
		if err != nil {
			return "", err
		}

		bodyStrs = append(bodyStrs, latex)
	}

	last := node.Body[len(node.Body)-1]

	switch last.(type) {
	case *pyast.Return, *pyast.If, *pyast.Match:
	default:
		return "", &SyntaxError{Msg: "unsupported last statement: " + string(last.Kind())}
	}

	returnStr, err := chain.Render(last)
	if err != nil {
		return "", err
	}

	if g.useSignature {
		args, aerr := renderArgs(chain, g.ident, node.Args)
		if aerr != nil {
			return "", aerr
		}

		returnStr = name + "(" + args + ") = " + returnStr
	}

	if len(bodyStrs) == 0 {
		return returnStr, nil
	}

	bodyStrs = append(bodyStrs, returnStr)

	return `\begin{array}{l} ` + strings.Join(bodyStrs, ` \\ `) + ` \end{array}`, nil
}

// renderArgs renders a parameter list, including type annotations.
func renderArgs(chain *Chain, ident *IdentifierConverter, args []*pyast.Arg) (string, error) {
	parts := make([]string, len(args))

	for i, arg := range args {
		name, _ := ident.Convert(arg.Name)
		if arg.Annotation != nil {
			annotation, err := chain.Render(arg.Annotation)
			if err != nil {
				return "", err
			}

			name += ": " + annotation
		}

		parts[i] = name
	}

	return strings.Join(parts, ", "), nil
}

func renderAssign(chain *Chain, node *pyast.Assign, sep string) (string, error) {
	operands := make([]string, 0, len(node.Targets)+1)

	for _, target := range node.Targets {
		latex, err := chain.Render(target)
		if err != nil {
			return "", err
		}

		operands = append(operands, latex)
	}

	value, err := chain.Render(node.Value)
	if err != nil {
		return "", err
	}

	operands = append(operands, value)

	return strings.Join(operands, sep), nil
}

func renderReturn(chain *Chain, node *pyast.Return) (string, error) {
	if node.Value == nil {
		return `\mathrm{None}`, nil
	}

	return chain.Render(node.Value)
}

func (g *FunctionCodegen) renderIf(chain *Chain, node *pyast.If) (string, error) {
	latex := `\left\{ \begin{array}{ll} `

	var current pyast.Stmt = node

	for {
		branch, ok := current.(*pyast.If)
		if !ok {
			break
		}

		if len(branch.Body) != 1 || len(branch.OrElse) != 1 {
			return "", &SyntaxError{Msg: "multiple statements are not supported in If nodes"}
		}

		cond, err := chain.Render(branch.Test)
		if err != nil {
			return "", err
		}

		body, err := chain.Render(branch.Body[0])
		if err != nil {
			return "", err
		}

		latex += body + `, & \mathrm{if} \ ` + cond + ` \\ `
		current = branch.OrElse[0]
	}

	otherwise, err := chain.Render(current)
	if err != nil {
		return "", err
	}

	return latex + otherwise + `, & \mathrm{otherwise} \end{array} \right.`, nil
}

func (g *FunctionCodegen) renderMatch(chain *Chain, node *pyast.Match) (string, error) {
	last := len(node.Cases) - 1

	wildcard := false
	if last >= 1 {
		as, ok := node.Cases[last].Pattern.(*pyast.MatchAs)
		wildcard = ok && as.Name == ""
	}

	if !wildcard {
		return "", &SyntaxError{Msg: "match statement must contain the wildcard case"}
	}

	subject, err := chain.Render(node.Subject)
	if err != nil {
		return "", err
	}

	caseLatexes := make([]string, 0, len(node.Cases))

	for i, matchCase := range node.Cases {
		if len(matchCase.Body) != 1 {
			return "", &SyntaxError{Msg: "match cases must contain exactly 1 return statement"}
		}

		ret, ok := matchCase.Body[0].(*pyast.Return)
		if !ok {
			return "", &SyntaxError{Msg: "match cases must contain exactly 1 return statement"}
		}

		body, rerr := renderReturn(chain, ret)
		if rerr != nil {
			return "", rerr
		}

		if i < last {
			cond, perr := chain.Render(matchCase.Pattern)
			if perr != nil {
				return "", perr
			}

			caseLatexes = append(caseLatexes, body+`, & \mathrm{if} \ `+subject+cond)
		} else {
			caseLatexes = append(caseLatexes, body+`, & \mathrm{otherwise}`)
		}
	}

	return `\left\{ \begin{array}{ll} ` + strings.Join(caseLatexes, ` \\ `) + ` \end{array} \right.`, nil
}
