package texgen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
	"github.com/Sumatoshi-tech/texfang/pkg/pyparse"
	"github.com/Sumatoshi-tech/texfang/pkg/texgen"
)

var testParser = pyparse.NewParser()

func parseModule(t *testing.T, src string) *pyast.Module {
	t.Helper()

	mod, err := testParser.Parse(context.Background(), src)
	require.NoError(t, err)

	return mod
}

func parseStmt(t *testing.T, src string) pyast.Stmt {
	t.Helper()

	mod := parseModule(t, src)
	require.NotEmpty(t, mod.Body)

	return mod.Body[0]
}

func parseExpr(t *testing.T, src string) pyast.Expr {
	t.Helper()

	stmt, ok := parseStmt(t, src).(*pyast.ExprStmt)
	require.True(t, ok, "expected an expression statement for %q", src)

	return stmt.Value
}

// exprChain builds the default expression rendering chain used by most
// tests: domain plugins in front of the generic compiler.
func exprChain(cfg texgen.CompilerConfig) *texgen.Chain {
	compiler := texgen.NewExpressionCompiler(cfg)

	return texgen.NewChain(
		texgen.TypeAnnotationPlugin{},
		texgen.SumProdPlugin{},
		texgen.NewMatrixPlugin(""),
		compiler,
	)
}

func renderExpr(t *testing.T, src string) string {
	t.Helper()

	latex, err := exprChain(texgen.CompilerConfig{UseMathrm: true}).Render(parseExpr(t, src))
	require.NoError(t, err)

	return latex
}

// functionChain adds the single-equation statement renderer to the default
// expression chain.
func functionChain(useSignature bool) *texgen.Chain {
	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{UseMathrm: true})

	return texgen.NewChain(
		texgen.TypeAnnotationPlugin{},
		texgen.SumProdPlugin{},
		texgen.NewMatrixPlugin(""),
		texgen.NewFunctionCodegen(compiler.Identifiers(), useSignature),
		compiler,
	)
}

// algoChain adds the pseudocode statement renderer to the default
// expression chain.
func algoChain(notebook bool) *texgen.Chain {
	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{UseMathrm: true})

	return texgen.NewChain(
		texgen.TypeAnnotationPlugin{},
		texgen.SumProdPlugin{},
		texgen.NewMatrixPlugin(""),
		texgen.NewAlgorithmicCodegen(compiler.Identifiers(), notebook),
		compiler,
	)
}
