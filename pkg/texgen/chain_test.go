package texgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
	"github.com/Sumatoshi-tech/texfang/pkg/texgen"
)

// constPlugin renders every Name node as a fixed string and declines
// everything else.
type constPlugin struct {
	out string
}

func (p constPlugin) Render(_ *texgen.Chain, node pyast.Node) (string, error) {
	if _, ok := node.(*pyast.Name); !ok {
		return "", texgen.ErrSkip
	}

	return p.out, nil
}

func TestChainFirstPluginWins(t *testing.T) {
	t.Parallel()

	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{UseMathrm: true})
	chain := texgen.NewChain(constPlugin{out: "first"}, constPlugin{out: "second"}, compiler)

	got, err := chain.Render(parseExpr(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestChainSkipFallsThrough(t *testing.T) {
	t.Parallel()

	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{UseMathrm: true})
	chain := texgen.NewChain(constPlugin{out: "name"}, compiler)

	// The custom plugin declines constants, so the compiler renders them.
	got, err := chain.Render(parseExpr(t, "42"))
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	// Inner nodes also route through the whole chain.
	got, err = chain.Render(parseExpr(t, "x + 42"))
	require.NoError(t, err)
	assert.Equal(t, "name + 42", got)
}

func TestChainAllDecline(t *testing.T) {
	t.Parallel()

	chain := texgen.NewChain(constPlugin{out: "name"})

	_, err := chain.Render(parseExpr(t, "42"))
	require.Error(t, err)

	var unsupported *texgen.UnsupportedError

	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Error(), "unsupported syntax")
}

func TestRenderAllJoinsWithSeparator(t *testing.T) {
	t.Parallel()

	compiler := texgen.NewExpressionCompiler(texgen.CompilerConfig{UseMathrm: true})
	chain := texgen.NewChain(compiler)

	elts := []pyast.Expr{
		&pyast.Name{Ident: "a"},
		&pyast.Name{Ident: "b"},
		&pyast.Name{Ident: "c"},
	}

	got, err := chain.RenderAll(elts, " & ")
	require.NoError(t, err)
	assert.Equal(t, "a & b & c", got)
}
