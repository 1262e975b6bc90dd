package texify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/pyparse"
	"github.com/Sumatoshi-tech/texfang/pkg/texify"
)

func generate(t *testing.T, source string, opts ...texify.Option) string {
	t.Helper()

	latex, err := texify.Generate(context.Background(), source, opts...)
	require.NoError(t, err)

	return latex
}

func TestGenerateDefaultStyle(t *testing.T) {
	t.Parallel()

	src := "def solve(a, b, c):\n" +
		"    return (-b + sqrt(b**2 - 4 * a * c)) / (2 * a)\n"

	want := `\mathrm{solve}(a, b, c) = \frac{-b + \sqrt{ b^{2} - 4 a c }}{2 a}`
	assert.Equal(t, want, generate(t, src))
}

func TestGenerateBareExpression(t *testing.T) {
	t.Parallel()

	// A single expression statement renders without any statement
	// scaffolding.
	assert.Equal(t, "x + y", generate(t, "x + y"))
	assert.Equal(t, `\frac{a}{b}`, generate(t, "a / b"))
}

func TestGenerateIdentifiers(t *testing.T) {
	t.Parallel()

	src := "def myfn(myvar):\n    return 3 * myvar\n"

	assert.Equal(t, `\mathrm{myfn}(\mathrm{myvar}) = 3 \mathrm{myvar}`, generate(t, src))

	got := generate(t, src, texify.WithIdentifiers(map[string]string{
		"myfn":  "f",
		"myvar": "x",
	}))
	assert.Equal(t, "f(x) = 3 x", got)
}

func TestGeneratePrefixes(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n    return abc.d + x.y.z.e\n"

	assert.Equal(t, `f(x) = \mathrm{abc}.d + x.y.z.e`, generate(t, src))
	assert.Equal(t, "f(x) = d + x.y.z.e", generate(t, src, texify.WithPrefixes("abc")))
	assert.Equal(t, `f(x) = \mathrm{abc}.d + y.z.e`, generate(t, src, texify.WithPrefixes("x")))
	assert.Equal(t, `f(x) = \mathrm{abc}.d + z.e`, generate(t, src, texify.WithPrefixes("x.y")))
	assert.Equal(t, "f(x) = d + e", generate(t, src, texify.WithPrefixes("abc", "x.y.z")))
	assert.Equal(t, "f(x) = d + e", generate(t, src, texify.WithPrefixes("abc", "x", "x.y.z")))
}

func TestGenerateReduceAssignments(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n    y = 3 * x\n    return y\n"

	want := `\begin{array}{l} y = 3 x \\ f(x) = y \end{array}`
	assert.Equal(t, want, generate(t, src))
	assert.Equal(t, want, generate(t, src, texify.WithReduceAssignments(false)))
	assert.Equal(t, "f(x) = 3 x", generate(t, src, texify.WithReduceAssignments(true)))
}

func TestGenerateReduceAssignmentsWithDocstring(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n" +
		"    \"\"\"DocstringRemover is required.\"\"\"\n" +
		"    y = 3 * x\n" +
		"    return y\n"

	assert.Equal(t, "f(x) = 3 x", generate(t, src, texify.WithReduceAssignments(true)))
}

func TestGenerateReduceAssignmentsWithAugAssign(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n    y = 3\n    y *= x\n    return y\n"

	want := `\begin{array}{l} y = 3 \\ y = y x \\ f(x) = y \end{array}`
	assert.Equal(t, want, generate(t, src))
	assert.Equal(t, "f(x) = 3 x", generate(t, src, texify.WithReduceAssignments(true)))
}

func TestGenerateMathSymbols(t *testing.T) {
	t.Parallel()

	src := "def f(alpha):\n    return alpha\n"

	assert.Equal(t, `f(\mathrm{alpha}) = \mathrm{alpha}`, generate(t, src))
	assert.Equal(t, `f(\mathrm{alpha}) = \mathrm{alpha}`, generate(t, src, texify.WithMathSymbols(false)))
	assert.Equal(t, `f(\alpha) = \alpha`, generate(t, src, texify.WithMathSymbols(true)))
}

func TestGenerateSignature(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n    return x\n"

	assert.Equal(t, "f(x) = x", generate(t, src))
	assert.Equal(t, "x", generate(t, src, texify.WithSignature(false)))
	assert.Equal(t, "f(x) = x", generate(t, src, texify.WithSignature(true)))
}

func TestGenerateSetSymbols(t *testing.T) {
	t.Parallel()

	src := "def f(x, y):\n    return x & y\n"

	assert.Equal(t, `f(x, y) = x \mathbin{\&} y`, generate(t, src))
	assert.Equal(t, `f(x, y) = x \cap y`, generate(t, src, texify.WithSetSymbols(true)))
}

func TestGenerateExpandFunctions(t *testing.T) {
	t.Parallel()

	src := "def f(x):\n    return exp(x)\n"

	assert.Equal(t, `f(x) = \exp x`, generate(t, src))
	assert.Equal(t, "f(x) = e^{x}", generate(t, src, texify.WithExpandFunctions("exp")))
}

func TestGenerateLatexOverrides(t *testing.T) {
	t.Parallel()

	src := "def f(theta):\n    return 2 * theta\n"

	got := generate(t, src, texify.WithLatexOverrides(map[string]string{"theta": `\theta`}))
	assert.Equal(t, `f(\theta) = 2 \theta`, got)
}

func TestExpressionStyle(t *testing.T) {
	t.Parallel()

	got, err := texify.Expression(context.Background(), "def f(x):\n    return x\n")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestAlgorithmicStyle(t *testing.T) {
	t.Parallel()

	got, err := texify.Algorithmic(context.Background(), "def f(x):\n    return x\n")
	require.NoError(t, err)

	want := "\\begin{algorithmic}\n" +
		"    \\Function{f}{$x$}\n" +
		"        \\State \\Return $x$\n" +
		"    \\EndFunction\n" +
		"\\end{algorithmic}"
	assert.Equal(t, want, got)
}

func TestNotebookStyle(t *testing.T) {
	t.Parallel()

	got := generate(t, "def f(x):\n    return x\n", texify.WithStyle(texify.StyleNotebook))

	want := `\begin{array}{l} \mathbf{function} \ f(x) \\ ` +
		`\hspace{1em} \mathbf{return} \ x \\ \mathbf{end \ function} \end{array}`
	assert.Equal(t, want, got)
}

func TestGenerateSumOverRange(t *testing.T) {
	t.Parallel()

	src := "def sum_with_limit(n):\n    return sum(i**2 for i in range(n))\n"

	want := `\mathrm{sum\_with\_limit}(n) = \sum_{i = 0}^{n - 1}` +
		` \mathopen{}\left({i^{2}}\mathclose{}\right)`
	assert.Equal(t, want, generate(t, src))
}

func TestGeneratePinvSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\mathbf{A}^{\dagger}`, generate(t, "pinv(A)"))
	assert.Equal(t, `\mathbf{A}^{+}`, generate(t, "pinv(A)", texify.WithPinvSymbol("+")))
}

func TestGenerateParseError(t *testing.T) {
	t.Parallel()

	_, err := texify.Generate(context.Background(), "def f(:\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, pyparse.ErrParse)
}

func TestWithFallback(t *testing.T) {
	t.Parallel()

	got := texify.WithFallback(context.Background(), "def f(x):\n    return x\n")
	assert.Equal(t, "f(x) = x", got)

	got = texify.WithFallback(context.Background(), "def f(:\n")
	assert.Contains(t, got, "error: ")
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"function", "expression", "algorithmic", "notebook"} {
		style, err := texify.ParseStyle(name)
		require.NoError(t, err)
		assert.Equal(t, texify.Style(name), style)
	}

	_, err := texify.ParseStyle("fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized style")
}
