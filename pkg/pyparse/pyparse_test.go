package pyparse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
	"github.com/Sumatoshi-tech/texfang/pkg/pyparse"
)

var parser = pyparse.NewParser()

func parse(t *testing.T, src string) *pyast.Module {
	t.Helper()

	mod, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	return mod
}

func firstExpr(t *testing.T, src string) pyast.Expr {
	t.Helper()

	stmt, ok := parse(t, src).Body[0].(*pyast.ExprStmt)
	require.True(t, ok, "expected expression statement for %q", src)

	return stmt.Value
}

func TestParseFunctionDef(t *testing.T) {
	t.Parallel()

	mod := parse(t, "def f(x):\n    return x\n")
	require.Len(t, mod.Body, 1)

	fn, ok := mod.Body[0].(*pyast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, "x", fn.Args[0].Name)

	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*pyast.Return)
	require.True(t, ok)

	name, ok := ret.Value.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "x", name.Ident)
}

func TestParseAnnotatedSignature(t *testing.T) {
	t.Parallel()

	mod := parse(t, "def f(x: int, y: Float[Array, \"n\"]) -> int:\n    return x\n")

	fn, ok := mod.Body[0].(*pyast.FunctionDef)
	require.True(t, ok)
	require.Len(t, fn.Args, 2)

	first, ok := fn.Args[0].Annotation.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "int", first.Ident)

	second, ok := fn.Args[1].Annotation.(*pyast.Subscript)
	require.True(t, ok)

	base, ok := second.Value.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "Float", base.Ident)

	returns, ok := fn.Returns.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "int", returns.Ident)
}

func TestParseAnnotatedDefaultParameter(t *testing.T) {
	t.Parallel()

	mod := parse(t, "def f(x: int = 0):\n    return x\n")

	fn, ok := mod.Body[0].(*pyast.FunctionDef)
	require.True(t, ok)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, "x", fn.Args[0].Name)

	annotation, ok := fn.Args[0].Annotation.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "int", annotation.Ident)
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	assign, ok := parse(t, "x = 3").Body[0].(*pyast.Assign)
	require.True(t, ok)
	require.Len(t, assign.Targets, 1)

	// Chained assignment collects every target left to right.
	assign, ok = parse(t, "a = b = 0").Body[0].(*pyast.Assign)
	require.True(t, ok)
	require.Len(t, assign.Targets, 2)

	first, ok := assign.Targets[0].(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "a", first.Ident)

	second, ok := assign.Targets[1].(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "b", second.Ident)
}

func TestParseAugmentedAssignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src string
		op  pyast.BinOpKind
	}{
		{"x += 1", pyast.OpAdd},
		{"x -= 1", pyast.OpSub},
		{"x *= 2", pyast.OpMult},
		{"x /= 2", pyast.OpDiv},
		{"x //= 2", pyast.OpFloorDiv},
		{"x %= 2", pyast.OpMod},
		{"x **= 2", pyast.OpPow},
		{"x <<= 1", pyast.OpLShift},
		{"x >>= 1", pyast.OpRShift},
		{"x &= y", pyast.OpBitAnd},
		{"x ^= y", pyast.OpBitXor},
		{"x |= y", pyast.OpBitOr},
	}

	for _, tc := range tests {
		aug, ok := parse(t, tc.src).Body[0].(*pyast.AugAssign)
		require.True(t, ok, "parse %q", tc.src)
		assert.Equal(t, tc.op, aug.Op, "parse %q", tc.src)
	}
}

func TestParseOperators(t *testing.T) {
	t.Parallel()

	bin, ok := firstExpr(t, "a + b * c").(*pyast.BinOp)
	require.True(t, ok)
	assert.Equal(t, pyast.OpAdd, bin.Op)

	right, ok := bin.Right.(*pyast.BinOp)
	require.True(t, ok)
	assert.Equal(t, pyast.OpMult, right.Op)

	cmp, ok := firstExpr(t, "a < b <= c").(*pyast.Compare)
	require.True(t, ok)
	require.Len(t, cmp.Ops, 2)
	assert.Equal(t, pyast.OpLt, cmp.Ops[0])
	assert.Equal(t, pyast.OpLtE, cmp.Ops[1])
	require.Len(t, cmp.Comparators, 2)

	cmp, ok = firstExpr(t, "x not in S").(*pyast.Compare)
	require.True(t, ok)
	require.Len(t, cmp.Ops, 1)
	assert.Equal(t, pyast.OpNotIn, cmp.Ops[0])

	cmp, ok = firstExpr(t, "x is not None").(*pyast.Compare)
	require.True(t, ok)
	require.Len(t, cmp.Ops, 1)
	assert.Equal(t, pyast.OpIsNot, cmp.Ops[0])
}

func TestParseBoolOpFlattening(t *testing.T) {
	t.Parallel()

	boolOp, ok := firstExpr(t, "a and b and c").(*pyast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, pyast.OpAnd, boolOp.Op)
	assert.Len(t, boolOp.Values, 3)

	// Mixed operators stay nested.
	boolOp, ok = firstExpr(t, "a or b and c").(*pyast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, pyast.OpOr, boolOp.Op)
	require.Len(t, boolOp.Values, 2)
	assert.IsType(t, &pyast.BoolOp{}, boolOp.Values[1])
}

func TestParseConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src string
		tag pyast.ConstTag
	}{
		{"None", pyast.ConstNone},
		{"True", pyast.ConstBool},
		{"False", pyast.ConstBool},
		{"42", pyast.ConstInt},
		{"3.14", pyast.ConstFloat},
		{`"hello"`, pyast.ConstStr},
		{"...", pyast.ConstEllipsis},
	}

	for _, tc := range tests {
		constant, ok := firstExpr(t, tc.src).(*pyast.Constant)
		require.True(t, ok, "parse %q", tc.src)
		assert.Equal(t, tc.tag, constant.Tag, "parse %q", tc.src)
	}
}

func TestParseIntSpellingPreserved(t *testing.T) {
	t.Parallel()

	constant, ok := firstExpr(t, "0x10").(*pyast.Constant)
	require.True(t, ok)
	assert.Equal(t, pyast.ConstInt, constant.Tag)
	assert.Equal(t, int64(16), constant.Int)
	assert.Equal(t, "0x10", constant.Text)

	constant, ok = firstExpr(t, "1_000").(*pyast.Constant)
	require.True(t, ok)
	assert.Equal(t, int64(1000), constant.Int)
}

func TestParseStringContent(t *testing.T) {
	t.Parallel()

	constant, ok := firstExpr(t, `"n m"`).(*pyast.Constant)
	require.True(t, ok)
	assert.Equal(t, pyast.ConstStr, constant.Tag)
	assert.Equal(t, "n m", constant.Str)
}

func TestParseCallWithGenerator(t *testing.T) {
	t.Parallel()

	call, ok := firstExpr(t, "sum(i for i in range(n))").(*pyast.Call)
	require.True(t, ok)

	name, ok := pyast.FunctionName(call)
	require.True(t, ok)
	assert.Equal(t, "sum", name)

	require.Len(t, call.Args, 1)

	gen, ok := call.Args[0].(*pyast.GeneratorExp)
	require.True(t, ok)
	require.Len(t, gen.Generators, 1)

	iter, ok := gen.Generators[0].Iter.(*pyast.Call)
	require.True(t, ok)

	iterName, ok := pyast.FunctionName(iter)
	require.True(t, ok)
	assert.Equal(t, "range", iterName)
}

func TestParseComprehensionConditions(t *testing.T) {
	t.Parallel()

	listComp, ok := firstExpr(t, "[i for i in x if i < y if i > z]").(*pyast.ListComp)
	require.True(t, ok)
	require.Len(t, listComp.Generators, 1)
	assert.Len(t, listComp.Generators[0].Ifs, 2)

	setComp, ok := firstExpr(t, "{i for y in x for i in y}").(*pyast.SetComp)
	require.True(t, ok)
	assert.Len(t, setComp.Generators, 2)
}

func TestParseAttributesAndSubscripts(t *testing.T) {
	t.Parallel()

	attr, ok := firstExpr(t, "np.linalg.norm").(*pyast.Attribute)
	require.True(t, ok)

	parts, err := pyast.AnalyzeAttribute(attr)
	require.NoError(t, err)
	assert.Equal(t, []string{"np", "linalg", "norm"}, parts)

	sub, ok := firstExpr(t, "x[i]").(*pyast.Subscript)
	require.True(t, ok)
	assert.IsType(t, &pyast.Name{}, sub.Index)

	sub, ok = firstExpr(t, "x[i, j]").(*pyast.Subscript)
	require.True(t, ok)
	assert.IsType(t, &pyast.Tuple{}, sub.Index)
}

func TestParseIfElifChain(t *testing.T) {
	t.Parallel()

	src := "if x < 0:\n" +
		"    y = 0\n" +
		"elif x < 10:\n" +
		"    y = 1\n" +
		"else:\n" +
		"    y = 2\n"

	ifStmt, ok := parse(t, src).Body[0].(*pyast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.OrElse, 1)

	elif, ok := ifStmt.OrElse[0].(*pyast.If)
	require.True(t, ok)
	assert.Len(t, elif.OrElse, 1)
}

func TestParseForWhileWithElse(t *testing.T) {
	t.Parallel()

	forStmt, ok := parse(t, "for i in x:\n    y = i\nelse:\n    y = 0\n").Body[0].(*pyast.For)
	require.True(t, ok)
	assert.Len(t, forStmt.OrElse, 1)

	whileStmt, ok := parse(t, "while x:\n    y = 1\n").Body[0].(*pyast.While)
	require.True(t, ok)
	assert.Empty(t, whileStmt.OrElse)
}

func TestParseMatchStatement(t *testing.T) {
	t.Parallel()

	src := "match x:\n" +
		"    case 0:\n" +
		"        return 1\n" +
		"    case _:\n" +
		"        return 2\n"

	match, ok := parse(t, src).Body[0].(*pyast.Match)
	require.True(t, ok)
	require.Len(t, match.Cases, 2)

	value, ok := match.Cases[0].Pattern.(*pyast.MatchValue)
	require.True(t, ok)
	assert.IsType(t, &pyast.Constant{}, value.Value)

	wildcard, ok := match.Cases[1].Pattern.(*pyast.MatchAs)
	require.True(t, ok)
	assert.Empty(t, wildcard.Name)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	sources := []string{
		"",
		"def f(:\n",
		"x ===== y",
		"(((",
	}

	for _, src := range sources {
		_, err := parser.Parse(context.Background(), src)
		require.Error(t, err, "source %q", src)
		assert.ErrorIs(t, err, pyparse.ErrParse, "source %q", src)
	}
}

func TestParseErrorIncludesPosition(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse(context.Background(), "x = 1\nimport math\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, pyparse.ErrParse)
	assert.Contains(t, err.Error(), "unsupported statement: import_statement at 2:1")
}

func TestParseFStringUnsupported(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse(context.Background(), `f"{x}"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, pyparse.ErrParse)
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	mod := parse(t, "# leading comment\nx = 1  # trailing\n")
	require.Len(t, mod.Body, 1)
	assert.IsType(t, &pyast.Assign{}, mod.Body[0])
}
