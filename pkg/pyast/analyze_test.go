package pyast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/texfang/pkg/pyast"
)

func rangeCall(args ...pyast.Expr) *pyast.Call {
	return &pyast.Call{Func: &pyast.Name{Ident: "range"}, Args: args}
}

func TestAnalyzeRangeDefaults(t *testing.T) {
	t.Parallel()

	info, err := pyast.AnalyzeRange(rangeCall(&pyast.Name{Ident: "n"}))
	require.NoError(t, err)

	// Omitted start and step default to the literals 0 and 1.
	require.NotNil(t, info.StartInt)
	assert.Equal(t, int64(0), *info.StartInt)
	require.NotNil(t, info.StepInt)
	assert.Equal(t, int64(1), *info.StepInt)
	assert.Nil(t, info.StopInt)

	stop, ok := info.Stop.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "n", stop.Ident)
}

func TestAnalyzeRangeLiteralArguments(t *testing.T) {
	t.Parallel()

	info, err := pyast.AnalyzeRange(rangeCall(pyast.MakeInt(1), pyast.MakeInt(5), pyast.MakeInt(2)))
	require.NoError(t, err)

	require.NotNil(t, info.StartInt)
	assert.Equal(t, int64(1), *info.StartInt)
	require.NotNil(t, info.StopInt)
	assert.Equal(t, int64(5), *info.StopInt)
	require.NotNil(t, info.StepInt)
	assert.Equal(t, int64(2), *info.StepInt)
}

func TestAnalyzeRangeRejectsOtherCalls(t *testing.T) {
	t.Parallel()

	calls := []*pyast.Call{
		{Func: &pyast.Name{Ident: "len"}, Args: []pyast.Expr{&pyast.Name{Ident: "x"}}},
		rangeCall(),
		rangeCall(pyast.MakeInt(0), pyast.MakeInt(1), pyast.MakeInt(1), pyast.MakeInt(1)),
	}

	for _, call := range calls {
		_, err := pyast.AnalyzeRange(call)
		require.Error(t, err)
		assert.ErrorIs(t, err, pyast.ErrAnalysis)
	}
}

func TestReduceStopParameter(t *testing.T) {
	t.Parallel()

	n := func() pyast.Expr { return &pyast.Name{Ident: "n"} }

	tests := []struct {
		name string
		stop pyast.Expr
		want pyast.Expr
	}{
		{
			name: "n plus one drops the offset",
			stop: &pyast.BinOp{Left: n(), Op: pyast.OpAdd, Right: pyast.MakeInt(1)},
			want: n(),
		},
		{
			name: "n plus two decrements the offset",
			stop: &pyast.BinOp{Left: n(), Op: pyast.OpAdd, Right: pyast.MakeInt(2)},
			want: &pyast.BinOp{Left: n(), Op: pyast.OpAdd, Right: pyast.MakeInt(1)},
		},
		{
			name: "n minus one increments the offset",
			stop: &pyast.BinOp{Left: n(), Op: pyast.OpSub, Right: pyast.MakeInt(1)},
			want: &pyast.BinOp{Left: n(), Op: pyast.OpSub, Right: pyast.MakeInt(2)},
		},
		{
			name: "plain name subtracts one",
			stop: n(),
			want: &pyast.BinOp{Left: n(), Op: pyast.OpSub, Right: pyast.MakeInt(1)},
		},
		{
			name: "non literal offset subtracts one",
			stop: &pyast.BinOp{Left: n(), Op: pyast.OpAdd, Right: &pyast.Name{Ident: "m"}},
			want: &pyast.BinOp{
				Left:  &pyast.BinOp{Left: n(), Op: pyast.OpAdd, Right: &pyast.Name{Ident: "m"}},
				Op:    pyast.OpSub,
				Right: pyast.MakeInt(1),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyast.ReduceStopParameter(tc.stop))
		})
	}
}

func TestAnalyzeAttribute(t *testing.T) {
	t.Parallel()

	parts, err := pyast.AnalyzeAttribute(pyast.NestedAttribute("numpy", "linalg", "inv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"numpy", "linalg", "inv"}, parts)

	parts, err = pyast.AnalyzeAttribute(&pyast.Name{Ident: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, parts)

	_, err = pyast.AnalyzeAttribute(&pyast.Attribute{
		Value: &pyast.Call{Func: &pyast.Name{Ident: "f"}},
		Attr:  "x",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, pyast.ErrAnalysis)
}

func TestNestedAttributeRoundTrip(t *testing.T) {
	t.Parallel()

	expr := pyast.NestedAttribute("a")
	name, ok := expr.(*pyast.Name)
	require.True(t, ok)
	assert.Equal(t, "a", name.Ident)

	expr = pyast.NestedAttribute("a", "b")
	attr, ok := expr.(*pyast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "b", attr.Attr)
}

func TestFunctionName(t *testing.T) {
	t.Parallel()

	name, ok := pyast.FunctionName(&pyast.Call{Func: &pyast.Name{Ident: "sin"}})
	require.True(t, ok)
	assert.Equal(t, "sin", name)

	name, ok = pyast.FunctionName(&pyast.Call{Func: pyast.NestedAttribute("np", "sin")})
	require.True(t, ok)
	assert.Equal(t, "sin", name)

	_, ok = pyast.FunctionName(&pyast.Call{Func: &pyast.Call{Func: &pyast.Name{Ident: "f"}}})
	assert.False(t, ok)
}

func TestValueHelpers(t *testing.T) {
	t.Parallel()

	value, ok := pyast.IntValue(pyast.MakeInt(42))
	require.True(t, ok)
	assert.Equal(t, int64(42), value)

	_, ok = pyast.IntValue(&pyast.Constant{Tag: pyast.ConstBool, Bool: true})
	assert.False(t, ok)

	_, ok = pyast.IntValue(&pyast.Name{Ident: "x"})
	assert.False(t, ok)

	assert.True(t, pyast.IsConstant(pyast.MakeInt(1)))
	assert.False(t, pyast.IsConstant(&pyast.Name{Ident: "x"}))

	assert.True(t, pyast.IsStrConstant(&pyast.Constant{Tag: pyast.ConstStr, Str: "doc"}))
	assert.False(t, pyast.IsStrConstant(pyast.MakeInt(1)))
}
