package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("def f(x):\n    return x\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("hello\x00world")))
	assert.True(t, IsBinary([]byte("\x00start")))
}

func TestIsBinary_SniffBoundary(t *testing.T) {
	t.Parallel()

	data := make([]byte, BinarySniffLength)
	for i := range data {
		data[i] = 'a'
	}

	data[BinarySniffLength-1] = 0x00
	assert.True(t, IsBinary(data))

	// A null byte beyond the sniff window is not detected.
	data[BinarySniffLength-1] = 'a'
	data = append(data, 0x00)
	assert.False(t, IsBinary(data))
}

func TestCountLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountLines(nil))
	assert.Equal(t, 1, CountLines([]byte("x")))
	assert.Equal(t, 1, CountLines([]byte("x\n")))
	assert.Equal(t, 2, CountLines([]byte("def f(x):\n    return x\n")))
	assert.Equal(t, 2, CountLines([]byte("a\nb")))
}

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no indent",
			in:   "def f(x):\n    return x\n",
			want: "def f(x):\n    return x\n",
		},
		{
			name: "uniform indent",
			in:   "    def f(x):\n        return x\n",
			want: "def f(x):\n    return x\n",
		},
		{
			name: "tab indent",
			in:   "\tx = 1\n\ty = 2\n",
			want: "x = 1\ny = 2\n",
		},
		{
			name: "blank lines ignored for margin",
			in:   "    def f(x):\n\n        return x\n",
			want: "def f(x):\n\n    return x\n",
		},
		{
			name: "mixed margins take the common prefix",
			in:   "    a = 1\n  b = 2\n",
			want: "  a = 1\nb = 2\n",
		},
		{
			name: "flush left line keeps everything",
			in:   "a = 1\n    b = 2\n",
			want: "a = 1\n    b = 2\n",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, Dedent(tc.in))
		})
	}
}
