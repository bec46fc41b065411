package numbers_test

import (
	"math"
	"testing"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops/numbers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, op string, value any, args ...any) any {
	t.Helper()
	f, ok := numbers.Table.Lookup(op)
	require.True(t, ok, "missing op %q", op)
	res, err := f(value, args...)
	require.NoError(t, err)
	return res
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, run(t, "abs", -3))
	assert.Equal(t, int8(3), run(t, "abs", int8(-3)))
	assert.Equal(t, uint(3), run(t, "abs", uint(3)))
	assert.Equal(t, 2.5, run(t, "abs", -2.5))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 3.0, run(t, "ceil", 2.1))
	assert.Equal(t, 2.0, run(t, "floor", 2.9))
	assert.Equal(t, 7, run(t, "ceil", 7))
	assert.Equal(t, int64(7), run(t, "floor", int64(7)))

	assert.Equal(t, 3.0, run(t, "round", 2.5))
	assert.Equal(t, -3.0, run(t, "round", -2.5))
	assert.Equal(t, 3.14, run(t, "round", 3.14159, 2))
	assert.Equal(t, 1.3, run(t, "round", 1.25, 1))
	assert.Equal(t, 4, run(t, "round", 4))
	assert.Equal(t, 1200, run(t, "round", 1234, -2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 10, run(t, "clamp", 42, 0, 10))
	assert.Equal(t, 0, run(t, "clamp", -1, 0, 10))
	assert.Equal(t, 0.5, run(t, "clamp", 0.5, 0, 1))

	clamp, _ := numbers.Table.Lookup("clamp")
	_, err := clamp(1, 10, 0)
	assert.ErrorIs(t, err, fn.ErrInvalidArgument)
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, 6, run(t, "add", 1, 2, 3))
	assert.Equal(t, int32(6), run(t, "add", int32(1), 2, uint8(3)))
	assert.Equal(t, 3.5, run(t, "add", 1, 2.5))
	assert.Equal(t, 5, run(t, "add", 5))
	assert.Equal(t, 24, run(t, "multiply", 2, 3, 4))
	assert.Equal(t, 5.0, run(t, "multiply", 2, 2.5))

	assert.Equal(t, 9, run(t, "max", 3, 9, 4))
	assert.Equal(t, 3, run(t, "min", 3, 9, 4))
	assert.Equal(t, 4.5, run(t, "max", 3, 4.5))
}

func TestPredicatesAndFormatting(t *testing.T) {
	assert.Equal(t, "3.14", run(t, "toFixed", math.Pi, 2))
	assert.Equal(t, "3", run(t, "toFixed", 3))
	assert.Equal(t, true, run(t, "isNaN", math.NaN()))
	assert.Equal(t, false, run(t, "isNaN", 1))
	assert.Equal(t, false, run(t, "isFinite", math.Inf(1)))
	assert.Equal(t, true, run(t, "isFinite", 1.5))
}

func TestInvalidArguments(t *testing.T) {
	for _, tc := range []struct {
		op    string
		value any
		args  []any
	}{
		{"abs", "1", nil},
		{"add", 1, []any{"2"}},
		{"clamp", 1, []any{0}},
		{"round", 1.5, []any{0.5}},
		{"toFixed", 1.5, []any{-1}},
	} {
		f, ok := numbers.Table.Lookup(tc.op)
		require.True(t, ok)
		_, err := f(tc.value, tc.args...)
		assert.ErrorIs(t, err, fn.ErrInvalidArgument, "%s%v", tc.op, tc.args)
	}
}
