package chain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/on-the-ground/extras_go/chain"
	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/typeclass"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRoundTrip(t *testing.T) {
	for _, v := range []any{true, 42, 1.5, "s", []int{1}, map[string]int{"a": 1}, nil} {
		c := chain.New(v)
		assert.Equal(t, v, c.Value())
		assert.Equal(t, v, c.Value(), "Value must be repeatable")
		assert.NoError(t, c.Err())
	}

	assert.Equal(t, []any{}, chain.Empty().Value())
}

func TestRoundTripProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("New(v).Value() == v", prop.ForAll(
		func(s string, n int) bool {
			return chain.New(s).Value() == s && chain.New(n).Value() == n
		},
		gen.AnyString(),
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestDispatch(t *testing.T) {
	res, err := chain.New([]int{5, 1, 7}).Invoke("sort").Result()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 5, 7}, res)

	res, err = chain.New("12345").Invoke("substr", 1, 3).Result()
	require.NoError(t, err)
	assert.Equal(t, "234", res)
	res, err = chain.New("a\x00bcd").Invoke("substr", 0, 3).Result()
	require.NoError(t, err)
	assert.Equal(t, "a\x00b", res)
}

func TestDispatch_FollowsTheValueAcrossTypes(t *testing.T) {
	c := chain.New(" 12345 ").
		Invoke("replace", "1", "5").
		Invoke("replace", "2", "5").
		Invoke("trim").
		Invoke("substr", 1, 3)
	require.NoError(t, c.Err())
	assert.Equal(t, "534", c.Value())
	assert.Equal(t, typeclass.String, c.Tag())

	c = chain.New("a,b,c").Invoke("split", ",").Invoke("count").Invoke("multiply", 2).Invoke("isFinite")
	require.NoError(t, c.Err())
	assert.Equal(t, true, c.Value())
	assert.Equal(t, typeclass.Boolean, c.Tag())
}

func TestUnknownOperation(t *testing.T) {
	c := chain.New([]int{1, 2}).Invoke("negate")
	require.Error(t, c.Err())
	assert.ErrorIs(t, c.Err(), chain.ErrUnknownOperation)
	assert.Contains(t, c.Err().Error(), `"arrays" has no operation "negate"`)
	assert.Equal(t, []int{1, 2}, c.Value())
}

func TestUnsupportedType(t *testing.T) {
	for _, v := range []any{nil, new(int), make(chan<- int)} {
		err := chain.New(v).Invoke("count").Err()
		assert.ErrorIs(t, err, chain.ErrUnsupportedType, "%T", v)
	}
}

type point struct {
	X, Y int
	tag  string
}

func TestStructuredValuesBecomeArrays(t *testing.T) {
	res, err := chain.New(point{X: 3, Y: 4, tag: "p"}).Invoke("reverse").Result()
	require.NoError(t, err)
	assert.Equal(t, []any{4, 3}, res)

	res, err = chain.New(map[string]string{"b": "B", "a": "A"}).Invoke("join", "").Result()
	require.NoError(t, err)
	assert.Equal(t, "AB", res)

	res, err = chain.New(&point{X: 1, Y: 2}).Invoke("count").Result()
	require.NoError(t, err)
	assert.Equal(t, 2, res)
}

func TestStickyErrors(t *testing.T) {
	calls := 0
	c := chain.New("abc").
		Invoke("nope").
		Invoke("toUpper").
		Then(func(s string) string { calls++; return s })

	assert.ErrorIs(t, c.Err(), chain.ErrUnknownOperation)
	assert.Equal(t, "abc", c.Value())
	assert.Equal(t, 0, calls)

	_, err := c.Result()
	assert.ErrorIs(t, err, chain.ErrUnknownOperation)
}

func TestOperationErrors(t *testing.T) {
	err := chain.New([]int{1}).Invoke("chunk", 0).Err()
	assert.ErrorIs(t, err, chain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "arrays.chunk")

	boom := errors.New("boom")
	err = chain.New([]int{1}).Invoke("map", func(int) (int, error) { return 0, boom }).Err()
	assert.ErrorIs(t, err, boom)
}

func TestThenTap(t *testing.T) {
	res, err := chain.New([]int{3, 1, 2}).
		Invoke("sort").
		Then(func(v []any) int { return len(v) }).
		Tap(func(n int) int { return n * 10 }).
		Result()
	require.NoError(t, err)
	assert.Equal(t, 30, res)

	err = chain.New(1).Then("not callable").Err()
	assert.ErrorIs(t, err, chain.ErrInvalidArgument)

	boom := errors.New("boom")
	err = chain.New(1).Tap(func(int) error { return boom }).Err()
	assert.ErrorIs(t, err, boom)
}

func TestCallableValues(t *testing.T) {
	calls := 0
	c := chain.New(func(n int) int { calls++; return n + 1 }).Invoke("once")
	require.NoError(t, c.Err())
	assert.Equal(t, typeclass.Callable, c.Tag())

	g, ok := c.Value().(fn.Func)
	require.True(t, ok)
	first, err := g(1)
	require.NoError(t, err)
	second, err := g(100)
	require.NoError(t, err)
	assert.Equal(t, mo.Some[any](2), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	res, err := chain.New(strings.ToUpper).Invoke("compose", strings.TrimSpace).Invoke("invoke", " go ").Result()
	require.NoError(t, err)
	assert.Equal(t, "GO", res)
}

func TestRegistry(t *testing.T) {
	reg := fn.NewRegistry(nil).
		MustRegister("strings::upper", strings.ToUpper).
		MustRegister("numbers::isEven", func(n int) bool { return n%2 == 0 })

	res, err := chain.New("go", chain.WithRegistry(reg)).Then(fn.Ref("strings::upper")).Result()
	require.NoError(t, err)
	assert.Equal(t, "GO", res)

	res, err = chain.New([]int{1, 2, 3, 4}, chain.WithRegistry(reg)).Invoke("filter", fn.Ref("numbers::isEven")).Result()
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4}, res)

	res, err = chain.New(fn.Ref("strings::upper"), chain.WithRegistry(reg)).Invoke("invoke", "x").Result()
	require.NoError(t, err)
	assert.Equal(t, "X", res)

	err = chain.New("go").Then(fn.Ref("strings::upper")).Err()
	assert.ErrorIs(t, err, chain.ErrInvalidArgument)
}

func TestWithTable(t *testing.T) {
	shout := ops.NewTable("shout", map[string]ops.Op{
		"shout": func(value any, _ ...any) (any, error) {
			return strings.ToUpper(value.(string)) + "!", nil
		},
	})

	res, err := chain.New("hi", chain.WithTable(typeclass.String, shout)).Invoke("shout").Result()
	require.NoError(t, err)
	assert.Equal(t, "HI!", res)

	// Other chains keep the default tables.
	err = chain.New("hi").Invoke("shout").Err()
	assert.ErrorIs(t, err, chain.ErrUnknownOperation)
}

func TestValueAs(t *testing.T) {
	n, err := chain.ValueAs[int](chain.New([]int{1, 2}).Invoke("count"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = chain.ValueAs[string](chain.New(1))
	assert.Error(t, err)

	_, err = chain.ValueAs[int](chain.New(1).Invoke("nope"))
	assert.ErrorIs(t, err, chain.ErrUnknownOperation)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := chain.New([]int{2, 1}, chain.WithLogger(zap.New(core))).
		Invoke("sort").
		Invoke("negate")

	require.Error(t, c.Err())
	assert.NotEmpty(t, c.ID())

	created := logs.FilterMessage("chain created").All()
	require.Len(t, created, 1)
	assert.Equal(t, c.ID(), created[0].ContextMap()["chain_id"])
	assert.Equal(t, "array", created[0].ContextMap()["tag"])

	dispatched := logs.FilterMessage("dispatch").All()
	require.Len(t, dispatched, 1)
	assert.Equal(t, "arrays", dispatched[0].ContextMap()["table"])
	assert.Equal(t, "sort", dispatched[0].ContextMap()["op"])

	failed := logs.FilterMessage("operation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "negate", failed[0].ContextMap()["op"])
}

func TestIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, chain.New(1).ID(), chain.New(1).ID())
}
