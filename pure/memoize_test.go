package pure_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/on-the-ground/extras_go/pure"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoize(t *testing.T) {
	count := 0
	sum := pure.Memoize(func(xs ...int) int {
		count++
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	})

	assert.Equal(t, 6, sum(1, 2, 3))
	assert.Equal(t, 6, sum(1, 2, 3)) // cached
	assert.Equal(t, 1, count)

	assert.Equal(t, 6, sum(3, 2, 1))
	assert.Equal(t, 2, count)
}

func TestMemoize_StructuralSliceArguments(t *testing.T) {
	count := 0
	length := pure.Memoize(func(xs ...[]int) int {
		count++
		return len(xs[0])
	})

	assert.Equal(t, 3, length([]int{1, 2, 3}))
	assert.Equal(t, 3, length([]int{1, 2, 3}))
	assert.Equal(t, 1, count)

	assert.Equal(t, 2, length([]int{1, 2}))
	assert.Equal(t, 2, count)
}

func TestMemoize_NilResultIsCached(t *testing.T) {
	count := 0
	lookup := pure.Memoize1(func(string) error {
		count++
		return nil
	})

	assert.NoError(t, lookup("a"))
	assert.NoError(t, lookup("a"))
	assert.Equal(t, 1, count)
}

func TestMemoize_IndependentCachesPerInstance(t *testing.T) {
	count := 0
	double := func(n int) int {
		count++
		return n * 2
	}

	first := pure.Memoize1(double)
	second := pure.Memoize1(double)

	assert.Equal(t, 4, first(2))
	assert.Equal(t, 4, second(2))
	assert.Equal(t, 2, count)
}

func TestMemoize_SharedStore(t *testing.T) {
	store := pure.NewShardedStore(pure.NewStoreConfig(2))
	count := 0
	double := func(n int) int {
		count++
		return n * 2
	}

	first := pure.Memoize1(double, pure.WithStore(store))
	second := pure.Memoize1(double, pure.WithStore(store))

	assert.Equal(t, 4, first(2))
	assert.Equal(t, 4, second(2))
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.Len())
}

func TestMemoize2And3(t *testing.T) {
	count := 0
	add := pure.Memoize2(func(a, b int) int {
		count++
		return a + b
	}, pure.WithShards(1))
	assert.Equal(t, 5, add(2, 3))
	assert.Equal(t, 5, add(2, 3))
	assert.Equal(t, 1, count)

	join := pure.Memoize3(func(a, b, c string) string {
		count++
		return a + b + c
	})
	assert.Equal(t, "xyz", join("x", "y", "z"))
	assert.Equal(t, "xyz", join("x", "y", "z"))
	assert.Equal(t, 2, count)
}

func TestMemoize1E_DoesNotCacheErrors(t *testing.T) {
	calls := 0
	fail := true
	parse := pure.Memoize1E(func(s string) (int, error) {
		calls++
		if fail {
			return 0, errors.New("not yet")
		}
		return len(s), nil
	})

	_, err := parse("abc")
	require.Error(t, err)

	fail = false
	n, err := parse("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = parse("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, calls)
}

func TestMemoize_ConcurrentCallersSeeOneResult(t *testing.T) {
	var mu sync.Mutex
	seq := 0
	next := pure.Memoize1(func(string) int {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return seq
	})

	first := next("k")
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, next("k"))
		}()
	}
	wg.Wait()
}

func TestMemoize_RistrettoStore(t *testing.T) {
	store, err := pure.NewRistrettoStore(100)
	require.NoError(t, err)
	defer store.Close()

	count := 0
	square := pure.Memoize1(func(n int) int {
		count++
		return n * n
	}, pure.WithStore(store))

	assert.Equal(t, 9, square(3))
	assert.Equal(t, 9, square(3))
	assert.Equal(t, 1, count)
}

func TestNewRistrettoStore_InvalidSize(t *testing.T) {
	_, err := pure.NewRistrettoStore(0)
	assert.ErrorIs(t, err, pure.ErrInvalidStoreSize)
}

func TestMemoizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("repeated signature invokes once", prop.ForAll(
		func(xs []int, repeats int) bool {
			count := 0
			f := pure.Memoize(func(args ...int) string {
				count++
				return fmt.Sprint(args)
			})
			want := fmt.Sprint(xs)
			for i := 0; i < repeats; i++ {
				if f(xs...) != want {
					return false
				}
			}
			return count == 1
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(1, 10),
	))

	properties.Property("distinct signatures are computed independently", prop.ForAll(
		func(a, b int) bool {
			count := 0
			f := pure.Memoize1(func(n int) int {
				count++
				return n
			})
			f(a)
			f(b)
			f(a)
			f(b)
			if a == b {
				return count == 1
			}
			return count == 2
		},
		gen.IntRange(-5, 5),
		gen.IntRange(-5, 5),
	))

	properties.TestingRun(t)
}
