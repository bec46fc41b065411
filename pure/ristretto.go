package pure

import (
	"errors"
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

var ErrInvalidStoreSize = errors.New("store size must be greater than 0")

// RistrettoStore is a bounded Store backed by ristretto.
//
// Unlike the default store it evicts: a signature may be recomputed after its
// entry is dropped. Use it only for functions where that is acceptable.
// LoadOrStore is not atomic across goroutines.
type RistrettoStore struct {
	cache *ristretto.Cache[string, any]
}

var _ Store = (*RistrettoStore)(nil)

func NewRistrettoStore(maxEntries int64) (*RistrettoStore, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStoreSize, maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoStore{cache: cache}, nil
}

func (r *RistrettoStore) Load(key string) (any, bool) {
	return r.cache.Get(key)
}

func (r *RistrettoStore) LoadOrStore(key string, value any) (any, bool) {
	if v, ok := r.cache.Get(key); ok {
		return v, true
	}
	r.cache.Set(key, value, 1)
	r.cache.Wait()
	return value, false
}

// Close stops ristretto's background goroutines.
func (r *RistrettoStore) Close() {
	r.cache.Close()
}
