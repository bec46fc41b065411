package pure

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Store is the cache behind a memoized function, keyed by argument signature.
type Store interface {
	// Load returns the value stored under key.
	Load(key string) (any, bool)
	// LoadOrStore returns the existing value for key if present.
	// Otherwise it stores and returns value. loaded reports which happened.
	LoadOrStore(key string, value any) (actual any, loaded bool)
}

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 16

// StoreConfig configures a sharded store.
type StoreConfig struct {
	Shards int // default: DefaultShards
}

func NewStoreConfig(shards int) StoreConfig {
	if shards <= 0 {
		shards = DefaultShards
	}
	return StoreConfig{Shards: shards}
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]any
}

// ShardedStore is an unbounded in-memory Store. Keys are spread over shards
// by xxhash so unrelated signatures rarely contend on the same lock.
// Entries are never evicted.
type ShardedStore struct {
	shards []*shard
}

var _ Store = (*ShardedStore)(nil)

func NewShardedStore(config StoreConfig) *ShardedStore {
	config = NewStoreConfig(config.Shards)
	shards := make([]*shard, config.Shards)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]any)}
	}
	return &ShardedStore{shards: shards}
}

func (s *ShardedStore) shardOf(key string) *shard {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

func (s *ShardedStore) Load(key string) (any, bool) {
	sh := s.shardOf(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.entries[key]
	return v, ok
}

func (s *ShardedStore) LoadOrStore(key string, value any) (any, bool) {
	sh := s.shardOf(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if v, ok := sh.entries[key]; ok {
		return v, true
	}
	sh.entries[key] = value
	return value, false
}

// Len returns the number of cached signatures.
func (s *ShardedStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
