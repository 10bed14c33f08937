package mempool

import (
	"sync"

	"github.com/empower1/corechain/internal/types"
)

const indexShardCount = 16

// shardedIndex is the hash -> entry lookup structure. Sharding by the first
// byte of the hash lets contains/get_by_hash/insert on unrelated
// transactions proceed without serializing on a single lock, per spec.md
// §4.2/§5's "sharded or lock-free hash index" requirement.
type shardedIndex struct {
	shards [indexShardCount]indexShard
}

type indexShard struct {
	mu sync.RWMutex
	m  map[types.Hash]*entry
}

func newShardedIndex() *shardedIndex {
	idx := &shardedIndex{}
	for i := range idx.shards {
		idx.shards[i].m = make(map[types.Hash]*entry)
	}
	return idx
}

func (s *shardedIndex) shardFor(h types.Hash) *indexShard {
	return &s.shards[h[0]%indexShardCount]
}

func (s *shardedIndex) contains(h types.Hash) bool {
	shard := s.shardFor(h)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	_, ok := shard.m[h]
	return ok
}

func (s *shardedIndex) get(h types.Hash) (*entry, bool) {
	shard := s.shardFor(h)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	e, ok := shard.m[h]
	return e, ok
}

// insert adds e under h, reporting false if it was already present.
func (s *shardedIndex) insert(h types.Hash, e *entry) bool {
	shard := s.shardFor(h)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if _, exists := shard.m[h]; exists {
		return false
	}
	shard.m[h] = e
	return true
}

func (s *shardedIndex) remove(h types.Hash) {
	shard := s.shardFor(h)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.m, h)
}
