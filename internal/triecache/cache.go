// Package triecache implements a bounded in-memory cache fronting a
// persistent key/value store that backs the state trie, grounded on
// original_source/core/executor/src/adapter/trie_db.rs's RocksTrieDB.
package triecache

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/empower1/corechain/internal/types"
)

// randSeed is the fixed seed for eviction's draw-without-replacement PRNG.
// 49999 is the largest prime number within 50000, matching the original.
const randSeed = 49999

// ErrLengthMismatch is returned by InsertBatch when keys and values differ
// in length.
var ErrLengthMismatch = errors.New("length mismatch between keys and values")

// TrieCache is a write-through cache over a persistent Store. Every key
// present in the cache holds the same value as the store; the cache may
// miss, never lie. remove/remove_batch are no-ops — the state trie is
// append-only at this layer, and stale node reclamation is left to an
// external compaction path.
type TrieCache struct {
	store     Store
	cacheSize int

	mu    sync.RWMutex
	cache map[string][]byte
}

// New constructs a TrieCache fronting store, targeting cacheSize entries.
func New(store Store, cacheSize int) *TrieCache {
	return &TrieCache{
		store:     store,
		cacheSize: cacheSize,
		cache:     make(map[string][]byte, cacheSize*2),
	}
}

// Get checks the cache; on miss it reads the store, populates the cache on
// hit, and returns the value.
func (c *TrieCache) Get(key []byte) ([]byte, bool, error) {
	k := string(key)

	c.mu.RLock()
	if v, ok := c.cache[k]; ok {
		c.mu.RUnlock()
		return v, true, nil
	}
	c.mu.RUnlock()

	v, err := c.store.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", types.ErrStore, err)
	}

	c.mu.Lock()
	c.cache[k] = v
	c.mu.Unlock()

	return v, true, nil
}

// Contains reports whether key is present, as Get but without returning the value.
func (c *TrieCache) Contains(key []byte) (bool, error) {
	k := string(key)

	c.mu.RLock()
	if _, ok := c.cache[k]; ok {
		c.mu.RUnlock()
		return true, nil
	}
	c.mu.RUnlock()

	ok, err := c.store.Contains(key)
	if err != nil {
		return false, fmt.Errorf("%w: %v", types.ErrStore, err)
	}
	if ok {
		v, err := c.store.Get(key)
		if err == nil {
			c.mu.Lock()
			c.cache[k] = v
			c.mu.Unlock()
		}
	}
	return ok, nil
}

// Insert writes key/value through to the store (durably) and the cache.
func (c *TrieCache) Insert(key, value []byte) error {
	if err := c.store.Put(key, value); err != nil {
		return fmt.Errorf("%w: %v", types.ErrStore, err)
	}
	c.mu.Lock()
	c.cache[string(key)] = value
	c.mu.Unlock()
	return nil
}

// InsertBatch writes all key/value pairs through to the store in one atomic
// batch, then updates the cache. Fails with ErrLengthMismatch if keys and
// values differ in length.
func (c *TrieCache) InsertBatch(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return ErrLengthMismatch
	}
	if err := c.store.PutBatch(keys, values); err != nil {
		return fmt.Errorf("%w: %v", types.ErrStore, err)
	}
	c.mu.Lock()
	for i, key := range keys {
		c.cache[string(key)] = values[i]
	}
	c.mu.Unlock()
	return nil
}

// Remove is a no-op: the state trie is append-only at this layer, and
// garbage collection of dead trie nodes is left to an external compactor.
func (c *TrieCache) Remove(key []byte) error {
	return nil
}

// RemoveBatch is a no-op for the same reason as Remove.
func (c *TrieCache) RemoveBatch(keys [][]byte) error {
	return nil
}

// Flush evicts cache.len() - cacheSize entries, chosen pseudo-randomly with
// a fixed seed, whenever the cache has grown past its target size. Eviction
// never touches the store — only the in-memory cache shrinks.
func (c *TrieCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) <= c.cacheSize {
		return
	}

	keys := make([]string, 0, len(c.cache))
	for k := range c.cache {
		keys = append(keys, k)
	}

	for _, k := range randRemoveList(keys, len(keys)-c.cacheSize) {
		delete(c.cache, k)
	}
}

// Len reports the current number of entries held in the in-memory cache.
func (c *TrieCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// randRemoveList draws num elements without replacement from keys using a
// fixed-seed PRNG, ported from rand_remove_list in
// original_source/core/executor/src/adapter/trie_db.rs. It faithfully
// reproduces that function's shape, including its off-by-one exclusion of
// the final element from the index pool (len = keys.len() - 1) — the source
// of the "non-uniform" eviction spec.md's design notes call out.
func randRemoveList(keys []string, num int) []string {
	if len(keys) == 0 || num <= 0 {
		return nil
	}

	length := len(keys) - 1
	idxList := make([]int, length)
	for i := range idxList {
		idxList[i] = i
	}

	rng := rand.New(rand.NewSource(randSeed))
	ret := make([]string, 0, num)

	for i := 0; i < num && length > 0; i++ {
		tmp := rng.Intn(length)
		idx := idxList[tmp]
		idxList = append(idxList[:tmp], idxList[tmp+1:]...)
		ret = append(ret, keys[idx])
		length--
	}

	return ret
}
