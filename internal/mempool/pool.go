// Package mempool implements the PriorityPool: the dual-queue, hash-indexed
// structure that holds admitted-but-unconfirmed transactions awaiting
// packaging into a proposal.
package mempool

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/empower1/corechain/internal/types"
)

// Pool is the PriorityPool: an unbounded FIFO system-script queue plus a
// bounded max-heap ordinary queue ordered by descending gas price, backed by
// a sharded hash index for O(1) contains/get_by_hash lookups.
type Pool struct {
	poolSize int
	seq      uint64

	mu       sync.Mutex
	ordinary ordinaryHeap
	system   []*entry

	index *shardedIndex

	addrMu sync.Mutex
	byAddr map[types.Address]int
}

// NewPool constructs an empty pool admitting at most poolSize ordinary
// transactions. The system-script queue has no capacity bound.
func NewPool(poolSize int) *Pool {
	return &Pool{
		poolSize: poolSize,
		index:    newShardedIndex(),
		byAddr:   make(map[types.Address]int),
	}
}

func (p *Pool) nextSeq() uint64 {
	return atomic.AddUint64(&p.seq, 1)
}

// Insert appends tx to the ordinary queue. It rejects a duplicate hash with
// *DupError and a full pool with *ReachLimitError.
func (p *Pool) Insert(tx *types.SignedTransaction) error {
	e := &entry{tx: tx, admittedAt: time.Now(), seq: p.nextSeq()}

	p.mu.Lock()
	if p.index.contains(tx.Hash) {
		p.mu.Unlock()
		return &DupError{Hash: tx.Hash}
	}
	if len(p.ordinary) >= p.poolSize {
		p.mu.Unlock()
		return &ReachLimitError{PoolSize: p.poolSize}
	}
	if !p.index.insert(tx.Hash, e) {
		p.mu.Unlock()
		return &DupError{Hash: tx.Hash}
	}
	heap.Push(&p.ordinary, e)
	p.mu.Unlock()

	p.incAddr(tx.Sender)
	return nil
}

// InsertSystemScriptTx appends tx to the unbounded FIFO system-script queue.
func (p *Pool) InsertSystemScriptTx(tx *types.SignedTransaction) error {
	e := &entry{tx: tx, admittedAt: time.Now(), seq: p.nextSeq()}

	p.mu.Lock()
	if !p.index.insert(tx.Hash, e) {
		p.mu.Unlock()
		return &DupError{Hash: tx.Hash}
	}
	p.system = append(p.system, e)
	p.mu.Unlock()

	p.incAddr(tx.Sender)
	return nil
}

func (p *Pool) incAddr(addr types.Address) {
	p.addrMu.Lock()
	p.byAddr[addr]++
	p.addrMu.Unlock()
}

func (p *Pool) decAddr(addr types.Address) {
	p.addrMu.Lock()
	if n := p.byAddr[addr]; n <= 1 {
		delete(p.byAddr, addr)
	} else {
		p.byAddr[addr] = n - 1
	}
	p.addrMu.Unlock()
}

// Contains reports whether hash is currently held by either sub-queue.
func (p *Pool) Contains(hash types.Hash) bool {
	return p.index.contains(hash)
}

// GetByHash returns the transaction for hash, if present.
func (p *Pool) GetByHash(hash types.Hash) (*types.SignedTransaction, bool) {
	e, ok := p.index.get(hash)
	if !ok {
		return nil, false
	}
	return e.tx, true
}

// Full reports whether the ordinary queue is at capacity.
func (p *Pool) Full() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ordinary) >= p.poolSize
}

// PoolSize returns the configured ordinary-queue capacity.
func (p *Pool) PoolSize() int {
	return p.poolSize
}

// Len reports the ordinary-queue depth.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ordinary)
}

// CoQueueLen reports the system-script (companion) queue depth.
func (p *Pool) CoQueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.system)
}

// GetTxCountByAddress reports how many pooled transactions (either queue)
// were sent by addr.
func (p *Pool) GetTxCountByAddress(addr types.Address) int {
	p.addrMu.Lock()
	defer p.addrMu.Unlock()
	return p.byAddr[addr]
}

// Package returns, in order, all system-queue hashes (FIFO) followed by
// ordinary-queue hashes in descending priority, stopping as soon as either
// txNumLimit is reached or the running gas sum would exceed gasLimit.
// Packaged transactions remain in the pool; removal happens only on Flush.
// Package observes a consistent snapshot: it never mutates the live queues.
func (p *Pool) Package(gasLimit uint64, txNumLimit int) []types.Hash {
	p.mu.Lock()
	snapshot := make(ordinaryHeap, len(p.ordinary))
	for i, e := range p.ordinary {
		c := *e
		snapshot[i] = &c
	}
	system := make([]*entry, len(p.system))
	copy(system, p.system)
	p.mu.Unlock()

	result := make([]types.Hash, 0, txNumLimit)
	var gasUsed uint64

	take := func(e *entry) bool {
		if len(result) >= txNumLimit {
			return false
		}
		limit := e.tx.Unsigned.GasLimit
		if gasUsed+limit > gasLimit {
			return false
		}
		gasUsed += limit
		result = append(result, e.tx.Hash)
		return true
	}

	for _, e := range system {
		if !take(e) {
			return result
		}
	}

	for snapshot.Len() > 0 {
		e := heap.Pop(&snapshot).(*entry)
		if !take(e) {
			break
		}
	}

	return result
}

// Flush removes every transaction whose hash is in committed, then, for
// every surviving transaction, calls nonceCheck and removes any for which it
// returns false. Flush is safe to interleave with Insert.
func (p *Pool) Flush(committed map[types.Hash]bool, nonceCheck func(*types.SignedTransaction) bool) {
	p.mu.Lock()

	keep := p.ordinary[:0]
	for _, e := range p.ordinary {
		if committed[e.tx.Hash] || (nonceCheck != nil && !nonceCheck(e.tx)) {
			p.index.remove(e.tx.Hash)
			p.decAddr(e.tx.Sender)
			continue
		}
		keep = append(keep, e)
	}
	p.ordinary = keep
	heap.Init(&p.ordinary)

	sysKeep := p.system[:0]
	for _, e := range p.system {
		if committed[e.tx.Hash] || (nonceCheck != nil && !nonceCheck(e.tx)) {
			p.index.remove(e.tx.Hash)
			p.decAddr(e.tx.Sender)
			continue
		}
		sysKeep = append(sysKeep, e)
	}
	p.system = sysKeep

	p.mu.Unlock()
}
