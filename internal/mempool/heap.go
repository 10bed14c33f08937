package mempool

import (
	"time"

	"github.com/empower1/corechain/internal/types"
)

// entry is a single admitted transaction sitting in the pool. seq is the
// pool-assigned insertion sequence, used to break gas-price ties FIFO.
type entry struct {
	tx         *types.SignedTransaction
	admittedAt time.Time
	seq        uint64
	heapIndex  int
}

func (e *entry) hash() types.Hash { return e.tx.Hash }

// ordinaryHeap is a container/heap max-heap over gas price: Pop always
// yields the highest-priced entry still present, with equal-priced entries
// ordered by insertion sequence (earlier first).
type ordinaryHeap []*entry

func (h ordinaryHeap) Len() int { return len(h) }

func (h ordinaryHeap) Less(i, j int) bool {
	gi, gj := h[i].tx.Unsigned.GasPrice, h[j].tx.Unsigned.GasPrice
	if gi != gj {
		return gi > gj
	}
	return h[i].seq < h[j].seq
}

func (h ordinaryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *ordinaryHeap) Push(x any) {
	e := x.(*entry)
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *ordinaryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIndex = -1
	*h = old[:n-1]
	return e
}
