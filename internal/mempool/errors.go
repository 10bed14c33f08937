package mempool

import (
	"errors"
	"fmt"

	"github.com/empower1/corechain/internal/types"
)

// DupError reports that a transaction hash is already present in the pool.
type DupError struct {
	Hash types.Hash
}

func (e *DupError) Error() string {
	return fmt.Sprintf("transaction %s already in pool", e.Hash)
}

// ReachLimitError reports that the ordinary queue is at capacity.
type ReachLimitError struct {
	PoolSize int
}

func (e *ReachLimitError) Error() string {
	return fmt.Sprintf("pool reached its limit of %d transactions", e.PoolSize)
}

// ErrInsert reports an internal inconsistency inserting into the pool
// (the hash index and the priority structure disagreed).
var ErrInsert = errors.New("mempool insert failed: internal inconsistency")
