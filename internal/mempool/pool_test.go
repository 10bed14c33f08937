package mempool

import (
	"fmt"
	"testing"

	"github.com/empower1/corechain/internal/types"
)

func txWithPrice(t *testing.T, seed int, gasPrice uint64, action types.Action) *types.SignedTransaction {
	t.Helper()
	tx := &types.SignedTransaction{
		Unsigned: types.UnsignedTransaction{
			Nonce:    uint64(seed),
			GasLimit: 1,
			GasPrice: gasPrice,
			Action:   action,
		},
		Sender: types.BytesToAddress([]byte(fmt.Sprintf("sender-%d", seed))),
		Hash:   types.BytesToHash([]byte(fmt.Sprintf("tx-%d", seed))),
	}
	return tx
}

// TestInsertDedupAndCapacity covers P1 (Dedup), P2 (Capacity), and scenario 1.
func TestInsertDedupAndCapacity(t *testing.T) {
	pool := NewPool(100)

	for i := 0; i < 100; i++ {
		tx := txWithPrice(t, i, uint64(i), types.ActionCall)
		if err := pool.Insert(tx); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}

	first := txWithPrice(t, 0, 0, types.ActionCall)
	if !pool.Contains(first.Hash) {
		t.Fatalf("Contains() = false after successful insert")
	}
	if err := pool.Insert(first); err == nil {
		t.Fatalf("Insert() duplicate succeeded, want *DupError")
	} else if _, ok := err.(*DupError); !ok {
		t.Fatalf("Insert() duplicate error = %T, want *DupError", err)
	}

	overflow := txWithPrice(t, 1000, 1000, types.ActionCall)
	err := pool.Insert(overflow)
	if err == nil {
		t.Fatalf("Insert() into full pool succeeded, want *ReachLimitError")
	}
	if rl, ok := err.(*ReachLimitError); !ok || rl.PoolSize != 100 {
		t.Fatalf("Insert() into full pool error = %v, want ReachLimitError{100}", err)
	}

	hashes := pool.Package(^uint64(0), 100)
	if len(hashes) != 100 {
		t.Fatalf("Package() returned %d hashes, want 100", len(hashes))
	}
}

// TestPackageOrdering covers P3 and scenario 2: system-queue entries lead in
// FIFO order, and flushing every packaged hash empties both queues.
func TestPackageOrdering(t *testing.T) {
	pool := NewPool(2000)

	var sysHashes []types.Hash
	for i := 0; i < 5; i++ {
		tx := txWithPrice(t, 10000+i, 1, types.ActionSystemScript)
		if err := pool.InsertSystemScriptTx(tx); err != nil {
			t.Fatalf("InsertSystemScriptTx(%d) error = %v", i, err)
		}
		sysHashes = append(sysHashes, tx.Hash)
	}

	for i := 0; i < 1024; i++ {
		tx := txWithPrice(t, i, uint64(i%50), types.ActionCall)
		if err := pool.Insert(tx); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}

	packaged := pool.Package(1_000_000_000, 10000)
	if len(packaged) != 1029 {
		t.Fatalf("Package() returned %d hashes, want 1029", len(packaged))
	}
	for i, want := range sysHashes {
		if packaged[i] != want {
			t.Errorf("Package()[%d] = %s, want system hash %s", i, packaged[i], want)
		}
	}

	committed := make(map[types.Hash]bool, len(packaged))
	for _, h := range packaged {
		committed[h] = true
	}
	pool.Flush(committed, nil)

	if pool.Len() != 0 {
		t.Errorf("Len() after flush = %d, want 0", pool.Len())
	}
	if pool.CoQueueLen() != 0 {
		t.Errorf("CoQueueLen() after flush = %d, want 0", pool.CoQueueLen())
	}
}

// TestPackageRespectsGasLimit asserts that Package stops as soon as the
// running gas sum would exceed the supplied limit, per P3.
func TestPackageRespectsGasLimit(t *testing.T) {
	pool := NewPool(10)
	for i := 0; i < 5; i++ {
		tx := txWithPrice(t, i, uint64(5-i), types.ActionCall)
		tx.Unsigned.GasLimit = 10
		if err := pool.Insert(tx); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}

	packaged := pool.Package(25, 100)
	if len(packaged) != 2 {
		t.Fatalf("Package() returned %d hashes, want 2 (gas_limit=25, per-tx gas=10)", len(packaged))
	}
}

// TestFlushCompleteness covers P4: after Flush(H, ok), every hash in H is
// gone, and a failing nonceCheck also evicts a surviving entry.
func TestFlushCompleteness(t *testing.T) {
	pool := NewPool(10)
	keep := txWithPrice(t, 1, 5, types.ActionCall)
	evictByCommit := txWithPrice(t, 2, 4, types.ActionCall)
	evictByNonce := txWithPrice(t, 3, 3, types.ActionCall)

	for _, tx := range []*types.SignedTransaction{keep, evictByCommit, evictByNonce} {
		if err := pool.Insert(tx); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	committed := map[types.Hash]bool{evictByCommit.Hash: true}
	nonceCheck := func(tx *types.SignedTransaction) bool {
		return tx.Hash != evictByNonce.Hash
	}
	pool.Flush(committed, nonceCheck)

	if pool.Contains(evictByCommit.Hash) {
		t.Errorf("Contains(evictByCommit) = true after flush, want false")
	}
	if pool.Contains(evictByNonce.Hash) {
		t.Errorf("Contains(evictByNonce) = true after flush, want false")
	}
	if !pool.Contains(keep.Hash) {
		t.Errorf("Contains(keep) = false after flush, want true")
	}
	if pool.Len() != 1 {
		t.Errorf("Len() after flush = %d, want 1", pool.Len())
	}
	if pool.GetTxCountByAddress(evictByCommit.Sender) != 0 {
		t.Errorf("GetTxCountByAddress(evictByCommit.Sender) > 0 after flush")
	}
}

func TestGetByHashAndTxCountByAddress(t *testing.T) {
	pool := NewPool(10)
	tx := txWithPrice(t, 1, 1, types.ActionCall)
	if err := pool.Insert(tx); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, ok := pool.GetByHash(tx.Hash)
	if !ok || got != tx {
		t.Fatalf("GetByHash() = (%v, %v), want (tx, true)", got, ok)
	}

	if n := pool.GetTxCountByAddress(tx.Sender); n != 1 {
		t.Errorf("GetTxCountByAddress() = %d, want 1", n)
	}

	if _, ok := pool.GetByHash(types.BytesToHash([]byte("missing"))); ok {
		t.Errorf("GetByHash() found a hash that was never inserted")
	}
}
