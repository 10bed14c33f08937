package mempoolservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/empower1/corechain/internal/mempool"
	"github.com/empower1/corechain/internal/types"
)

// fakeAdapter is a minimal in-memory MemPoolAdapter for exercising Service
// without a live chain.
type fakeAdapter struct {
	mu        sync.Mutex
	committed map[types.Hash]bool
	storage   map[types.Hash]types.SignedTransaction
	unauth    map[types.Hash]bool
	goodCalls int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		committed: make(map[types.Hash]bool),
		storage:   make(map[types.Hash]types.SignedTransaction),
		unauth:    make(map[types.Hash]bool),
	}
}

func (f *fakeAdapter) CheckAuthorization(ctx context.Context, tx *types.SignedTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unauth[tx.Hash] {
		return errors.New("signature invalid")
	}
	return nil
}

func (f *fakeAdapter) CheckTransaction(ctx context.Context, tx *types.SignedTransaction) error {
	return nil
}

func (f *fakeAdapter) CheckStorageExist(ctx context.Context, hash types.Hash) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.committed[hash] {
		return fmt.Errorf("already committed")
	}
	return nil
}

func (f *fakeAdapter) BroadcastTx(ctx context.Context, tx *types.SignedTransaction) error {
	return nil
}

func (f *fakeAdapter) PullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.SignedTransaction, 0, len(hashes))
	for _, h := range hashes {
		if tx, ok := f.storage[h]; ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeAdapter) GetTransactionsFromStorage(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	return f.PullTxs(ctx, height, hashes)
}

func (f *fakeAdapter) SetArgs(stateRoot types.Hash, gasLimit, maxTxSize uint64) {}

func (f *fakeAdapter) ReportGood(ctx context.Context, tx *types.SignedTransaction) {
	f.mu.Lock()
	f.goodCalls++
	f.mu.Unlock()
}

func newTx(seed int) *types.SignedTransaction {
	return &types.SignedTransaction{
		Unsigned: types.UnsignedTransaction{Nonce: uint64(seed), GasLimit: 1, GasPrice: uint64(seed)},
		Sender:   types.BytesToAddress([]byte(fmt.Sprintf("sender-%d", seed))),
		Hash:     types.BytesToHash([]byte(fmt.Sprintf("tx-%d", seed))),
	}
}

func TestInsertRejectsCommittedTx(t *testing.T) {
	adapter := newFakeAdapter()
	svc := New(mempool.NewPool(10), adapter, 1_000_000, 1024)

	tx := newTx(1)
	adapter.committed[tx.Hash] = true

	err := svc.Insert(context.Background(), tx)
	if _, ok := err.(*CommittedTxError); !ok {
		t.Fatalf("Insert() error = %v, want *CommittedTxError", err)
	}
}

func TestInsertRejectsUnauthorized(t *testing.T) {
	adapter := newFakeAdapter()
	svc := New(mempool.NewPool(10), adapter, 1_000_000, 1024)

	tx := newTx(1)
	adapter.unauth[tx.Hash] = true

	err := svc.Insert(context.Background(), tx)
	if _, ok := err.(*CheckAuthorizationError); !ok {
		t.Fatalf("Insert() error = %v, want *CheckAuthorizationError", err)
	}
}

// TestEnsureOrderTxsRejectsDuplicate covers P8 and scenario 3.
func TestEnsureOrderTxsRejectsDuplicate(t *testing.T) {
	adapter := newFakeAdapter()
	svc := New(mempool.NewPool(10), adapter, 1_000_000, 1024)

	h := types.BytesToHash([]byte("dup"))
	err := svc.EnsureOrderTxs(context.Background(), 7, []types.Hash{h, h})
	if dup, ok := err.(*EnsureDupError); !ok || dup.Hash != h {
		t.Fatalf("EnsureOrderTxs() error = %v, want *EnsureDupError{%s}", err, h)
	}
}

func TestEnsureOrderTxsPullsAndAdmitsUnknown(t *testing.T) {
	adapter := newFakeAdapter()
	pool := mempool.NewPool(10)
	svc := New(pool, adapter, 1_000_000, 1024)

	tx := newTx(5)
	adapter.storage[tx.Hash] = *tx

	if err := svc.EnsureOrderTxs(context.Background(), 7, []types.Hash{tx.Hash}); err != nil {
		t.Fatalf("EnsureOrderTxs() error = %v", err)
	}
	if !pool.Contains(tx.Hash) {
		t.Errorf("EnsureOrderTxs() did not admit the pulled transaction")
	}
	if adapter.goodCalls != 1 {
		t.Errorf("ReportGood called %d times, want 1", adapter.goodCalls)
	}
}

func TestEnsureOrderTxsFailsOnBreak(t *testing.T) {
	adapter := newFakeAdapter()
	svc := New(mempool.NewPool(10), adapter, 1_000_000, 1024)

	h := types.BytesToHash([]byte("unresolvable"))
	err := svc.EnsureOrderTxs(context.Background(), 7, []types.Hash{h})
	brk, ok := err.(*EnsureBreakError)
	if !ok || brk.Require != 1 || brk.Response != 0 {
		t.Fatalf("EnsureOrderTxs() error = %v, want EnsureBreakError{1,0}", err)
	}
}

func TestGetFullTxsMisMatch(t *testing.T) {
	adapter := newFakeAdapter()
	svc := New(mempool.NewPool(10), adapter, 1_000_000, 1024)

	missing := types.BytesToHash([]byte("nowhere"))
	_, err := svc.GetFullTxs(context.Background(), 1, []types.Hash{missing})
	if mm, ok := err.(*MisMatchError); !ok || mm.Require != 1 || mm.Response != 0 {
		t.Fatalf("GetFullTxs() error = %v, want MisMatchError{1,0}", err)
	}
}

func TestGetFullTxsResolvesFromPoolAndStorage(t *testing.T) {
	adapter := newFakeAdapter()
	pool := mempool.NewPool(10)
	svc := New(pool, adapter, 1_000_000, 1024)

	inPool := newTx(1)
	pool.Insert(inPool)
	inStorage := newTx(2)
	adapter.storage[inStorage.Hash] = *inStorage

	got, err := svc.GetFullTxs(context.Background(), 1, []types.Hash{inPool.Hash, inStorage.Hash})
	if err != nil {
		t.Fatalf("GetFullTxs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetFullTxs() returned %d transactions, want 2", len(got))
	}
}

func TestFlushEvictsOnNonceCheckFailure(t *testing.T) {
	adapter := newFakeAdapter()
	pool := mempool.NewPool(10)
	svc := New(pool, adapter, 1_000_000, 1024)

	tx := newTx(1)
	pool.Insert(tx)
	adapter.unauth[tx.Hash] = true

	svc.Flush(context.Background(), nil)

	if pool.Contains(tx.Hash) {
		t.Errorf("Flush() kept a transaction that failed re-authorization")
	}
}
