// Package mempoolservice implements the admission and serving façade over
// the mempool's PriorityPool: the checks a transaction must pass before it
// is held, and the batch-consistency checks a proposed block order must
// pass before it is accepted.
package mempoolservice

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/empower1/corechain/internal/mempool"
	"github.com/empower1/corechain/internal/types"
)

// Service is the MempoolService.
type Service struct {
	pool    *mempool.Pool
	adapter MemPoolAdapter

	argsMu    sync.RWMutex
	stateRoot types.Hash
	gasLimit  uint64
	maxTxSize uint64
}

// New constructs a Service over pool, using adapter for all admission and
// batch-resolution checks.
func New(pool *mempool.Pool, adapter MemPoolAdapter, gasLimit, maxTxSize uint64) *Service {
	return &Service{
		pool:      pool,
		adapter:   adapter,
		gasLimit:  gasLimit,
		maxTxSize: maxTxSize,
	}
}

// SetArgs updates the validation parameters atomically; the next admission
// call observes the new values.
func (s *Service) SetArgs(stateRoot types.Hash, gasLimit, maxTxSize uint64) {
	s.argsMu.Lock()
	s.stateRoot = stateRoot
	s.gasLimit = gasLimit
	s.maxTxSize = maxTxSize
	s.argsMu.Unlock()

	s.adapter.SetArgs(stateRoot, gasLimit, maxTxSize)
}

// Insert runs the admission pipeline and, on success, holds tx in the
// appropriate sub-queue. Insertion into the pool is the last step: a
// transaction is never left broadcast-but-unadmitted or admitted-but-
// unverified.
func (s *Service) Insert(ctx context.Context, tx *types.SignedTransaction) error {
	sysScript := tx.Unsigned.Action.IsSystemScript()

	if !sysScript && s.pool.Full() {
		return &mempool.ReachLimitError{PoolSize: s.pool.PoolSize()}
	}

	if err := s.adapter.CheckAuthorization(ctx, tx); err != nil {
		return &CheckAuthorizationError{Hash: tx.Hash, Err: err}
	}
	if err := s.adapter.CheckTransaction(ctx, tx); err != nil {
		return err
	}
	if err := s.adapter.CheckStorageExist(ctx, tx.Hash); err != nil {
		return &CommittedTxError{Hash: tx.Hash}
	}

	var insertErr error
	if sysScript {
		insertErr = s.pool.InsertSystemScriptTx(tx)
	} else {
		insertErr = s.pool.Insert(tx)
	}
	if insertErr != nil {
		return insertErr
	}

	if !IsNetworkOriginTxs(ctx) {
		// Rebroadcast, if it ever fails, is a peer-propagation concern: the
		// transaction is valid and already admitted, so it stays in the pool.
		s.adapter.BroadcastTx(ctx, tx)
	} else {
		s.adapter.ReportGood(ctx, tx)
	}
	return nil
}

// Package delegates to the pool.
func (s *Service) Package(ctx context.Context, gasLimit uint64, txNumLimit int) []types.Hash {
	return s.pool.Package(gasLimit, txNumLimit)
}

// Flush delegates to the pool; surviving transactions are re-checked for
// authorization against the latest state root, so a transaction can be
// evicted here purely due to nonce advancement.
func (s *Service) Flush(ctx context.Context, orderedTxHashes []types.Hash) {
	committed := make(map[types.Hash]bool, len(orderedTxHashes))
	for _, h := range orderedTxHashes {
		committed[h] = true
	}
	nonceCheck := func(tx *types.SignedTransaction) bool {
		return s.adapter.CheckAuthorization(ctx, tx) == nil
	}
	s.pool.Flush(committed, nonceCheck)
}

// GetFullTxs returns the transactions for hashes, resolving from the pool
// first and falling back to storage for any miss. If the resolved count
// still differs from len(hashes), it fails with *MisMatchError.
func (s *Service) GetFullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	out := make([]types.SignedTransaction, 0, len(hashes))
	var missing []types.Hash
	for _, h := range hashes {
		if tx, ok := s.pool.GetByHash(h); ok {
			out = append(out, *tx)
		} else {
			missing = append(missing, h)
		}
	}

	if len(missing) > 0 {
		fromStorage, err := s.adapter.GetTransactionsFromStorage(ctx, height, missing)
		if err != nil {
			return nil, err
		}
		out = append(out, fromStorage...)
	}

	if len(out) != len(hashes) {
		return nil, &MisMatchError{Require: len(hashes), Response: len(out)}
	}
	return out, nil
}

// EnsureOrderTxs validates a proposed block's transaction order: rejects
// duplicates, resolves any hash the pool doesn't already hold by pulling
// from peers, verifies the pulled batch in parallel, and admits verified
// transactions into the ordinary queue.
func (s *Service) EnsureOrderTxs(ctx context.Context, height types.BlockNumber, orderTxHashes []types.Hash) error {
	seen := make(map[types.Hash]bool, len(orderTxHashes))
	for _, h := range orderTxHashes {
		if seen[h] {
			return &EnsureDupError{Hash: h}
		}
		seen[h] = true
	}

	var unknown []types.Hash
	for h := range seen {
		if !s.pool.Contains(h) {
			unknown = append(unknown, h)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	pulled, err := s.adapter.PullTxs(ctx, height, unknown)
	if err != nil {
		return err
	}
	if len(pulled) != len(unknown) {
		return &EnsureBreakError{Require: len(unknown), Response: len(pulled)}
	}

	if err := s.verifyBatch(ctx, pulled); err != nil {
		return &VerifyBatchTransactionsError{Cause: err}
	}

	for i := range pulled {
		tx := &pulled[i]
		if insertErr := s.pool.Insert(tx); insertErr != nil {
			if _, dup := insertErr.(*mempool.DupError); dup {
				continue
			}
			return insertErr
		}
		s.adapter.ReportGood(ctx, tx)
	}
	return nil
}

// verifyBatch runs check_authorization/check_transaction/check_storage_exist
// over txs concurrently, mirroring verify_tx_in_parallel.
func (s *Service) verifyBatch(ctx context.Context, txs []types.SignedTransaction) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range txs {
		tx := &txs[i]
		g.Go(func() error {
			if err := s.adapter.CheckAuthorization(gctx, tx); err != nil {
				return &CheckAuthorizationError{Hash: tx.Hash, Err: err}
			}
			if err := s.adapter.CheckTransaction(gctx, tx); err != nil {
				return err
			}
			if err := s.adapter.CheckStorageExist(gctx, tx.Hash); err != nil {
				return &CommittedTxError{Hash: tx.Hash}
			}
			return nil
		})
	}
	return g.Wait()
}
