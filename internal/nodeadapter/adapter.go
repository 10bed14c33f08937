// Package nodeadapter wires mempoolservice.MemPoolAdapter against the
// node's concrete storage and network, the glue layer main() assembles at
// startup.
package nodeadapter

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sync"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/crypto"
	"github.com/empower1/corechain/internal/mempoolservice"
	"github.com/empower1/corechain/internal/storage"
	"github.com/empower1/corechain/internal/types"
)

// Adapter implements mempoolservice.MemPoolAdapter.
type Adapter struct {
	store *storage.Storage

	chainID    uint64
	timeoutGap uint64

	argsMu    sync.RWMutex
	stateRoot types.Hash
	gasLimit  uint64
	maxTxSize uint64

	broadcast func(ctx context.Context, tx *types.SignedTransaction) error
	pullTxs   func(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error)
}

// New constructs an Adapter. chainID and timeoutGap are the node's
// governance-level constants (set once, unlike gasLimit/maxTxSize which
// change with metadata and are updated via SetArgs). broadcast and pullTxs
// are supplied by the network layer once it is wired (left nil is
// acceptable for a node that only serves, never originates, traffic).
func New(store *storage.Storage, chainID, timeoutGap uint64, broadcast func(ctx context.Context, tx *types.SignedTransaction) error, pullTxs func(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error)) *Adapter {
	return &Adapter{store: store, chainID: chainID, timeoutGap: timeoutGap, broadcast: broadcast, pullTxs: pullTxs}
}

var _ mempoolservice.MemPoolAdapter = (*Adapter)(nil)

func (a *Adapter) args() (uint64, uint64) {
	a.argsMu.RLock()
	defer a.argsMu.RUnlock()
	return a.gasLimit, a.maxTxSize
}

func (a *Adapter) currentHeight(ctx context.Context) types.BlockNumber {
	header, err := a.store.GetLatestBlockHeader(ctx)
	if err != nil {
		return 0
	}
	return header.Number
}

// CheckAuthorization authenticates the transaction's claimed sender from the
// public key it carries (no key recovery is done): tx.PublicKey must hash to tx.Sender, and tx.Signature
// must verify over the hash of the unsigned payload under that key.
func (a *Adapter) CheckAuthorization(ctx context.Context, tx *types.SignedTransaction) error {
	if len(tx.Signature) == 0 {
		return fmt.Errorf("transaction %s carries no signature", tx.Hash)
	}
	if len(tx.PublicKey) == 0 {
		return fmt.Errorf("transaction %s carries no public key", tx.Hash)
	}

	addr, err := types.AddressFromPublicKey(tx.PublicKey)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", tx.Hash, err)
	}
	if addr != tx.Sender {
		return fmt.Errorf("transaction %s: public key derives address %s, want claimed sender %s", tx.Hash, addr, tx.Sender)
	}

	pubKey, err := crypto.DeserializePublicKeyFromBytes(tx.PublicKey)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", tx.Hash, err)
	}

	encoded, err := tx.Unsigned.Encode()
	if err != nil {
		return fmt.Errorf("transaction %s: encode unsigned payload: %w", tx.Hash, err)
	}
	digest := codec.Hash(encoded)
	if !ecdsa.VerifyASN1(pubKey, digest.Bytes(), tx.Signature) {
		return fmt.Errorf("transaction %s: signature does not verify against public key", tx.Hash)
	}
	return nil
}

func (a *Adapter) CheckTransaction(ctx context.Context, tx *types.SignedTransaction) error {
	if tx.Unsigned.ChainID != a.chainID {
		return &mempoolservice.WrongChainError{Have: tx.Unsigned.ChainID, Want: a.chainID}
	}

	gasLimit, maxTxSize := a.args()

	encoded, err := tx.Unsigned.Encode()
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.Hash, err)
	}
	if maxTxSize > 0 && uint64(len(encoded)) > maxTxSize {
		return &mempoolservice.ExceedSizeLimitError{Size: uint64(len(encoded)), Limit: maxTxSize}
	}
	if gasLimit > 0 && tx.Unsigned.GasLimit > gasLimit {
		return &mempoolservice.ExceedGasLimitError{Gas: tx.Unsigned.GasLimit, Limit: gasLimit}
	}

	height := a.currentHeight(ctx)
	if tx.Unsigned.TimeoutAt <= height {
		return fmt.Errorf("%w: transaction %s timeout %s, current height %s", mempoolservice.ErrTimeout, tx.Hash, tx.Unsigned.TimeoutAt, height)
	}
	if uint64(tx.Unsigned.TimeoutAt) > uint64(height)+a.timeoutGap {
		return &mempoolservice.InvalidTimeoutError{TimeoutAt: tx.Unsigned.TimeoutAt}
	}
	return nil
}

func (a *Adapter) CheckStorageExist(ctx context.Context, hash types.Hash) error {
	if _, err := a.store.GetTransactionByHash(ctx, hash); err == nil {
		return fmt.Errorf("transaction %s already on chain", hash)
	}
	return nil
}

func (a *Adapter) BroadcastTx(ctx context.Context, tx *types.SignedTransaction) error {
	if a.broadcast == nil {
		return nil
	}
	return a.broadcast(ctx, tx)
}

func (a *Adapter) PullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	if a.pullTxs == nil {
		return nil, nil
	}
	return a.pullTxs(ctx, height, hashes)
}

func (a *Adapter) GetTransactionsFromStorage(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	out := make([]types.SignedTransaction, 0, len(hashes))
	for _, h := range hashes {
		tx, err := a.store.GetTransactionByHash(ctx, h)
		if err != nil {
			continue
		}
		out = append(out, *tx)
	}
	return out, nil
}

func (a *Adapter) SetArgs(stateRoot types.Hash, gasLimit, maxTxSize uint64) {
	a.argsMu.Lock()
	a.stateRoot = stateRoot
	a.gasLimit = gasLimit
	a.maxTxSize = maxTxSize
	a.argsMu.Unlock()
}

func (a *Adapter) ReportGood(ctx context.Context, tx *types.SignedTransaction) {}
