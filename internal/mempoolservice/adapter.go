package mempoolservice

import (
	"context"

	"github.com/empower1/corechain/internal/types"
)

// MemPoolAdapter is the set of collaborators MempoolService needs from the
// rest of the node: authorization/validity checks, peer scoring, and
// storage/network fallbacks. A concrete implementation lives alongside the
// consensus adapter, which shares the same underlying state/storage handles.
type MemPoolAdapter interface {
	CheckAuthorization(ctx context.Context, tx *types.SignedTransaction) error
	CheckTransaction(ctx context.Context, tx *types.SignedTransaction) error
	CheckStorageExist(ctx context.Context, hash types.Hash) error
	BroadcastTx(ctx context.Context, tx *types.SignedTransaction) error
	PullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error)
	GetTransactionsFromStorage(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error)
	SetArgs(stateRoot types.Hash, gasLimit, maxTxSize uint64)
	ReportGood(ctx context.Context, tx *types.SignedTransaction)
}

type networkOriginKey struct{}

// WithNetworkOrigin marks ctx as carrying a transaction that arrived over
// the network, rather than submitted locally, mirroring
// ctx.is_network_origin_txs() in the admission pipeline.
func WithNetworkOrigin(ctx context.Context) context.Context {
	return context.WithValue(ctx, networkOriginKey{}, true)
}

// IsNetworkOriginTxs reports whether ctx was marked by WithNetworkOrigin.
func IsNetworkOriginTxs(ctx context.Context) bool {
	v, _ := ctx.Value(networkOriginKey{}).(bool)
	return v
}
