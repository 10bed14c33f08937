// Package consensus implements the ConsensusAdapter: the bridge between the
// BFT engine and the rest of the node (mempool, storage, network, trie-db,
// cross-client, metadata), grounded on the original adapter.rs.
package consensus

import (
	"context"

	"github.com/empower1/corechain/internal/types"
)

// Priority hints a peer RPC's urgency to the transport.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// Target selects a broadcast's recipients.
type Target struct {
	Broadcast bool
	PublicKey []byte // used when Broadcast is false
}

// Network is the consumed peer-transport interface, spec.md §6 verbatim.
type Network interface {
	Broadcast(ctx context.Context, endpoint string, msg []byte) error
	Multicast(ctx context.Context, endpoint string, msg []byte, targets [][]byte) error
	Call(ctx context.Context, endpoint string, target []byte, req []byte, priority Priority) ([]byte, error)
}

// Storage is the consumed persistence interface, spec.md §6 verbatim.
type Storage interface {
	InsertBlock(ctx context.Context, block *types.Block) error
	UpdateLatestProof(ctx context.Context, proof *types.Proof) error
	InsertTransactions(ctx context.Context, number types.BlockNumber, txs []types.SignedTransaction) error
	InsertReceipts(ctx context.Context, number types.BlockNumber, receipts []types.Receipt) error
	GetBlock(ctx context.Context, number types.BlockNumber) (*types.Block, error)
	GetBlockHeader(ctx context.Context, number types.BlockNumber) (*types.Header, error)
	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
	GetTransactionByHash(ctx context.Context, hash types.Hash) (*types.SignedTransaction, error)
}

// MetadataControl is the consumed metadata interface, spec.md §6 verbatim.
type MetadataControl interface {
	NeedChangeMetadata(ctx context.Context, number types.BlockNumber) (bool, error)
	GetMetadata(ctx context.Context, header *types.Header) (*types.Metadata, error)
	GetMetadataUnchecked(ctx context.Context, header *types.Header) (*types.Metadata, error)
	UpdateMetadata(ctx context.Context, header *types.Header) error
}

// Executor is the consumed execution interface, spec.md §6 verbatim.
// Backend is left opaque: executor semantics are out of scope.
type Executor interface {
	Exec(ctx context.Context, backend any, txs []types.SignedTransaction) (*types.ExecResp, error)
}

// CrossClient forwards EVM logs and checkpoints after a block commits.
// Its own logic is out of scope (spec.md §1 non-goals); the adapter is a
// thin pass-through.
type CrossClient interface {
	SetEVMLog(ctx context.Context, number types.BlockNumber, logs []byte) error
	SetCheckpoint(ctx context.Context, number types.BlockNumber, checkpoint []byte) error
}

// MempoolService is the subset of mempoolservice.Service the adapter needs.
type MempoolService interface {
	Package(ctx context.Context, gasLimit uint64, txNumLimit int) []types.Hash
	GetFullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error)
	EnsureOrderTxs(ctx context.Context, height types.BlockNumber, orderTxHashes []types.Hash) error
	Flush(ctx context.Context, orderedTxHashes []types.Hash)
}

// ProofVerifier is the subset of proof.Verifier the adapter needs.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, block *types.Block, proof *types.Proof) error
}

// BFTEngine is the minimal surface the adapter drives once wired: advancing
// the engine to the next height.
type BFTEngine interface {
	UpdateStatus(ctx context.Context, status *RichStatus) error
}

// RichStatus is the status message sent to the BFT engine on each commit.
type RichStatus struct {
	Number     types.BlockNumber
	Validators types.AuthorityList
}
