package consensus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/metrics"
	"github.com/empower1/corechain/internal/types"
)

// Adapter is the ConsensusAdapter: it holds every collaborator the BFT
// engine needs and exposes the proposal-lifecycle, network/sync, and
// storage/metadata method groups of spec.md §4.4.
type Adapter struct {
	network     Network
	storage     Storage
	metadata    MetadataControl
	executor    Executor
	mempool     MempoolService
	proof       ProofVerifier
	crossClient CrossClient
	logger      *zap.Logger

	execPool *blockingPool

	// engineMu guards the write-once BFT engine handle: set exactly once,
	// after the engine itself is constructed, then read for the lifetime
	// of the node.
	engineMu sync.RWMutex
	engine   BFTEngine
}

// New constructs an Adapter. The BFT engine handle is wired later via
// SetEngine, once the engine has been constructed from this same adapter.
func New(network Network, storage Storage, metadata MetadataControl, executor Executor, mempool MempoolService, proof ProofVerifier, crossClient CrossClient, execWorkers int, logger *zap.Logger) *Adapter {
	return &Adapter{
		network:     network,
		storage:     storage,
		metadata:    metadata,
		executor:    executor,
		mempool:     mempool,
		proof:       proof,
		crossClient: crossClient,
		logger:      logger,
		execPool:    newBlockingPool(execWorkers),
	}
}

// SetEngine wires the BFT engine handle. Calling it twice is a programmer
// error and returns ErrEngineAlreadySet.
func (a *Adapter) SetEngine(engine BFTEngine) error {
	a.engineMu.Lock()
	defer a.engineMu.Unlock()
	if a.engine != nil {
		return ErrEngineAlreadySet
	}
	a.engine = engine
	return nil
}

func (a *Adapter) engineHandle() BFTEngine {
	a.engineMu.RLock()
	defer a.engineMu.RUnlock()
	return a.engine
}

// --- Proposal lifecycle (consensus-facing) ---

func (a *Adapter) GetTxsFromMempool(ctx context.Context, number types.BlockNumber, gasLimit uint64, txNumLimit int) []types.Hash {
	return a.mempool.Package(ctx, gasLimit, txNumLimit)
}

func (a *Adapter) GetFullTxs(ctx context.Context, height types.BlockNumber, hashes []types.Hash) ([]types.SignedTransaction, error) {
	return a.mempool.GetFullTxs(ctx, height, hashes)
}

func (a *Adapter) VerifyTxs(ctx context.Context, number types.BlockNumber, hashes []types.Hash) error {
	if err := a.mempool.EnsureOrderTxs(ctx, number, hashes); err != nil {
		return &VerifyTransactionError{Number: number, Err: err}
	}
	return nil
}

// Exec runs the executor on a blocking worker, rooted at lastStateRoot, so
// that a CPU-heavy execution never stalls the cooperative scheduler.
func (a *Adapter) Exec(ctx context.Context, lastStateRoot types.Hash, proposal *types.Proposal, signedTxs []types.SignedTransaction) (*types.ExecResp, error) {
	start := time.Now()
	var resp *types.ExecResp
	err := a.execPool.run(ctx, func() error {
		backend := newExecBackend(lastStateRoot, proposal)
		r, err := a.executor.Exec(ctx, backend, signedTxs)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	metrics.ConsensusExecLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("exec proposal %s: %w", proposal.Number, err)
	}
	return resp, nil
}

// --- Network/sync ---

func (a *Adapter) Transmit(ctx context.Context, endpoint string, msg []byte, target Target) error {
	if target.Broadcast {
		return a.network.Broadcast(ctx, endpoint, msg)
	}
	return a.network.Multicast(ctx, endpoint, msg, [][]byte{target.PublicKey})
}

func (a *Adapter) rpc(ctx context.Context, endpoint string, target []byte, req []byte) ([]byte, error) {
	resp, err := a.network.Call(ctx, endpoint, target, req, PriorityHigh)
	if err != nil {
		metrics.ConsensusRPC.WithLabelValues(endpoint, "failure").Inc()
		return nil, err
	}
	metrics.ConsensusRPC.WithLabelValues(endpoint, "success").Inc()
	return resp, nil
}

func (a *Adapter) PullBlock(ctx context.Context, target []byte, number types.BlockNumber) ([]byte, error) {
	return a.rpc(ctx, "pull_block", target, number.Bytes())
}

func (a *Adapter) GetBlockFromRemote(ctx context.Context, target []byte, number types.BlockNumber) ([]byte, error) {
	return a.rpc(ctx, "pull_block", target, number.Bytes())
}

func (a *Adapter) GetTxsFromRemote(ctx context.Context, target []byte, req *types.PullTxsRequest) (*types.BatchSignedTxs, error) {
	raw, err := a.rpc(ctx, "pull_txs", target, encodeGob(req))
	if err != nil {
		return nil, err
	}
	var batch types.BatchSignedTxs
	if err := decodeGob(raw, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (a *Adapter) GetProofFromRemote(ctx context.Context, target []byte, number types.BlockNumber) ([]byte, error) {
	return a.rpc(ctx, "pull_proof", target, number.Bytes())
}

func (a *Adapter) BroadcastNumber(ctx context.Context, number types.BlockNumber) error {
	return a.network.Broadcast(ctx, "broadcast_height", number.Bytes())
}

// UpdateStatus advances the BFT engine to the next height. Calling this
// before SetEngine is a programmer error: it panics, matching the write-
// once-handle invariant spec.md §4.4 requires.
func (a *Adapter) UpdateStatus(ctx context.Context, number types.BlockNumber, validators types.AuthorityList) error {
	engine := a.engineHandle()
	if engine == nil {
		panic(ErrEngineNotSet)
	}
	return engine.UpdateStatus(ctx, &RichStatus{Number: number + 1, Validators: validators})
}

// --- Storage/metadata ---

func (a *Adapter) SaveBlock(ctx context.Context, block *types.Block) error {
	return a.storage.InsertBlock(ctx, block)
}

func (a *Adapter) SaveProof(ctx context.Context, proof *types.Proof) error {
	return a.storage.UpdateLatestProof(ctx, proof)
}

func (a *Adapter) SaveSignedTxs(ctx context.Context, number types.BlockNumber, txs []types.SignedTransaction) error {
	return a.storage.InsertTransactions(ctx, number, txs)
}

func (a *Adapter) SaveReceipts(ctx context.Context, number types.BlockNumber, receipts []types.Receipt) error {
	return a.storage.InsertReceipts(ctx, number, receipts)
}

func (a *Adapter) FlushMempool(ctx context.Context, committedHashes []types.Hash) {
	a.mempool.Flush(ctx, committedHashes)
}

func (a *Adapter) GetBlockByNumber(ctx context.Context, number types.BlockNumber) (*types.Block, error) {
	return a.storage.GetBlock(ctx, number)
}

func (a *Adapter) GetBlockHeaderByNumber(ctx context.Context, number types.BlockNumber) (*types.Header, error) {
	return a.storage.GetBlockHeader(ctx, number)
}

func (a *Adapter) GetCurrentNumber(ctx context.Context) (types.BlockNumber, error) {
	header, err := a.storage.GetLatestBlockHeader(ctx)
	if err != nil {
		return 0, err
	}
	return header.Number, nil
}

func (a *Adapter) GetTxsFromStorage(ctx context.Context, hashes []types.Hash) ([]types.SignedTransaction, error) {
	out := make([]types.SignedTransaction, 0, len(hashes))
	for _, h := range hashes {
		tx, err := a.storage.GetTransactionByHash(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, nil
}

func (a *Adapter) NeedChangeMetadata(ctx context.Context, number types.BlockNumber) (bool, error) {
	return a.metadata.NeedChangeMetadata(ctx, number)
}

func (a *Adapter) GetMetadata(ctx context.Context, header *types.Header) (*types.Metadata, error) {
	return a.metadata.GetMetadata(ctx, header)
}

func (a *Adapter) UpdateMetadata(ctx context.Context, header *types.Header) error {
	return a.metadata.UpdateMetadata(ctx, header)
}

// --- Header and proof verification ---

// VerifyBlockHeader checks that proposal links to the locally stored
// previous header.
func (a *Adapter) VerifyBlockHeader(ctx context.Context, proposal *types.Proposal) error {
	prev, err := a.storage.GetBlockHeader(ctx, proposal.Number-1)
	if err != nil {
		return fmt.Errorf("verify block header: load header %s: %w", proposal.Number-1, err)
	}
	if codec.HashHeader(prev) != proposal.PrevHash {
		return &VerifyBlockHeaderError{Number: proposal.Number, Field: "previous_block_hash"}
	}
	return nil
}

func (a *Adapter) VerifyProof(ctx context.Context, block *types.Block, proof *types.Proof) error {
	return a.proof.VerifyProof(ctx, block, proof)
}

// --- Supplemented: cross-client forwarding and consensus tagging ---

// NotifyBlockLogs forwards a committed block's EVM logs to the cross-chain
// client. Present in the original adapter (adapter.rs lines 536-550);
// dropped by the distillation, kept here as a thin pass-through since
// CrossClient's own logic stays out of scope.
func (a *Adapter) NotifyBlockLogs(ctx context.Context, number types.BlockNumber, logs []byte) error {
	if a.crossClient == nil {
		return nil
	}
	return a.crossClient.SetEVMLog(ctx, number, logs)
}

// NotifyCheckpoint forwards a commit checkpoint to the cross-chain client.
func (a *Adapter) NotifyCheckpoint(ctx context.Context, number types.BlockNumber, checkpoint []byte) error {
	if a.crossClient == nil {
		return nil
	}
	return a.crossClient.SetCheckpoint(ctx, number, checkpoint)
}

// TagConsensus is present in the original interface unimplemented (adapter.rs
// line 387, returns Ok(()) with a commented-out body). Kept as a stub: no
// invented semantics.
// TODO: wire once the BFT engine exposes a peer-tagging hook.
func (a *Adapter) TagConsensus(ctx context.Context, peers [][]byte) error {
	return nil
}
