package nodeadapter

import (
	"context"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/types"
)

// StubExecutor is a placeholder Executor: execution semantics (state
// transition, gas accounting, logs) are out of scope. It produces a
// deterministic state root and one receipt per transaction carrying only
// its hash, so the proposal lifecycle
// around it (exec -> save_receipts -> flush_mempool) can be exercised
// end-to-end without depending on a real VM.
type StubExecutor struct{}

func (StubExecutor) Exec(ctx context.Context, backend any, txs []types.SignedTransaction) (*types.ExecResp, error) {
	receipts := make([]types.Receipt, len(txs))
	hashes := make([][]byte, len(txs))
	for i, tx := range txs {
		receipts[i] = types.Receipt{TxHash: tx.Hash}
		hashes[i] = tx.Hash[:]
	}

	var flat []byte
	for _, h := range hashes {
		flat = append(flat, h...)
	}

	return &types.ExecResp{
		StateRoot: codec.Hash(flat),
		Receipts:  receipts,
	}, nil
}
