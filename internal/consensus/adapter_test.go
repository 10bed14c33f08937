package consensus

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/types"
)

type fakeStorage struct {
	headers map[types.BlockNumber]*types.Header
}

func (f *fakeStorage) InsertBlock(ctx context.Context, block *types.Block) error { return nil }
func (f *fakeStorage) UpdateLatestProof(ctx context.Context, proof *types.Proof) error { return nil }
func (f *fakeStorage) InsertTransactions(ctx context.Context, number types.BlockNumber, txs []types.SignedTransaction) error {
	return nil
}
func (f *fakeStorage) InsertReceipts(ctx context.Context, number types.BlockNumber, receipts []types.Receipt) error {
	return nil
}
func (f *fakeStorage) GetBlock(ctx context.Context, number types.BlockNumber) (*types.Block, error) {
	return nil, nil
}
func (f *fakeStorage) GetBlockHeader(ctx context.Context, number types.BlockNumber) (*types.Header, error) {
	h, ok := f.headers[number]
	if !ok {
		return nil, types.ErrStorageItemNotFound
	}
	return h, nil
}
func (f *fakeStorage) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return nil, nil
}
func (f *fakeStorage) GetTransactionByHash(ctx context.Context, hash types.Hash) (*types.SignedTransaction, error) {
	return nil, nil
}

func newTestAdapter(storage Storage) *Adapter {
	return New(nil, storage, nil, nil, nil, nil, nil, 2, zap.NewNop())
}

// TestVerifyBlockHeaderLinkage covers P5 and scenario 4.
func TestVerifyBlockHeaderLinkage(t *testing.T) {
	header6 := &types.Header{Number: 6, PrevHash: types.BytesToHash([]byte("header5"))}
	storage := &fakeStorage{headers: map[types.BlockNumber]*types.Header{6: header6}}
	adapter := newTestAdapter(storage)

	proposal := &types.Proposal{Number: 7, PrevHash: codec.HashHeader(header6)}
	if err := adapter.VerifyBlockHeader(context.Background(), proposal); err != nil {
		t.Fatalf("VerifyBlockHeader() error = %v, want nil", err)
	}

	tampered := proposal.PrevHash
	tampered[0] ^= 0xFF
	badProposal := &types.Proposal{Number: 7, PrevHash: tampered}
	err := adapter.VerifyBlockHeader(context.Background(), badProposal)
	verr, ok := err.(*VerifyBlockHeaderError)
	if !ok || verr.Field != "previous_block_hash" {
		t.Fatalf("VerifyBlockHeader() error = %v, want *VerifyBlockHeaderError{previous_block_hash}", err)
	}
}

func TestSetEngineOnce(t *testing.T) {
	adapter := newTestAdapter(&fakeStorage{headers: map[types.BlockNumber]*types.Header{}})
	if err := adapter.SetEngine(fakeEngine{}); err != nil {
		t.Fatalf("SetEngine() error = %v", err)
	}
	if err := adapter.SetEngine(fakeEngine{}); err != ErrEngineAlreadySet {
		t.Fatalf("SetEngine() second call error = %v, want ErrEngineAlreadySet", err)
	}
}

func TestUpdateStatusPanicsBeforeEngineSet(t *testing.T) {
	adapter := newTestAdapter(&fakeStorage{headers: map[types.BlockNumber]*types.Header{}})
	defer func() {
		if recover() == nil {
			t.Fatalf("UpdateStatus() before SetEngine did not panic")
		}
	}()
	adapter.UpdateStatus(context.Background(), 1, nil)
}

type fakeEngine struct{}

func (fakeEngine) UpdateStatus(ctx context.Context, status *RichStatus) error { return nil }
