package consensus

import (
	"errors"
	"fmt"

	"github.com/empower1/corechain/internal/types"
)

// ErrEngineNotSet reports that UpdateStatus (or anything else requiring the
// BFT engine handle) was called before the handle was wired. This is a
// programmer error, not a runtime condition, and is never expected to occur
// in a correctly sequenced startup.
var ErrEngineNotSet = errors.New("consensus: BFT engine handle not set")

// ErrEngineAlreadySet reports a second attempt to wire the BFT engine handle.
var ErrEngineAlreadySet = errors.New("consensus: BFT engine handle already set")

// VerifyTransactionError wraps a verify_txs (ensure_order_txs) failure with
// the block number under consideration.
type VerifyTransactionError struct {
	Number types.BlockNumber
	Err    error
}

func (e *VerifyTransactionError) Error() string {
	return fmt.Sprintf("verify transactions at block %s: %v", e.Number, e.Err)
}

func (e *VerifyTransactionError) Unwrap() error { return e.Err }

// VerifyBlockHeaderError reports a header-linkage failure.
type VerifyBlockHeaderError struct {
	Number types.BlockNumber
	Field  string
}

func (e *VerifyBlockHeaderError) Error() string {
	return fmt.Sprintf("verify block header at %s: %s", e.Number, e.Field)
}
