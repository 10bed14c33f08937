package mempoolservice

import (
	"errors"
	"fmt"

	"github.com/empower1/corechain/internal/types"
)

// Admission error kinds, raised either by this package or by a
// MemPoolAdapter implementation's CheckTransaction/CheckAuthorization.

type ExceedSizeLimitError struct {
	Size, Limit uint64
}

func (e *ExceedSizeLimitError) Error() string {
	return fmt.Sprintf("transaction size %d exceeds limit %d", e.Size, e.Limit)
}

type ExceedGasLimitError struct {
	Gas, Limit uint64
}

func (e *ExceedGasLimitError) Error() string {
	return fmt.Sprintf("transaction gas %d exceeds limit %d", e.Gas, e.Limit)
}

type InvalidNonceError struct {
	Have, Want uint64
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid nonce: have %d, account nonce %d", e.Have, e.Want)
}

// CheckAuthorizationError wraps a signature/nonce/sender-recovery failure
// from the adapter's CheckAuthorization.
type CheckAuthorizationError struct {
	Hash types.Hash
	Err  error
}

func (e *CheckAuthorizationError) Error() string {
	return fmt.Sprintf("check_authorization(%s): %v", e.Hash, e.Err)
}

func (e *CheckAuthorizationError) Unwrap() error { return e.Err }

type CheckHashError struct {
	Hash types.Hash
}

func (e *CheckHashError) Error() string {
	return fmt.Sprintf("transaction hash %s does not match its encoding", e.Hash)
}

// CommittedTxError reports that a transaction already exists on chain.
type CommittedTxError struct {
	Hash types.Hash
}

func (e *CommittedTxError) Error() string {
	return fmt.Sprintf("transaction %s is already committed", e.Hash)
}

type WrongChainError struct {
	Have, Want uint64
}

func (e *WrongChainError) Error() string {
	return fmt.Sprintf("wrong chain id: have %d, want %d", e.Have, e.Want)
}

// ErrTimeout reports that a transaction's timeout height has already passed.
var ErrTimeout = errors.New("mempool: transaction timed out")

type InvalidTimeoutError struct {
	TimeoutAt types.BlockNumber
}

func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid timeout height %s", e.TimeoutAt)
}

// Batch error kinds, raised by EnsureOrderTxs/GetFullTxs.

// EnsureBreakError reports that pull_txs returned a different number of
// transactions than the set of unknown hashes it was asked to resolve.
type EnsureBreakError struct {
	Require, Response int
}

func (e *EnsureBreakError) Error() string {
	return fmt.Sprintf("pull_txs returned %d transactions, want %d", e.Response, e.Require)
}

// EnsureDupError reports a duplicate hash within a proposed transaction order.
type EnsureDupError struct {
	Hash types.Hash
}

func (e *EnsureDupError) Error() string {
	return fmt.Sprintf("duplicate hash %s in proposed order", e.Hash)
}

// MisMatchError reports that GetFullTxs could not resolve every requested
// hash, even after falling back to storage.
type MisMatchError struct {
	Require, Response int
}

func (e *MisMatchError) Error() string {
	return fmt.Sprintf("resolved %d of %d requested transactions", e.Response, e.Require)
}

// VerifyBatchTransactionsError wraps the first failure encountered while
// verifying a pulled batch of unknown transactions in parallel.
type VerifyBatchTransactionsError struct {
	Cause error
}

func (e *VerifyBatchTransactionsError) Error() string {
	return fmt.Sprintf("verify_batch_transactions: %v", e.Cause)
}

func (e *VerifyBatchTransactionsError) Unwrap() error { return e.Cause }
