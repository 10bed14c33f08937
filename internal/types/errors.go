package types

import (
	"errors"
	"fmt"
)

// Storage/trie error kinds (spec.md §7 "Storage/trie").
var (
	ErrStore            = errors.New("store operation failed")
	ErrLengthMismatch   = errors.New("key/value slice length mismatch")
	ErrCreateDB         = errors.New("failed to create database")
	ErrStorageItemNotFound = errors.New("storage item not found")
)

// ProofField names the specific stage of proof verification that failed,
// carried alongside VerifyProofError for diagnostics.
type ProofField string

const (
	ProofFieldHeightMismatch  ProofField = "HeightMismatch"
	ProofFieldHashMismatch    ProofField = "HashMismatch"
	ProofFieldBitMap          ProofField = "BitMap"
	ProofFieldSignature       ProofField = "Signature"
	ProofFieldWeight          ProofField = "Weight"
	ProofFieldWeightNotFound  ProofField = "WeightNotFound"
	ProofFieldValidator       ProofField = "Validator"
)

// VerifyProofError reports a proof-verification failure; every variant
// carries the block number for diagnostics per spec.md §7.
type VerifyProofError struct {
	Number BlockNumber
	Field  ProofField
}

func (e *VerifyProofError) Error() string {
	return fmt.Sprintf("verify proof failed at block %d: %s", uint64(e.Number), e.Field)
}

// VerifyBlockHeaderError reports a header-linkage failure.
type VerifyBlockHeaderError struct {
	Number BlockNumber
	Field  string
}

func (e *VerifyBlockHeaderError) Error() string {
	return fmt.Sprintf("verify block header failed at block %d: %s", uint64(e.Number), e.Field)
}

// VerifyTransactionError wraps a batch transaction verification failure with
// the block number it was attempted for.
type VerifyTransactionError struct {
	Number BlockNumber
	Err    error
}

func (e *VerifyTransactionError) Error() string {
	return fmt.Sprintf("verify transactions failed at block %d: %v", uint64(e.Number), e.Err)
}

func (e *VerifyTransactionError) Unwrap() error {
	return e.Err
}

// ConfusedMetadataError reports a block number falling outside every known
// metadata version range.
type ConfusedMetadataError struct {
	Start BlockNumber
	End   BlockNumber
}

func (e *ConfusedMetadataError) Error() string {
	return fmt.Sprintf("confused metadata: block outside range [%d, %d)", uint64(e.Start), uint64(e.End))
}

// ErrOverlord wraps an opaque error surfaced by the BFT engine.
var ErrOverlord = errors.New("overlord engine error")
