package types

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Action classifies the intent of a transaction's payload. It lets the
// mempool and consensus layers route system-privileged transactions into
// their own sub-queue without understanding execution semantics, which stay
// the executor's concern.
type Action uint8

const (
	// ActionCall invokes an existing contract or account.
	ActionCall Action = iota
	// ActionCreate deploys new contract code.
	ActionCreate
	// ActionSystemScript invokes a privileged, chain-governance script.
	ActionSystemScript
)

// IsSystemScript reports whether the action targets a system script,
// approximating the executor's own classification without depending on it.
func (a Action) IsSystemScript() bool {
	return a == ActionSystemScript
}

func (a Action) String() string {
	switch a {
	case ActionCall:
		return "call"
	case ActionCreate:
		return "create"
	case ActionSystemScript:
		return "system_script"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// UnsignedTransaction is the part of a transaction a sender signs over.
type UnsignedTransaction struct {
	Nonce     uint64
	GasLimit  uint64
	GasPrice  uint64
	Action    Action
	To        Address
	Payload   []byte
	ChainID   uint64
	TimeoutAt BlockNumber
}

// SignedTransaction is the envelope carried through the mempool and into a
// block: an unsigned transaction, the signer's public key, the signature
// over the unsigned payload's hash, the claimed sender, and a precomputed
// hash.
//
// Invariant: Hash == H(encode(Unsigned) || Signature). The sender is
// authenticated, not merely claimed: CheckAuthorization derives an address
// from PublicKey and rejects the transaction unless it equals Sender.
type SignedTransaction struct {
	Unsigned  UnsignedTransaction
	PublicKey []byte
	Signature []byte
	Sender    Address
	Hash      Hash
}

// Encode serializes t with gob, the project's convention for internal
// envelopes that do not need to be BLS-signed byte-exact (only Vote does).
func (t *UnsignedTransaction) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode unsigned transaction: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeUnsignedTransaction is the inverse of Encode.
func DecodeUnsignedTransaction(data []byte) (*UnsignedTransaction, error) {
	var t UnsignedTransaction
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode unsigned transaction: %w", err)
	}
	return &t, nil
}

// Encode serializes the full signed envelope with gob.
func (t *SignedTransaction) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode signed transaction: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSignedTransaction is the inverse of Encode.
func DecodeSignedTransaction(data []byte) (*SignedTransaction, error) {
	var t SignedTransaction
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}
	return &t, nil
}

// GasPriceOf returns the transaction's fee-per-gas, the priority used by the
// ordinary mempool queue.
func (t *SignedTransaction) GasPriceOf() uint64 {
	return t.Unsigned.GasPrice
}

// Receipt is the minimal post-execution record the core persists; the
// details of what a receipt carries (logs, status, gas used per tx) remain
// the executor's concern.
type Receipt struct {
	TxHash      Hash
	BlockNumber BlockNumber
}

// ExecResp is the executor's return envelope for a single proposal
// execution: the new state root, the receipts produced, and total gas used.
type ExecResp struct {
	StateRoot Hash
	Receipts  []Receipt
	GasUsed   uint64
}

// BatchSignedTxs is the wire response envelope for the pull_txs RPC.
type BatchSignedTxs struct {
	Inner []SignedTransaction
}

// PullTxsRequest is the wire request envelope for the pull_txs RPC.
type PullTxsRequest struct {
	Number BlockNumber
	Hashes []Hash
}
