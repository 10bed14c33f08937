// Package types defines the core wire and in-memory data model shared by
// every subsystem of the node: hashes, addresses, transactions, blocks,
// proposals, proofs, authorities, and per-epoch metadata.
package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/empower1/corechain/internal/crypto"
)

// HashLength is the size in bytes of a project-wide content-addressed hash.
const HashLength = 32

// AddressLength is the size in bytes of an account address.
const AddressLength = 20

// Hash is a fixed 32-byte content-addressed identifier.
type Hash [HashLength]byte

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, h[:])
	return out
}

// String renders the hash as a "0x"-prefixed hex string.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// BytesToHash copies b (truncating or left-padding with zeroes) into a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Address is a 20-byte account identifier.
type Address [AddressLength]byte

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// String renders the address as a "0x"-prefixed hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// BytesToAddress copies b (truncating or left-padding with zeroes) into an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// AddressFromPublicKey derives an account address from a raw public key:
// RIPEMD160(SHA256(pubKey)), the project's standard public-key-to-address
// derivation. Used both for a validator's signing identity and for
// authenticating a transaction's claimed sender against its public key.
func AddressFromPublicKey(pubKey []byte) (Address, error) {
	hash, err := crypto.HashPublicKey(pubKey)
	if err != nil {
		return Address{}, fmt.Errorf("derive address from public key: %w", err)
	}
	return BytesToAddress(hash), nil
}

// BlockNumber is a monotonic unsigned 64-bit block height.
type BlockNumber uint64

// Bytes returns the big-endian 8-byte encoding of the block number, used as
// a sort-preserving storage key component.
func (n BlockNumber) Bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func (n BlockNumber) String() string {
	return fmt.Sprintf("%d", uint64(n))
}
