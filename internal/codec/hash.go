// Package codec implements the project's canonical byte-exact wire encoding:
// Keccak-256 hashing and the length-prefixed recursive Vote encoder that BLS
// signatures are computed over.
package codec

import (
	"golang.org/x/crypto/sha3"

	"github.com/empower1/corechain/internal/types"
)

// Hash computes the project-wide 32-byte Keccak-256 hash of data.
func Hash(data []byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashHeader computes a Header's identity hash.
func HashHeader(h *types.Header) types.Hash {
	return Hash(h.HashFields())
}

// HashProposal computes a Proposal's consensus commitment hash, the value
// voters sign and a Proof's BlockHash must match.
func HashProposal(p *types.Proposal) types.Hash {
	return Hash(p.HashFields())
}
