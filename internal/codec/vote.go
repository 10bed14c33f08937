package codec

import (
	"encoding/binary"

	"github.com/empower1/corechain/internal/types"
)

// encodeItem prefixes raw with its big-endian uint32 length, the atomic unit
// of the length-prefixed recursive encoding.
func encodeItem(raw []byte) []byte {
	out := make([]byte, 4+len(raw))
	binary.BigEndian.PutUint32(out[:4], uint32(len(raw)))
	copy(out[4:], raw)
	return out
}

// encodeList concatenates pre-encoded items and wraps the result with its
// own length prefix, making the encoding recursive: a list is itself an item.
func encodeList(items ...[]byte) []byte {
	var body []byte
	for _, it := range items {
		body = append(body, it...)
	}
	return encodeItem(body)
}

// EncodeVote canonically encodes a Vote as a length-prefixed recursive
// structure: height, round, vote_type, block_hash, each length-prefixed and
// the whole wrapped in an outer length prefix. This, not gob or any other
// general envelope, is the exact byte layout the BLS aggregate signature
// covers (via its hash) — it must be reproducible identically by every
// signer and verifier.
func EncodeVote(v *types.Vote) []byte {
	heightBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(heightBuf, uint64(v.Height))

	roundBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(roundBuf, v.Round)

	return encodeList(
		encodeItem(heightBuf),
		encodeItem(roundBuf),
		encodeItem([]byte{byte(v.VoteType)}),
		encodeItem(v.BlockHash[:]),
	)
}

// HashVote encodes then hashes a Vote, producing the message a Proof's
// aggregated BLS signature is verified against.
func HashVote(v *types.Vote) types.Hash {
	return Hash(EncodeVote(v))
}
