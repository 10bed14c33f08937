package codec

import (
	"bytes"
	"testing"

	"github.com/empower1/corechain/internal/types"
)

func TestEncodeVoteDeterministic(t *testing.T) {
	v := &types.Vote{
		Height:    7,
		Round:     2,
		VoteType:  types.VotePrecommit,
		BlockHash: types.BytesToHash([]byte("block-seven")),
	}

	a := EncodeVote(v)
	b := EncodeVote(v)
	if !bytes.Equal(a, b) {
		t.Fatalf("EncodeVote is not deterministic for identical input")
	}
}

func TestEncodeVoteDistinguishesFields(t *testing.T) {
	base := &types.Vote{Height: 1, Round: 0, VoteType: types.VotePrecommit, BlockHash: types.BytesToHash([]byte("a"))}
	other := &types.Vote{Height: 2, Round: 0, VoteType: types.VotePrecommit, BlockHash: types.BytesToHash([]byte("a"))}

	if bytes.Equal(EncodeVote(base), EncodeVote(other)) {
		t.Errorf("votes with different heights encoded identically")
	}
}

func TestHashVoteMatchesHashOfEncoding(t *testing.T) {
	v := &types.Vote{Height: 3, Round: 1, VoteType: types.VotePrecommit, BlockHash: types.BytesToHash([]byte("x"))}
	if HashVote(v) != Hash(EncodeVote(v)) {
		t.Errorf("HashVote did not match Hash(EncodeVote(v))")
	}
}
