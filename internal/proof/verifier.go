// Package proof implements the ProofVerifier: checking that a BFT Proof
// justifies a given Block, grounded on the original consensus adapter's
// verify_proof/verify_proof_weight/verify_proof_signature.
package proof

import (
	"context"
	"fmt"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/types"
)

// MetadataControl is the collaborator ProofVerifier needs to resolve the
// authority set active at a given header.
type MetadataControl interface {
	GetMetadata(ctx context.Context, header *types.Header) (*types.Metadata, error)
}

// Verifier implements the 8-step proof-verification algorithm of spec.md
// §4.5. verifyAggregate is a field, not a free function call, so tests can
// substitute a fake BLS backend without a real keypair.
type Verifier struct {
	metadata        MetadataControl
	verifyAggregate func(pubKeys [][]byte, msg []byte, sig []byte) (bool, error)
}

// New constructs a Verifier backed by metadata and the real BLS backend.
func New(metadata MetadataControl) *Verifier {
	return &Verifier{metadata: metadata, verifyAggregate: verifyBLSAggregate}
}

// VerifyProof checks that proof justifies block.
func (v *Verifier) VerifyProof(ctx context.Context, block *types.Block, proof *types.Proof) error {
	number := block.Header.Number

	if number == 0 {
		return nil
	}

	if number != proof.Number {
		return &types.VerifyProofError{Number: number, Field: types.ProofFieldHeightMismatch}
	}

	proposal := types.ProposalFromBlock(block)
	proposalHash := codec.HashProposal(proposal)
	if proposalHash != proof.BlockHash {
		return &types.VerifyProofError{Number: number, Field: types.ProofFieldHashMismatch}
	}

	metadata, err := v.metadata.GetMetadata(ctx, &block.Header)
	if err != nil {
		return fmt.Errorf("proof: get_metadata(%s): %w", number, err)
	}
	if !metadata.Version.Contains(number) {
		return &types.ConfusedMetadataError{Start: metadata.Version.Start, End: metadata.Version.End}
	}

	authorities := metadata.VerifierList

	signers, err := ExtractVoters(authorities, proof.Bitmap)
	if err != nil {
		return &types.VerifyProofError{Number: number, Field: types.ProofFieldBitMap}
	}

	var total, accum uint64
	for _, a := range authorities {
		total += uint64(a.VoteWeight)
	}
	known := make(map[types.Address]uint32, len(authorities))
	for _, a := range authorities {
		known[a.Address()] = a.VoteWeight
	}
	pubKeys := make([][]byte, 0, len(signers))
	for _, s := range signers {
		weight, ok := known[s.Address()]
		if !ok {
			return &types.VerifyProofError{Number: number, Field: types.ProofFieldValidator}
		}
		accum += uint64(weight)
		pubKeys = append(pubKeys, s.BLSPubKey)
	}
	if !(3*accum > 2*total) {
		return &types.VerifyProofError{Number: number, Field: types.ProofFieldWeight}
	}

	vote := &types.Vote{
		Height:    proof.Number,
		Round:     proof.Round,
		VoteType:  types.VotePrecommit,
		BlockHash: proof.BlockHash,
	}
	voteHash := codec.HashVote(vote)

	ok, err := v.verifyAggregate(pubKeys, voteHash.Bytes(), proof.AggregatedSignature)
	if err != nil || !ok {
		return &types.VerifyProofError{Number: number, Field: types.ProofFieldSignature}
	}

	return nil
}
