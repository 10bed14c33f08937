package proof

import (
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// dst is the domain separation tag for aggregate signature verification,
// fixed project-wide so every verifier and signer agrees on it.
var dst = []byte("COREHAIN_BLS_AGGREGATE_V1")

// verifyBLSAggregate verifies that sig is a valid BLS aggregate signature
// over msg by every public key in pubKeys, using the min-public-key-size
// convention (public keys on G1, signatures on G2), matching spec.md §6's
// "BLS uses aggregate verification over a single message."
func verifyBLSAggregate(pubKeys [][]byte, msg []byte, sig []byte) (bool, error) {
	aggSig := new(blst.P2Affine).Uncompress(sig)
	if aggSig == nil {
		return false, fmt.Errorf("malformed aggregate signature (%d bytes)", len(sig))
	}

	pks := make([]*blst.P1Affine, len(pubKeys))
	for i, raw := range pubKeys {
		pk := new(blst.P1Affine).Uncompress(raw)
		if pk == nil {
			return false, fmt.Errorf("malformed BLS public key at voter index %d", i)
		}
		pks[i] = pk
	}

	return aggSig.FastAggregateVerify(true, pks, msg, dst), nil
}
