package proof

import "errors"

// ErrMalformedBitmap reports a bitmap shorter than required to address every
// authority, surfaced by the verifier as a VerifyProofError{Field: BitMap}.
var ErrMalformedBitmap = errors.New("proof: bitmap too short for authority count")
