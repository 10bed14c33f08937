package consensus

import (
	"bytes"
	"encoding/gob"
)

// encodeGob and decodeGob wrap the RPC request/response envelopes
// (PullTxsRequest, BatchSignedTxs) the same way types.SignedTransaction
// does: gob is this project's convention for internal, non-byte-exact
// envelopes.
func encodeGob(v any) []byte {
	var buf bytes.Buffer
	// A gob encoding failure here means a wiring bug (an un-gob-encodable
	// field was added to a wire envelope type); there is no recoverable
	// per-call action to take.
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
