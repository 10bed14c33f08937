package proof

import "github.com/empower1/corechain/internal/types"

// ExtractVoters expands bitmap against authorities: the i-th bit (MSB-first
// within each byte, bytes in order) selects authorities[i]. bitmap must have
// at least len(authorities) addressable bits, or ErrMalformedBitmap is
// returned.
func ExtractVoters(authorities types.AuthorityList, bitmap []byte) ([]types.Validator, error) {
	if len(bitmap)*8 < len(authorities) {
		return nil, ErrMalformedBitmap
	}

	voters := make([]types.Validator, 0, len(authorities))
	for i := range authorities {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		if bitmap[byteIdx]&(1<<uint(bitIdx)) != 0 {
			voters = append(voters, authorities[i])
		}
	}
	return voters, nil
}
