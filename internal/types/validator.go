package types

// Validator (Authority) is a node eligible to sign at a height: its signing
// key for address derivation, its BLS public key for aggregate signature
// verification, and its propose/vote weights.
type Validator struct {
	PubKey       []byte
	BLSPubKey    []byte
	ProposeWeight uint32
	VoteWeight    uint32
}

// Address derives the validator's account address from its signing public key.
func (v *Validator) Address() Address {
	addr, err := AddressFromPublicKey(v.PubKey)
	if err != nil {
		return Address{}
	}
	return addr
}

// AuthorityList is the ordered set of validators eligible to sign at a given
// height, as drawn from Metadata. Order is significant: a Proof's bitmap
// selects signers by position in this list.
type AuthorityList []Validator

// TotalVoteWeight sums vote weight across every authority in the list.
func (a AuthorityList) TotalVoteWeight() uint64 {
	var total uint64
	for _, v := range a {
		total += uint64(v.VoteWeight)
	}
	return total
}
