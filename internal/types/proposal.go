package types

// Proposal is a Block-like structure circulated during consensus before a
// block is finalized. Its hash is the commitment signed by voters; once a
// proof certifies it, it becomes a Block.
type Proposal struct {
	Number    BlockNumber
	PrevHash  Hash
	StateRoot Hash
	Timestamp uint64
	Extra     []byte
	TxHashes  []Hash
}

// HashFields mirrors Header.HashFields so a Proposal and the Block it becomes
// hash identically.
func (p *Proposal) HashFields() []byte {
	buf := make([]byte, 0, HashLength*2+8+8)
	buf = append(buf, BlockNumber(p.Number).Bytes()...)
	buf = append(buf, p.PrevHash[:]...)
	buf = append(buf, p.StateRoot[:]...)
	buf = append(buf, p.Extra...)
	return buf
}

// ProposalFromBlock converts a Block into the Proposal form used to recompute
// its consensus commitment hash.
func ProposalFromBlock(b *Block) *Proposal {
	return &Proposal{
		Number:    b.Header.Number,
		PrevHash:  b.Header.PrevHash,
		StateRoot: b.Header.StateRoot,
		Timestamp: b.Header.Timestamp,
		Extra:     b.Header.Extra,
		TxHashes:  b.TxHashes,
	}
}
