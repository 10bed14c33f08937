package types

// Metadata is the per-epoch configuration governing a contiguous half-open
// range of block numbers [Start, End). Ranges must partition the block
// number space without overlap; the adapter resolves metadata for a height
// by finding the range containing it.
type Metadata struct {
	Version         VersionRange
	VerifierList    AuthorityList
	ConsensusInterval uint64
	ProposeRatio    uint64
	PrevoteRatio    uint64
	PrecommitRatio  uint64
	BrakeRatio      uint64
	GasLimit        uint64
	MaxTxSize       uint64
}

// VersionRange is a half-open block-number interval [Start, End).
type VersionRange struct {
	Start BlockNumber
	End   BlockNumber
}

// Contains reports whether number falls within the range.
func (r VersionRange) Contains(number BlockNumber) bool {
	return number >= r.Start && number < r.End
}
