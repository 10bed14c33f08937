package nodeadapter

import (
	"context"
	"sync"

	"github.com/empower1/corechain/internal/types"
)

// MetadataStore is a simple in-memory MetadataControl: a single active
// metadata entry, updated wholesale on UpdateMetadata. A production node
// would persist and version this; the spec's metadata-control semantics
// (need_change_metadata, version-range lookup) don't depend on how it's
// stored.
type MetadataStore struct {
	mu       sync.RWMutex
	current  *types.Metadata
	interval uint64
}

// NewMetadataStore constructs a store seeded with genesis metadata.
func NewMetadataStore(genesis *types.Metadata) *MetadataStore {
	return &MetadataStore{current: genesis}
}

func (m *MetadataStore) NeedChangeMetadata(ctx context.Context, number types.BlockNumber) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return false, nil
	}
	return number+1 == m.current.Version.End, nil
}

func (m *MetadataStore) GetMetadata(ctx context.Context, header *types.Header) (*types.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, &types.ConfusedMetadataError{}
	}
	if !m.current.Version.Contains(header.Number) {
		return nil, &types.ConfusedMetadataError{Start: m.current.Version.Start, End: m.current.Version.End}
	}
	return m.current, nil
}

// GetMetadataUnchecked returns the current metadata without validating that
// header.Number falls within its version range.
func (m *MetadataStore) GetMetadataUnchecked(ctx context.Context, header *types.Header) (*types.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, nil
}

func (m *MetadataStore) UpdateMetadata(ctx context.Context, header *types.Header) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	next := *m.current
	next.Version = types.VersionRange{Start: header.Number + 1, End: header.Number + 1 + m.interval}
	m.current = &next
	return nil
}
