package consensus

import "github.com/empower1/corechain/internal/types"

// execBackend is the opaque handle passed to Executor.Exec: enough for an
// executor implementation to root state at lastStateRoot and know which
// proposal it is executing, without this package understanding execution
// semantics (the executor's own concern, per spec.md's non-goals).
type execBackend struct {
	LastStateRoot types.Hash
	Proposal      *types.Proposal
}

func newExecBackend(lastStateRoot types.Hash, proposal *types.Proposal) *execBackend {
	return &execBackend{LastStateRoot: lastStateRoot, Proposal: proposal}
}
