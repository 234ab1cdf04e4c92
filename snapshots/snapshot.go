// Package snapshots persists root snapshots, the integrity baselines the
// checker compares against, and optionally seals them with a COSE Sign1
// signature.
//
// The hashtree core is I/O free; everything here consumes its RootSnapshot
// value and keys storage by dataset name.
package snapshots

import (
	"github.com/google/uuid"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
)

// Snapshot is a persisted root baseline for one dataset. Version numbers are
// assigned by the store on save, are dense per dataset, and newer versions
// supersede older ones without deleting them.
type Snapshot struct {
	Dataset    string `cbor:"1,keyasint"`
	SnapshotID string `cbor:"2,keyasint"`
	Root       []byte `cbor:"3,keyasint,omitempty"`
	LeafCount  uint64 `cbor:"4,keyasint"`
	TreeHeight uint64 `cbor:"5,keyasint"`
	// CreatedAt is unix milliseconds at the time the root was captured.
	CreatedAt int64  `cbor:"6,keyasint"`
	Version   uint32 `cbor:"7,keyasint"`
}

// New captures the tree's current root as a snapshot for the named dataset.
// The store assigns Version on save.
func New(dataset string, t *hashtree.Tree) Snapshot {
	state := hashtree.SnapshotRoot(t)
	return Snapshot{
		Dataset:    dataset,
		SnapshotID: uuid.NewString(),
		Root:       state.Root,
		LeafCount:  state.LeafCount,
		TreeHeight: state.TreeHeight,
		CreatedAt:  state.CreatedAt,
	}
}

// State returns the core integrity baseline the checker consumes.
func (s Snapshot) State() hashtree.RootSnapshot {
	return hashtree.RootSnapshot{
		Root:       s.Root,
		LeafCount:  s.LeafCount,
		TreeHeight: s.TreeHeight,
		CreatedAt:  s.CreatedAt,
	}
}
