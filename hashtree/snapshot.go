package hashtree

import "time"

// RootSnapshot is the externally persisted integrity baseline: the root hash
// and the leaf population it commits to, with the build timestamp. It is
// immutable once taken and only ever superseded by an explicit new snapshot.
//
// The core treats persistence of snapshots as somebody else's problem; see
// the snapshots package for the stores.
type RootSnapshot struct {
	Root       []byte
	LeafCount  uint64
	TreeHeight uint64
	// CreatedAt is the unix time in milliseconds the snapshot was taken.
	// Including it allows the same root to be re-snapshotted.
	CreatedAt int64
}

// SnapshotRoot captures the tree's current root as an integrity baseline.
func SnapshotRoot(t *Tree) RootSnapshot {
	root := make([]byte, len(t.Root()))
	copy(root, t.Root())
	return RootSnapshot{
		Root:       root,
		LeafCount:  uint64(t.LeafCount()),
		TreeHeight: uint64(t.Height()),
		CreatedAt:  time.Now().UnixMilli(),
	}
}
