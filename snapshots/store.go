package snapshots

import "context"

// Store is the injected persistence capability for root snapshots. Implementations
// key everything by dataset name and assign dense version numbers starting at 1.
type Store interface {
	// Save persists the snapshot under the next version for its dataset and
	// returns the stored value with Version populated.
	Save(ctx context.Context, snap Snapshot) (Snapshot, error)
	// Latest returns the highest versioned snapshot for the dataset, or
	// ErrSnapshotNotFound.
	Latest(ctx context.Context, dataset string) (Snapshot, error)
	// Load returns a specific version, ErrVersionNotFound if absent.
	Load(ctx context.Context, dataset string, version uint32) (Snapshot, error)
	// Versions lists the stored versions for the dataset in ascending order.
	Versions(ctx context.Context, dataset string) ([]uint32, error)
}
