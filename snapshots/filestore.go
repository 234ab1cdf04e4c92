package snapshots

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FileStore keeps one CBOR file per snapshot version under a single
// directory, named <dataset>_root_v<version>.cbor. It is the direct
// descendant of the original system's versioned roots directory.
type FileStore struct {
	dir   string
	codec Codec
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string, codec Codec) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

func (s *FileStore) path(dataset string, version uint32) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_root_v%d.cbor", dataset, version))
}

func (s *FileStore) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	versions, err := s.Versions(ctx, snap.Dataset)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Version = 1
	if n := len(versions); n > 0 {
		snap.Version = versions[n-1] + 1
	}

	data, err := s.codec.MarshalCBOR(snap)
	if err != nil {
		return Snapshot{}, err
	}
	if err := os.WriteFile(s.path(snap.Dataset, snap.Version), data, 0o644); err != nil {
		return Snapshot{}, fmt.Errorf("writing snapshot: %w", err)
	}
	return snap, nil
}

func (s *FileStore) Latest(ctx context.Context, dataset string) (Snapshot, error) {
	versions, err := s.Versions(ctx, dataset)
	if err != nil {
		return Snapshot{}, err
	}
	if len(versions) == 0 {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, dataset)
	}
	return s.Load(ctx, dataset, versions[len(versions)-1])
}

func (s *FileStore) Load(ctx context.Context, dataset string, version uint32) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	data, err := os.ReadFile(s.path(dataset, version))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("%w: %s v%d", ErrVersionNotFound, dataset, version)
		}
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := s.codec.UnmarshalInto(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot %s v%d: %w", dataset, version, err)
	}
	return snap, nil
}

func (s *FileStore) Versions(ctx context.Context, dataset string) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot directory: %w", err)
	}

	prefix := dataset + "_root_v"
	var versions []uint32
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".cbor") {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".cbor"), 10, 32)
		if err != nil {
			// not one of ours
			continue
		}
		versions = append(versions, uint32(v))
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions, nil
}
