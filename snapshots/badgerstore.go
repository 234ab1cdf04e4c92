package snapshots

import (
	"context"
	"encoding/binary"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

// BadgerStore keeps the snapshot history in a Badger key value database, one
// key per (dataset, version). Keys order by dataset then big endian version,
// so the latest version for a dataset is the last key under its prefix.
type BadgerStore struct {
	db    *badger.DB
	codec Codec
}

var _ Store = (*BadgerStore)(nil)

func NewBadgerStore(path string, codec Codec) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	return &BadgerStore{db: db, codec: codec}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func datasetPrefix(dataset string) []byte {
	return []byte("snap/" + dataset + "/")
}

func versionKey(dataset string, version uint32) []byte {
	key := datasetPrefix(dataset)
	var v [4]byte
	binary.BigEndian.PutUint32(v[:], version)
	return append(key, v[:]...)
}

// latestVersion returns 0 when no snapshot exists for the dataset.
func latestVersion(txn *badger.Txn, dataset string) uint32 {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := datasetPrefix(dataset)
	// In reverse mode Seek lands on the greatest key <= the seek key.
	it.Seek(append(append([]byte{}, prefix...), 0xff))
	if !it.ValidForPrefix(prefix) {
		return 0
	}
	key := it.Item().Key()
	return binary.BigEndian.Uint32(key[len(prefix):])
}

func (s *BadgerStore) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		snap.Version = latestVersion(txn, snap.Dataset) + 1
		data, err := s.codec.MarshalCBOR(snap)
		if err != nil {
			return err
		}
		return txn.Set(versionKey(snap.Dataset, snap.Version), data)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("saving snapshot: %w", err)
	}
	return snap, nil
}

func (s *BadgerStore) Latest(ctx context.Context, dataset string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		version := latestVersion(txn, dataset)
		if version == 0 {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, dataset)
		}
		return s.getVersion(txn, dataset, version, &snap)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *BadgerStore) Load(ctx context.Context, dataset string, version uint32) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		return s.getVersion(txn, dataset, version, &snap)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *BadgerStore) getVersion(txn *badger.Txn, dataset string, version uint32, snap *Snapshot) error {
	item, err := txn.Get(versionKey(dataset, version))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s v%d", ErrVersionNotFound, dataset, version)
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return s.codec.UnmarshalInto(val, snap)
	})
}

func (s *BadgerStore) Versions(ctx context.Context, dataset string) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var versions []uint32
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := datasetPrefix(dataset)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			versions = append(versions, binary.BigEndian.Uint32(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return versions, nil
}
