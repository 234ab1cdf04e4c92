package hashtree

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// testRecord is the minimal Record used throughout the package tests. The
// canonical bytes are just the payload, so expected hashes can be computed
// directly with sha256 in the tests.
type testRecord struct {
	id      string
	payload string
}

func (r testRecord) ID() string { return r.id }

func (r testRecord) CanonicalBytes() ([]byte, error) { return []byte(r.payload), nil }

// brokenRecord fails serialization, for exercising the error paths.
type brokenRecord struct{ id string }

func (r brokenRecord) ID() string { return r.id }

func (r brokenRecord) CanonicalBytes() ([]byte, error) {
	return nil, errors.New("no canonical form")
}

func makeRecords(n int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, testRecord{
			id:      fmt.Sprintf("R%06d", i),
			payload: fmt.Sprintf("payload %d", i),
		})
	}
	return records
}

func leafHash(r testRecord) []byte {
	sum := sha256.Sum256([]byte(r.payload))
	return sum[:]
}

func combine(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}
