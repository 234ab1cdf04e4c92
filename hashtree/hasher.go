package hashtree

import (
	"crypto/sha256"
	"fmt"
)

// HashSize is the byte length of every node hash in the tree.
const HashSize = sha256.Size

// HashRecord returns the leaf hash for a record: SHA-256 over its canonical
// serialization.
func HashRecord(r Record) ([]byte, error) {
	b, err := r.CanonicalBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: record %s: %v", ErrRecordSerialize, r.ID(), err)
	}
	sum := sha256.Sum256(b)
	return sum[:], nil
}

// hashNodes combines two child hashes into their parent hash:
// SHA-256(left || right). The left/right order is significant.
func hashNodes(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}
