package hashtree

// Record is the unit the tree commits to. Implementations must be immutable
// once hashed: CanonicalBytes must return the same bytes for the same logical
// record on every call, independent of field ordering concerns in the
// underlying encoding.
type Record interface {
	// ID returns the record's unique, stable identifier.
	ID() string
	// CanonicalBytes returns the record's canonical serialization, the exact
	// bytes the leaf hash commits to.
	CanonicalBytes() ([]byte, error)
}
