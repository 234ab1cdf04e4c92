package hashtree

import "fmt"

// Tree is an immutable snapshot of the hash tree.
//
// levels[0] holds the leaf hashes in insertion order and levels[len-1] holds
// exactly the root. The individual hash values are shared freely between Tree
// snapshots produced by the update operations; none of them is ever mutated
// after creation.
type Tree struct {
	levels [][][]byte
	// ids maps leaf position to record identifier, positions is its inverse.
	ids       []string
	positions map[string]int
}

// Root returns the root hash. It is a pure function of the ordered leaf
// sequence.
func (t *Tree) Root() []byte {
	return t.levels[len(t.levels)-1][0]
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// Height returns ceil(log2(leafCount)); 0 for a single leaf.
func (t *Tree) Height() int {
	return len(t.levels) - 1
}

// LeafPosition returns the leaf index for the record identifier.
func (t *Tree) LeafPosition(id string) (int, error) {
	i, ok := t.positions[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return i, nil
}

// LeafHash returns the leaf hash stored at position i.
func (t *Tree) LeafHash(i int) ([]byte, error) {
	if i < 0 || i >= len(t.levels[0]) {
		return nil, fmt.Errorf("%w: leaf position %d out of range", ErrRecordNotFound, i)
	}
	return t.levels[0][i], nil
}

// LeafID returns the record identifier committed at leaf position i.
func (t *Tree) LeafID(i int) (string, error) {
	if i < 0 || i >= len(t.ids) {
		return "", fmt.Errorf("%w: leaf position %d out of range", ErrRecordNotFound, i)
	}
	return t.ids[i], nil
}

// clonePositions copies the identifier index so an updated snapshot never
// aliases the map of the tree it was derived from.
func (t *Tree) clonePositions(extra int) map[string]int {
	m := make(map[string]int, len(t.positions)+extra)
	for id, i := range t.positions {
		m[id] = i
	}
	return m
}
