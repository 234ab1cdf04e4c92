package hashtree

// Side records which input of the parent combine a proof sibling supplies.
type Side int

const (
	// SideLeft means the sibling is the left input: parent = H(sibling || running).
	SideLeft Side = iota
	// SideRight means the sibling is the right input: parent = H(running || sibling).
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// ProofStep is one element of an authentication path: the sibling hash at a
// level and the side it combines on.
type ProofStep struct {
	Sibling []byte
	Side    Side
}

// Proof is the ordered sibling sequence from a leaf to the root. Its length
// is at most the tree height; a level where the walked node was promoted
// unpaired contributes no step.
type Proof []ProofStep

// GenerateProof collects the authentication path for the record from its leaf
// to the root. O(log n) time and space.
func GenerateProof(t *Tree, recordID string) (Proof, error) {
	pos, err := t.LeafPosition(recordID)
	if err != nil {
		return nil, err
	}

	proof := make(Proof, 0, t.Height())
	i := pos
	for l := 0; l < len(t.levels)-1; l++ {
		level := t.levels[l]
		if i%2 == 1 {
			proof = append(proof, ProofStep{Sibling: level[i-1], Side: SideLeft})
		} else if i+1 < len(level) {
			proof = append(proof, ProofStep{Sibling: level[i+1], Side: SideRight})
		}
		// i+1 == len(level) with even i is the carried node, no sibling there
		i = i / 2
	}
	return proof, nil
}
