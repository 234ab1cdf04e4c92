package hashtree

import "fmt"

// Strategy selects how a batch of new records is applied to an existing tree.
type Strategy int

const (
	// StrategyIncremental appends the batch and recomputes only the affected
	// hash paths. O(k log n).
	StrategyIncremental Strategy = iota
	// StrategyRebuild reconstructs every level from the combined leaf set.
	// O(n).
	StrategyRebuild
)

func (s Strategy) String() string {
	switch s {
	case StrategyIncremental:
		return "incremental"
	case StrategyRebuild:
		return "rebuild"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// RebuildThreshold is the batch fraction above which a full rebuild is
// cheaper than path-wise incremental updates. The crossover between O(n)
// rebuild cost and O(k log n) incremental cost is empirically fixed at half
// the current leaf count.
const RebuildThreshold = 0.5

// PlanBatch returns StrategyRebuild when batchSize exceeds half of
// currentSize, StrategyIncremental otherwise. The boundary batchSize ==
// currentSize/2 resolves to incremental.
func PlanBatch(currentSize, batchSize int) Strategy {
	if float64(batchSize) > RebuildThreshold*float64(currentSize) {
		return StrategyRebuild
	}
	return StrategyIncremental
}

// Update applies a batch of new records to the tree, dispatching between the
// incremental and rebuild strategies via PlanBatch. Both strategies produce
// bit-identical roots for the same combined record set; the choice affects
// cost only.
func Update(t *Tree, batch []Record) (*Tree, error) {
	if len(batch) == 0 {
		return t, nil
	}
	if PlanBatch(t.LeafCount(), len(batch)) == StrategyRebuild {
		return rebuildWithBatch(t, batch)
	}
	return ApplyIncremental(t, batch)
}

// ApplyIncremental appends the new records as leaves and recomputes only the
// hash paths affected by the append, sharing every unaffected prefix of every
// level with the input tree. The returned tree's root is bit-identical to a
// full rebuild over the same combined record set; this equivalence is a hard
// correctness contract of the carry-up policy being applied identically on
// both paths.
func ApplyIncremental(t *Tree, newRecords []Record) (*Tree, error) {
	if len(newRecords) == 0 {
		return t, nil
	}

	oldCount := t.LeafCount()
	leaves, ids, positions, err := appendLeaves(t, newRecords)
	if err != nil {
		return nil, err
	}

	return &Tree{
		levels:    extendLevels(t.levels, leaves, oldCount),
		ids:       ids,
		positions: positions,
	}, nil
}

// ApplyModification replaces the leaf committed to recordID with the hash of
// newRecord and recomputes exactly the ancestor hashes on its path to the
// root. All sibling subtrees are shared untouched with the input tree.
func ApplyModification(t *Tree, recordID string, newRecord Record) (*Tree, error) {
	pos, err := t.LeafPosition(recordID)
	if err != nil {
		return nil, err
	}

	newHash, err := HashRecord(newRecord)
	if err != nil {
		return nil, err
	}

	positions := t.clonePositions(0)
	ids := t.ids
	if newID := newRecord.ID(); newID != recordID {
		if _, ok := positions[newID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, newID)
		}
		delete(positions, recordID)
		positions[newID] = pos
		ids = make([]string, len(t.ids))
		copy(ids, t.ids)
		ids[pos] = newID
	}

	return &Tree{
		levels:    recomputePath(t.levels, pos, newHash),
		ids:       ids,
		positions: positions,
	}, nil
}

// ApplyRebuild reconstructs the tree from the complete record set. It is the
// O(n) fallback Update selects for large batches and delegates to Build.
func ApplyRebuild(allRecords []Record) (*Tree, error) {
	return Build(allRecords)
}

// rebuildWithBatch rebuilds every level over the tree's existing leaf hashes
// plus the hashed batch. The original records are not required: their leaf
// hashes are already committed and the root is a pure function of the leaf
// sequence.
func rebuildWithBatch(t *Tree, batch []Record) (*Tree, error) {
	leaves, ids, positions, err := appendLeaves(t, batch)
	if err != nil {
		return nil, err
	}
	return &Tree{
		levels:    buildLevels(leaves),
		ids:       ids,
		positions: positions,
	}, nil
}

// appendLeaves hashes the batch and returns the combined leaf sequence,
// identifier list and position index, leaving the input tree untouched.
func appendLeaves(t *Tree, batch []Record) ([][]byte, []string, map[string]int, error) {
	oldCount := t.LeafCount()

	positions := t.clonePositions(len(batch))
	ids := make([]string, oldCount, oldCount+len(batch))
	copy(ids, t.ids)
	leaves := make([][]byte, oldCount, oldCount+len(batch))
	copy(leaves, t.levels[0])

	for _, r := range batch {
		id := r.ID()
		if _, ok := positions[id]; ok {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, id)
		}
		h, err := HashRecord(r)
		if err != nil {
			return nil, nil, nil, err
		}
		positions[id] = len(leaves)
		ids = append(ids, id)
		leaves = append(leaves, h)
	}
	return leaves, ids, positions, nil
}

// extendLevels recomputes the levels above an appended leaf sequence. Entries
// left of changedFrom/2 at each successive level are shared with the old
// tree; everything from there rightwards is recomputed, including any node
// whose carry-up promotion is revoked by the append.
func extendLevels(old [][][]byte, leaves [][]byte, changedFrom int) [][][]byte {
	levels := [][][]byte{leaves}

	current := leaves
	for level := 1; len(current) > 1; level++ {
		keep := changedFrom / 2
		if level >= len(old) {
			keep = 0
		} else if keep > len(old[level]) {
			keep = len(old[level])
		}

		next := make([][]byte, 0, (len(current)+1)/2)
		if keep > 0 {
			next = append(next, old[level][:keep]...)
		}
		for i := keep * 2; i < len(current); i += 2 {
			if i+1 == len(current) {
				next = append(next, current[i])
				break
			}
			next = append(next, hashNodes(current[i], current[i+1]))
		}

		levels = append(levels, next)
		current = next
		changedFrom = changedFrom / 2
	}
	return levels
}

// recomputePath returns a copy of the levels with the leaf at pos replaced by
// newHash and the O(log n) ancestors on its path recomputed. A promoted node
// on the path carries its replacement value up unchanged, exactly as
// buildLevels would.
func recomputePath(old [][][]byte, pos int, newHash []byte) [][][]byte {
	levels := make([][][]byte, len(old))

	h := newHash
	i := pos
	for l := 0; l < len(old); l++ {
		lvl := make([][]byte, len(old[l]))
		copy(lvl, old[l])
		lvl[i] = h
		levels[l] = lvl

		if l == len(old)-1 {
			break
		}

		i = i / 2
		li := i * 2
		if li+1 == len(lvl) {
			h = lvl[li]
		} else {
			h = hashNodes(lvl[li], lvl[li+1])
		}
	}
	return levels
}
