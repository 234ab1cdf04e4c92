package hashtree

import "fmt"

// Build constructs the tree bottom up from the ordered record sequence: hash
// every record, then pairwise hash each level until one root remains. O(n)
// time and space.
//
// The order of records fixes the leaf order and with it the root; callers
// that need reproducible roots across independent builds must supply the same
// sequence.
func Build(records []Record) (*Tree, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	leaves := make([][]byte, 0, len(records))
	ids := make([]string, 0, len(records))
	positions := make(map[string]int, len(records))

	for i, r := range records {
		id := r.ID()
		if _, ok := positions[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, id)
		}
		h, err := HashRecord(r)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, h)
		ids = append(ids, id)
		positions[id] = i
	}

	return &Tree{
		levels:    buildLevels(leaves),
		ids:       ids,
		positions: positions,
	}, nil
}

// buildLevels derives every interior level from the leaf level. An unpaired
// trailing node is promoted unchanged to the next level (carry-up policy, see
// the package documentation).
func buildLevels(leaves [][]byte) [][][]byte {
	levels := [][][]byte{leaves}

	for current := leaves; len(current) > 1; {
		next := make([][]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 == len(current) {
				// odd node out, carry it up unchanged
				next = append(next, current[i])
				break
			}
			next = append(next, hashNodes(current[i], current[i+1]))
		}
		levels = append(levels, next)
		current = next
	}
	return levels
}
