package hashtree

import "bytes"

// Result is the verdict of an integrity check.
type Result int

const (
	ResultIntact Result = iota
	ResultTampered
)

func (r Result) String() string {
	if r == ResultIntact {
		return "INTACT"
	}
	return "TAMPERED"
}

// CheckIntegrity rebuilds a tree from the current records and compares its
// root and leaf count against the stored baseline. Any discrepancy, including
// a changed leaf count, yields ResultTampered.
//
// The check deliberately performs a full O(n) rebuild rather than attempting
// to localise the change; localisation is out of scope for the current
// design.
func CheckIntegrity(currentRecords []Record, stored RootSnapshot) Result {
	// A snapshot always commits to at least one leaf, so an empty current set
	// is a leaf count discrepancy, not an error.
	if len(currentRecords) == 0 {
		return ResultTampered
	}
	if uint64(len(currentRecords)) != stored.LeafCount {
		return ResultTampered
	}

	t, err := Build(currentRecords)
	if err != nil {
		// Unhashable or duplicated records cannot match a committed baseline.
		return ResultTampered
	}
	if !bytes.Equal(t.Root(), stored.Root) {
		return ResultTampered
	}
	return ResultIntact
}
