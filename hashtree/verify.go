package hashtree

import "bytes"

// VerifyProof recomputes the root from leafHash and the proof and compares it
// with expectedRoot. O(log n) time, O(1) space.
//
// It never returns an error: any mismatch, including a malformed or truncated
// proof, yields false. Callers must treat "false" and "malformed" identically
// as verification failure; a tampered path and a corrupted one are
// indistinguishable by design.
func VerifyProof(leafHash []byte, proof Proof, expectedRoot []byte) bool {
	if len(leafHash) != HashSize || len(expectedRoot) != HashSize {
		return false
	}

	running := leafHash
	for _, step := range proof {
		if len(step.Sibling) != HashSize {
			return false
		}
		if step.Side == SideLeft {
			running = hashNodes(step.Sibling, running)
		} else {
			running = hashNodes(running, step.Sibling)
		}
	}
	return bytes.Equal(running, expectedRoot)
}
