// Package records defines the review record the hash tree commits to, its
// canonical serialization, and the sanitization applied to raw imports.
package records

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
)

// Review is an immutable, schema validated product review record. The field
// set mirrors the processed dataset layout; ReviewID is the stable identifier
// leaves are addressed by.
//
// Records are hashed over their canonical CBOR encoding, so a Review must not
// be mutated after it has been committed to a tree; updates go through the
// tree's modification path with a replacement value.
type Review struct {
	ReviewID       string            `json:"ReviewID" cbor:"1,keyasint"`
	ReviewerID     string            `json:"reviewerID" cbor:"2,keyasint"`
	ASIN           string            `json:"asin" cbor:"3,keyasint"`
	Overall        float64           `json:"overall" cbor:"4,keyasint"`
	Vote           string            `json:"vote" cbor:"5,keyasint"`
	Verified       bool              `json:"verified" cbor:"6,keyasint"`
	ReviewTime     string            `json:"reviewTime" cbor:"7,keyasint"`
	ReviewerName   string            `json:"reviewerName" cbor:"8,keyasint"`
	ReviewText     string            `json:"reviewText" cbor:"9,keyasint"`
	Summary        string            `json:"summary" cbor:"10,keyasint"`
	UnixReviewTime int64             `json:"unixReviewTime" cbor:"11,keyasint"`
	Style          map[string]string `json:"style" cbor:"12,keyasint"`
}

var _ hashtree.Record = Review{}

// canonicalEnc is the deterministic encode mode every leaf hash commits to.
// Core deterministic encoding sorts map keys and uses preferred integer and
// float forms, so two semantically equal records always encode to the same
// bytes.
var canonicalEnc cbor.EncMode

func init() {
	var err error
	canonicalEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		// The options are constant; this cannot fail at runtime.
		panic(fmt.Sprintf("records: canonical encode mode: %v", err))
	}
}

// ID returns the stable record identifier.
func (r Review) ID() string { return r.ReviewID }

// CanonicalBytes returns the deterministic CBOR encoding of the record, the
// exact bytes its leaf hash commits to.
func (r Review) CanonicalBytes() ([]byte, error) {
	return canonicalEnc.Marshal(r)
}

// TreeRecords adapts a review slice to the interface the hashtree operates
// on, preserving order.
func TreeRecords(reviews []Review) []hashtree.Record {
	out := make([]hashtree.Record, len(reviews))
	for i, r := range reviews {
		out[i] = r
	}
	return out
}

// FindByID returns the review with the given identifier, or false.
func FindByID(reviews []Review, id string) (Review, bool) {
	for _, r := range reviews {
		if r.ReviewID == id {
			return r, true
		}
	}
	return Review{}, false
}
