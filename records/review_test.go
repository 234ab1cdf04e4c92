package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
)

func sampleReview() Review {
	return Review{
		ReviewID:       "R000042",
		ReviewerID:     "A1B2C3D4E5F6G",
		ASIN:           "B00000042X",
		Overall:        4.5,
		Vote:           "12",
		Verified:       true,
		ReviewTime:     "08 24, 2026",
		ReviewerName:   "User42",
		ReviewText:     "Holds up well.",
		Summary:        "Solid",
		UnixReviewTime: 1756000000,
		Style:          map[string]string{"Format:": "Hardcover", "Color:": "Black"},
	}
}

func TestCanonicalBytesDeterministic(t *testing.T) {
	first, err := sampleReview().CanonicalBytes()
	require.NoError(t, err)

	// A semantically equal record with the style map populated in the
	// opposite insertion order must encode identically.
	other := sampleReview()
	other.Style = map[string]string{}
	other.Style["Color:"] = "Black"
	other.Style["Format:"] = "Hardcover"
	second, err := other.CanonicalBytes()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCanonicalBytesFieldSensitivity(t *testing.T) {
	base, err := sampleReview().CanonicalBytes()
	require.NoError(t, err)

	changed := sampleReview()
	changed.Overall = 4.6
	b, err := changed.CanonicalBytes()
	require.NoError(t, err)
	assert.NotEqual(t, base, b)

	changed = sampleReview()
	changed.Style["Size:"] = "Large"
	b, err = changed.CanonicalBytes()
	require.NoError(t, err)
	assert.NotEqual(t, base, b)
}

func TestReviewsBuildATree(t *testing.T) {
	reviews := []Review{sampleReview()}
	for i := 0; i < 6; i++ {
		r := sampleReview()
		r.ReviewID = r.ReviewID + string(rune('a'+i))
		r.UnixReviewTime += int64(i)
		reviews = append(reviews, r)
	}

	tree, err := hashtree.Build(TreeRecords(reviews))
	require.NoError(t, err)
	assert.Equal(t, 7, tree.LeafCount())

	proof, err := hashtree.GenerateProof(tree, "R000042")
	require.NoError(t, err)
	leaf, err := hashtree.HashRecord(reviews[0])
	require.NoError(t, err)
	assert.True(t, hashtree.VerifyProof(leaf, proof, tree.Root()))
}

func TestFindByID(t *testing.T) {
	reviews := []Review{sampleReview()}
	got, ok := FindByID(reviews, "R000042")
	assert.True(t, ok)
	assert.Equal(t, "A1B2C3D4E5F6G", got.ReviewerID)

	_, ok = FindByID(reviews, "R000001")
	assert.False(t, ok)
}
