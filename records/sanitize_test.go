package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawReview(reviewerID, asin string, unixTime float64) map[string]any {
	return map[string]any{
		"reviewerID":     reviewerID,
		"asin":           asin,
		"overall":        5.0,
		"vote":           "3",
		"verified":       true,
		"reviewTime":     "01 02, 2020",
		"reviewerName":   " Some Name ",
		"reviewText":     "text",
		"summary":        "sum",
		"unixReviewTime": unixTime,
		"style":          map[string]any{"Format:": " Hardcover "},
	}
}

func TestSanitizeAssignsDenseIdentifiers(t *testing.T) {
	raw := []map[string]any{
		rawReview("AAA", "B01", 1),
		rawReview("BBB", "B02", 2),
		rawReview("CCC", "B03", 3),
	}
	reviews, stats := Sanitize(raw)
	require.Len(t, reviews, 3)

	assert.Equal(t, "R000000", reviews[0].ReviewID)
	assert.Equal(t, "R000001", reviews[1].ReviewID)
	assert.Equal(t, "R000002", reviews[2].ReviewID)
	assert.Equal(t, 3, stats.ValidRecords)
	assert.Equal(t, 0, stats.DuplicatesRemoved)
}

func TestSanitizeDeduplicates(t *testing.T) {
	first := rawReview("AAA", "B01", 100)
	first["summary"] = "first occurrence"
	dup := rawReview("AAA", "B01", 100)
	dup["summary"] = "later duplicate"

	reviews, stats := Sanitize([]map[string]any{first, dup, rawReview("BBB", "B02", 7)})
	require.Len(t, reviews, 2)

	// First occurrence wins, identifiers stay dense.
	assert.Equal(t, "first occurrence", reviews[0].Summary)
	assert.Equal(t, "R000001", reviews[1].ReviewID)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.Equal(t, 3, stats.TotalLoaded)
}

func TestSanitizeDefaultsAndCoercion(t *testing.T) {
	raw := map[string]any{
		"reviewerID": "AAA",
		"asin":       "B01",
		// overall supplied as a string, unixReviewTime as a float, vote as a
		// number; style not a map at all
		"overall":        "4.5",
		"unixReviewTime": 123.0,
		"vote":           7.0,
		"style":          "not a map",
	}

	reviews, stats := Sanitize([]map[string]any{raw})
	require.Len(t, reviews, 1)
	r := reviews[0]

	assert.Equal(t, 4.5, r.Overall)
	assert.Equal(t, int64(123), r.UnixReviewTime)
	assert.Equal(t, "7", r.Vote)
	assert.Equal(t, map[string]string{}, r.Style)
	assert.False(t, r.Verified)
	assert.Equal(t, "", r.ReviewText)

	// verified, reviewTime, reviewerName, reviewText, summary were missing.
	assert.Equal(t, 5, stats.MissingFieldsHandled)
}

func TestSanitizeTrimsText(t *testing.T) {
	raw := rawReview("AAA", "B01", 1)
	raw["reviewerName"] = "  padded  "

	reviews, _ := Sanitize([]map[string]any{raw})
	require.Len(t, reviews, 1)
	assert.Equal(t, "padded", reviews[0].ReviewerName)
	assert.Equal(t, "Hardcover", reviews[0].Style["Format:"])
}
