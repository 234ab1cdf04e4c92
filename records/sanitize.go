package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Stats summarises one sanitization pass.
type Stats struct {
	TotalLoaded          int
	ValidRecords         int
	DuplicatesRemoved    int
	MissingFieldsHandled int
}

// Sanitize normalises a batch of raw imported records into validated Reviews:
// missing fields get defaults, text fields are trimmed, scalar types are
// coerced, duplicates are collapsed and dense sequential identifiers are
// assigned in input order.
//
// Deduplication keys on (reviewerID, asin, unixReviewTime); the first
// occurrence wins. Identifier assignment happens after deduplication so the
// R%06d sequence is dense.
func Sanitize(raw []map[string]any) ([]Review, Stats) {
	stats := Stats{TotalLoaded: len(raw)}

	type dedupKey struct {
		reviewerID string
		asin       string
		unixTime   int64
	}
	seen := make(map[dedupKey]struct{}, len(raw))

	reviews := make([]Review, 0, len(raw))
	for _, m := range raw {
		r, missing := coerce(m)
		stats.MissingFieldsHandled += missing

		key := dedupKey{r.ReviewerID, r.ASIN, r.UnixReviewTime}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		reviews = append(reviews, r)
	}

	for i := range reviews {
		reviews[i].ReviewID = fmt.Sprintf("R%06d", i)
	}

	stats.ValidRecords = len(reviews)
	stats.DuplicatesRemoved = stats.TotalLoaded - stats.ValidRecords
	return reviews, stats
}

// coerce maps one loosely typed raw record onto the Review schema, returning
// the number of schema fields that were absent and defaulted.
func coerce(m map[string]any) (Review, int) {
	missing := 0
	has := func(key string) bool {
		_, ok := m[key]
		if !ok {
			missing++
		}
		return ok
	}

	var r Review
	if has("overall") {
		r.Overall = toFloat(m["overall"])
	}
	if has("vote") {
		r.Vote = toText(m["vote"])
	}
	if has("verified") {
		r.Verified, _ = m["verified"].(bool)
	}
	if has("reviewTime") {
		r.ReviewTime = toText(m["reviewTime"])
	}
	if has("reviewerID") {
		r.ReviewerID = toText(m["reviewerID"])
	}
	if has("asin") {
		r.ASIN = toText(m["asin"])
	}
	if has("reviewerName") {
		r.ReviewerName = toText(m["reviewerName"])
	}
	if has("reviewText") {
		r.ReviewText = toText(m["reviewText"])
	}
	if has("summary") {
		r.Summary = toText(m["summary"])
	}
	if has("unixReviewTime") {
		r.UnixReviewTime = toInt(m["unixReviewTime"])
	}
	r.Style = map[string]string{}
	if has("style") {
		if style, ok := m["style"].(map[string]any); ok {
			for k, v := range style {
				r.Style[strings.TrimSpace(k)] = toText(v)
			}
		}
	}
	return r, missing
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
