package tamper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
)

func baselineReviews(t *testing.T, n int) ([]records.Review, hashtree.RootSnapshot) {
	t.Helper()
	reviews := make([]records.Review, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, records.Review{
			ReviewID:       fmt.Sprintf("R%06d", i),
			ReviewerID:     fmt.Sprintf("REVIEWER%05d", i),
			ASIN:           fmt.Sprintf("B%09d", i),
			Overall:        float64(i%5) + 1,
			Verified:       i%2 == 0,
			ReviewText:     fmt.Sprintf("review body %d", i),
			Summary:        fmt.Sprintf("summary %d", i),
			UnixReviewTime: int64(1600000000 + i),
			Style:          map[string]string{},
		})
	}
	tree, err := hashtree.Build(records.TreeRecords(reviews))
	require.NoError(t, err)
	return reviews, hashtree.SnapshotRoot(tree)
}

func TestEveryActionIsDetected(t *testing.T) {
	reviews, stored := baselineReviews(t, 50)

	for _, action := range []Action{ActionInsert, ActionModify, ActionDelete} {
		t.Run(action.String(), func(t *testing.T) {
			sim := NewSimulator(1, nil)
			reports, err := sim.Run(reviews, stored, action, 5)
			require.NoError(t, err)
			require.Len(t, reports, 5)

			for _, r := range reports {
				assert.True(t, r.Detected, "iteration %d (%s of %s) must be detected", r.Iteration, r.Action, r.TargetID)
				assert.NotEmpty(t, r.TargetID)
				assert.Equal(t, action, r.Action)
			}
		})
	}
}

func TestReportsCarryScenarioDetail(t *testing.T) {
	reviews, stored := baselineReviews(t, 20)

	reports, err := NewSimulator(7, nil).Run(reviews, stored, ActionInsert, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reports[0].LeafDelta)
	assert.Equal(t, "R000020", reports[0].TargetID, "insert takes the next free identifier")

	reports, err = NewSimulator(7, nil).Run(reviews, stored, ActionDelete, 1)
	require.NoError(t, err)
	assert.Equal(t, -1, reports[0].LeafDelta)

	reports, err = NewSimulator(7, nil).Run(reviews, stored, ActionModify, 1)
	require.NoError(t, err)
	assert.Zero(t, reports[0].LeafDelta)
	assert.Contains(t, modifiableFields, reports[0].Field)
}

func TestRunIsReproducible(t *testing.T) {
	reviews, stored := baselineReviews(t, 30)

	first, err := NewSimulator(42, nil).Run(reviews, stored, ActionModify, 3)
	require.NoError(t, err)
	second, err := NewSimulator(42, nil).Run(reviews, stored, ActionModify, 3)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].TargetID, second[i].TargetID)
		assert.Equal(t, first[i].Field, second[i].Field)
	}
}

func TestRunInputValidation(t *testing.T) {
	reviews, stored := baselineReviews(t, 5)
	sim := NewSimulator(1, nil)

	_, err := sim.Run(nil, stored, ActionModify, 1)
	assert.Error(t, err)

	_, err = sim.Run(reviews, stored, ActionModify, 0)
	assert.Error(t, err)

	_, err = sim.Run(reviews, stored, Action(99), 1)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"insert", ActionInsert, false},
		{"modify", ActionModify, false},
		{"delete", ActionDelete, false},
		{"--modify", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownAction, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
