// Package tamper simulates unauthorized dataset modifications and validates
// that the integrity baseline detects them. It is a pure consumer of the
// hashtree core: every scenario clones the baseline records, damages the
// clone and runs a full integrity check against the stored root.
package tamper

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/logger"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
)

// Action is the kind of damage a simulation applies.
type Action int

const (
	// ActionInsert fabricates and appends a plausible new record.
	ActionInsert Action = iota
	// ActionModify rewrites one field of a randomly chosen record.
	ActionModify
	// ActionDelete removes a randomly chosen record.
	ActionDelete
)

var ErrUnknownAction = errors.New("unknown tampering action")

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionModify:
		return "modify"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps a CLI argument onto an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "insert":
		return ActionInsert, nil
	case "modify":
		return ActionModify, nil
	case "delete":
		return ActionDelete, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Report describes one simulation run.
type Report struct {
	Iteration int
	Action    Action
	// TargetID is the fabricated, modified or deleted record identifier.
	TargetID string
	// Field is set for modifications only.
	Field string
	// Detected is true when the integrity check returned TAMPERED.
	Detected bool
	// LeafDelta is the record count change the damage caused.
	LeafDelta int
	// Elapsed is the detection time: the full rebuild plus root comparison.
	Elapsed time.Duration
}

// Simulator drives repeated tampering scenarios with a seeded random source,
// so runs are reproducible.
type Simulator struct {
	rng *rand.Rand
	log logger.Logger
}

func NewSimulator(seed int64, log logger.Logger) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed)), log: log}
}

// Run executes iterations of the action against clones of the baseline and
// checks each against the stored root.
func (s *Simulator) Run(
	baseline []records.Review, stored hashtree.RootSnapshot, action Action, iterations int,
) ([]Report, error) {
	if len(baseline) == 0 {
		return nil, errors.New("no baseline records to tamper with")
	}
	if iterations < 1 {
		return nil, errors.New("iteration count must be at least 1")
	}

	reports := make([]Report, 0, iterations)
	for i := 0; i < iterations; i++ {
		tampered := make([]records.Review, len(baseline))
		copy(tampered, baseline)

		report := Report{Iteration: i + 1, Action: action}
		switch action {
		case ActionInsert:
			fabricated := s.fabricate(tampered)
			tampered = append(tampered, fabricated)
			report.TargetID = fabricated.ReviewID
			report.LeafDelta = 1
		case ActionModify:
			idx := s.rng.Intn(len(tampered))
			victim := tampered[idx]
			report.TargetID = victim.ReviewID
			report.Field = s.modifyField(&victim)
			tampered[idx] = victim
		case ActionDelete:
			idx := s.rng.Intn(len(tampered))
			report.TargetID = tampered[idx].ReviewID
			tampered = append(tampered[:idx], tampered[idx+1:]...)
			report.LeafDelta = -1
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnknownAction, action)
		}

		start := time.Now()
		result := hashtree.CheckIntegrity(records.TreeRecords(tampered), stored)
		report.Elapsed = time.Since(start)
		report.Detected = result == hashtree.ResultTampered

		if s.log != nil {
			s.log.Infow("tampering simulation",
				"iteration", report.Iteration,
				"action", report.Action.String(),
				"target", report.TargetID,
				"detected", report.Detected,
				"elapsed", report.Elapsed,
			)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

const alnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (s *Simulator) randomAlnum(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alnum[s.rng.Intn(len(alnum))]
	}
	return string(b)
}

// fabricate builds a new record with the next free R%06d identifier, the way
// an attacker slipping a record into the processed dataset would have to.
func (s *Simulator) fabricate(existing []records.Review) records.Review {
	next := 0
	for _, r := range existing {
		var n int
		if _, err := fmt.Sscanf(r.ReviewID, "R%06d", &n); err == nil && n+1 > next {
			next = n + 1
		}
	}
	now := time.Now()
	return records.Review{
		ReviewID:       fmt.Sprintf("R%06d", next),
		ReviewerID:     s.randomAlnum(13),
		ASIN:           s.randomAlnum(10),
		Overall:        float64(s.rng.Intn(41)+10) / 10,
		Vote:           fmt.Sprintf("%d", s.rng.Intn(101)),
		Verified:       s.rng.Intn(2) == 0,
		ReviewTime:     now.Format("01 02, 2006"),
		ReviewerName:   fmt.Sprintf("User%d", s.rng.Intn(1000)+1),
		ReviewText:     fmt.Sprintf("Random review content %d", s.rng.Intn(100)+1),
		Summary:        fmt.Sprintf("Summary text %d", s.rng.Intn(100)+1),
		UnixReviewTime: now.Unix(),
		Style:          map[string]string{},
	}
}

var modifiableFields = []string{"overall", "vote", "reviewerName", "reviewText", "summary"}

// modifyField rewrites one randomly selected field, guaranteeing the value
// actually changes, and returns the field name.
func (s *Simulator) modifyField(r *records.Review) string {
	field := modifiableFields[s.rng.Intn(len(modifiableFields))]
	switch field {
	case "overall":
		old := r.Overall
		for r.Overall == old {
			r.Overall = float64(s.rng.Intn(41)+10) / 10
		}
	case "vote":
		old := r.Vote
		for r.Vote == old {
			r.Vote = fmt.Sprintf("%d", s.rng.Intn(101))
		}
	case "reviewerName":
		r.ReviewerName = fmt.Sprintf("Modified reviewerName %d (was %q)", s.rng.Intn(100)+1, r.ReviewerName)
	case "reviewText":
		r.ReviewText = fmt.Sprintf("Modified reviewText %d (was %d bytes)", s.rng.Intn(100)+1, len(r.ReviewText))
	case "summary":
		r.Summary = fmt.Sprintf("Modified summary %d (was %q)", s.rng.Intn(100)+1, r.Summary)
	}
	return field
}
