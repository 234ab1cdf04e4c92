package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/ingest"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/snapshots"
)

// newModifyCmd performs an authorized dataset change: the processed dataset is
// rewritten, the tree is updated through the planner, and a new baseline
// version is stored so later checks accept the change.
func newModifyCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Apply an authorized change and advance the integrity baseline",
	}
	cmd.AddCommand(newInsertCmd(s), newSetFieldCmd(s), newDeleteCmd(s))
	return cmd
}

func newInsertCmd(s *session) *cobra.Command {
	var r records.Review

	cmd := &cobra.Command{
		Use:   "insert <dataset>",
		Short: "Append a new record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]
			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}

			r.ReviewID = nextReviewID(reviews)
			if r.UnixReviewTime == 0 {
				r.UnixReviewTime = time.Now().Unix()
			}
			if r.ReviewTime == "" {
				r.ReviewTime = time.Unix(r.UnixReviewTime, 0).Format("01 2, 2006")
			}
			if r.Style == nil {
				r.Style = map[string]string{}
			}

			tree, err := hashtree.Build(records.TreeRecords(reviews))
			if err != nil {
				return err
			}
			strategy := hashtree.PlanBatch(tree.LeafCount(), 1)
			updated, err := hashtree.Update(tree, []hashtree.Record{r})
			if err != nil {
				return err
			}

			return commitChange(cmd, s, dataset, append(reviews, r), updated,
				fmt.Sprintf("inserted %q via %s update", r.ReviewID, strategy))
		},
	}

	cmd.Flags().StringVar(&r.ReviewerID, "reviewer-id", "", "reviewer identifier")
	cmd.Flags().StringVar(&r.ASIN, "asin", "", "product identifier")
	cmd.Flags().Float64Var(&r.Overall, "overall", 5.0, "star rating")
	cmd.Flags().StringVar(&r.Vote, "vote", "0", "helpfulness votes")
	cmd.Flags().BoolVar(&r.Verified, "verified", false, "verified purchase")
	cmd.Flags().StringVar(&r.ReviewerName, "reviewer-name", "", "display name")
	cmd.Flags().StringVar(&r.ReviewText, "text", "", "review body")
	cmd.Flags().StringVar(&r.Summary, "summary", "", "review summary")
	_ = cmd.MarkFlagRequired("reviewer-id")
	_ = cmd.MarkFlagRequired("asin")
	return cmd
}

func newSetFieldCmd(s *session) *cobra.Command {
	var field, value string

	cmd := &cobra.Command{
		Use:   "set <dataset> <record-id>",
		Short: "Rewrite one field of an existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, recordID := args[0], args[1]
			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}

			tree, err := hashtree.Build(records.TreeRecords(reviews))
			if err != nil {
				return err
			}
			pos, err := tree.LeafPosition(recordID)
			if err != nil {
				return err
			}

			changed := reviews[pos]
			if err := setReviewField(&changed, field, value); err != nil {
				return err
			}
			updated, err := hashtree.ApplyModification(tree, recordID, changed)
			if err != nil {
				return err
			}
			reviews[pos] = changed

			return commitChange(cmd, s, dataset, reviews, updated,
				fmt.Sprintf("rewrote %s of %q along its leaf path", field, recordID))
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "field to rewrite: overall, vote, verified, reviewerName, reviewText or summary")
	cmd.Flags().StringVar(&value, "value", "", "new field value")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <dataset> <record-id>",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, recordID := args[0], args[1]
			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}

			tree, err := hashtree.Build(records.TreeRecords(reviews))
			if err != nil {
				return err
			}
			pos, err := tree.LeafPosition(recordID)
			if err != nil {
				return err
			}

			remaining := append(reviews[:pos:pos], reviews[pos+1:]...)
			// Removal invalidates every leaf position after pos, so the tree is
			// rebuilt rather than patched.
			updated, err := hashtree.ApplyRebuild(records.TreeRecords(remaining))
			if err != nil {
				return err
			}

			return commitChange(cmd, s, dataset, remaining, updated,
				fmt.Sprintf("deleted %q and rebuilt the tree", recordID))
		},
	}
	return cmd
}

func commitChange(
	cmd *cobra.Command, s *session, dataset string,
	reviews []records.Review, tree *hashtree.Tree, what string,
) error {
	im := &ingest.Importer{Dataset: dataset, DataDir: s.dataDir}
	if err := im.SaveProcessed(reviews); err != nil {
		return err
	}

	store, closeStore, err := s.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	saved, err := store.Save(cmd.Context(), snapshots.New(dataset, tree))
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", color.GreenString("✓"), what)
	fmt.Printf("  new root  %s\n", hex.EncodeToString(tree.Root()))
	fmt.Printf("  baseline  version %d, %d leaves\n", saved.Version, tree.LeafCount())
	return nil
}

func nextReviewID(reviews []records.Review) string {
	next := 0
	for _, r := range reviews {
		var n int
		if _, err := fmt.Sscanf(r.ReviewID, "R%06d", &n); err == nil && n+1 > next {
			next = n + 1
		}
	}
	return fmt.Sprintf("R%06d", next)
}

func setReviewField(r *records.Review, field, value string) error {
	switch field {
	case "overall":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("overall must be numeric: %w", err)
		}
		r.Overall = f
	case "vote":
		r.Vote = value
	case "verified":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verified must be boolean: %w", err)
		}
		r.Verified = b
	case "reviewerName":
		r.ReviewerName = value
	case "reviewText":
		r.ReviewText = value
	case "summary":
		r.Summary = value
	default:
		return fmt.Errorf("field %q is not modifiable", field)
	}
	return nil
}
