package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
)

var errIntegrityCompromised = errors.New("data integrity compromised")

func newCheckCmd(s *session) *cobra.Command {
	var version uint32

	cmd := &cobra.Command{
		Use:   "check <dataset>",
		Short: "Verify the current dataset against a stored root",
		Long: `Check rebuilds the hash tree from the processed dataset and compares its
root against the stored baseline. Any insertion, modification or deletion
since the baseline was captured changes the root and is reported as
tampering. Exits non-zero when integrity is compromised.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]
			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}

			store, closeStore, err := s.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			snap, err := store.Latest(cmd.Context(), dataset)
			if version != 0 {
				snap, err = store.Load(cmd.Context(), dataset, version)
			}
			if err != nil {
				return err
			}

			start := time.Now()
			result := hashtree.CheckIntegrity(records.TreeRecords(reviews), snap.State())
			elapsed := time.Since(start)

			fmt.Printf("dataset  %q\n", dataset)
			fmt.Printf("records  %s (baseline %s)\n",
				humanize.Comma(int64(len(reviews))), humanize.Comma(int64(snap.LeafCount)))
			fmt.Printf("version  %d, captured %s\n",
				snap.Version, time.UnixMilli(snap.CreatedAt).Format(time.RFC3339))
			fmt.Printf("root     %s\n", hex.EncodeToString(snap.Root))
			fmt.Printf("checked in %s\n", elapsed.Round(time.Millisecond))

			if result != hashtree.ResultIntact {
				fmt.Printf("%s %s\n", color.RedString("✗"), color.RedString("DATA INTEGRITY COMPROMISED"))
				return errIntegrityCompromised
			}
			fmt.Printf("%s %s\n", color.GreenString("✓"), color.GreenString("DATA INTEGRITY CONFIRMED"))
			return nil
		},
	}

	cmd.Flags().Uint32Var(&version, "version", 0, "baseline version to check against (default: latest)")
	return cmd
}
