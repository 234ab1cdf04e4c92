package main

import (
	"encoding/hex"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/ingest"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/snapshots"
)

// loadProcessed is the shared entry point for every command that operates on
// an already imported dataset.
func loadProcessed(s *session, dataset string) ([]records.Review, error) {
	im := &ingest.Importer{Dataset: dataset, DataDir: s.dataDir}
	return im.LoadProcessed()
}

func newBuildCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <dataset>",
		Short: "Build the hash tree and store its root as the new integrity baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]
			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}

			tree, err := hashtree.Build(records.TreeRecords(reviews))
			if err != nil {
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

			fmt.Printf("%s built tree for dataset %q\n", color.GreenString("✓"), dataset)
			fmt.Printf("  leaves   %s\n", humanize.Comma(int64(tree.LeafCount())))
			fmt.Printf("  height   %d\n", tree.Height())
			fmt.Printf("  root     %s\n", hex.EncodeToString(tree.Root()))
			fmt.Printf("  version  %d\n", saved.Version)
			return nil
		},
	}
	return cmd
}
