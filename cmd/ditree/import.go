package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/ingest"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/logger"
)

func newImportCmd(s *session) *cobra.Command {
	var (
		limit      int
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "import <dataset>",
		Short: "Import and sanitize a raw JSON lines dataset",
		Long: `Import reads data/raw/<dataset>.json, one JSON review per line, removes
duplicates, fills missing fields with defaults and writes the processed
dataset the other commands operate on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			im := &ingest.Importer{
				Dataset:  args[0],
				DataDir:  s.dataDir,
				Progress: !noProgress,
				Log:      logger.Sugar,
			}
			reviews, stats, err := im.Import(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Printf("%s imported %s records from dataset %q\n",
				color.GreenString("✓"), humanize.Comma(int64(len(reviews))), args[0])
			fmt.Printf("  loaded            %s\n", humanize.Comma(int64(stats.TotalLoaded)))
			fmt.Printf("  duplicates        %s\n", humanize.Comma(int64(stats.DuplicatesRemoved)))
			fmt.Printf("  defaulted fields  %s\n", humanize.Comma(int64(stats.MissingFieldsHandled)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 100_000, "maximum number of raw records to read")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	return cmd
}
