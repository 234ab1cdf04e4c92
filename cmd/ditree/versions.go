package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newVersionsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions <dataset>",
		Short: "List the stored baseline versions for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]

			store, closeStore, err := s.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			versions, err := store.Versions(cmd.Context(), dataset)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Printf("no baselines stored for dataset %q\n", dataset)
				return nil
			}

			for _, v := range versions {
				snap, err := store.Load(cmd.Context(), dataset, v)
				if err != nil {
					return err
				}
				fmt.Printf("v%-4d  %s  %8s leaves  %s\n",
					snap.Version,
					time.UnixMilli(snap.CreatedAt).Format(time.RFC3339),
					humanize.Comma(int64(snap.LeafCount)),
					hex.EncodeToString(snap.Root))
			}
			return nil
		},
	}
	return cmd
}
