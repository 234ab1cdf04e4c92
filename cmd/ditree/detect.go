package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/logger"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/tamper"
)

func newDetectCmd(s *session) *cobra.Command {
	var (
		iterations int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "detect-tampering <dataset> <insert|modify|delete>",
		Short: "Simulate unauthorized changes and confirm each one is detected",
		Long: `Detect-tampering repeatedly clones the processed dataset, applies the
requested kind of damage to the clone and runs a full integrity check
against the stored baseline. The baseline itself is never advanced, so
every iteration must report TAMPERED.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]
			action, err := tamper.ParseAction(args[1])
			if err != nil {
				return err
			}

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
			if err != nil {
				return err
			}
			if snap.LeafCount != uint64(len(reviews)) {
				return fmt.Errorf("baseline covers %d records but the dataset has %d; run build first",
					snap.LeafCount, len(reviews))
			}
			reports, err := tamper.NewSimulator(seed, logger.Sugar).Run(reviews, snap.State(), action, iterations)
			if err != nil {
				return err
			}

			detected := 0
			for _, r := range reports {
				verdict := color.RedString("MISSED")
				if r.Detected {
					verdict = color.GreenString("DETECTED")
					detected++
				}
				target := r.TargetID
				if r.Field != "" {
					target = fmt.Sprintf("%s.%s", r.TargetID, r.Field)
				}
				fmt.Printf("  %2d  %-6s  %-24s  %-8s  %s\n",
					r.Iteration, r.Action, target, verdict, r.Elapsed.Round(time.Millisecond))
			}

			fmt.Printf("%d/%d tampering scenarios detected\n", detected, len(reports))
			if detected != len(reports) {
				return errIntegrityCompromised
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "i", 5, "number of tampering scenarios to run")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed, fix for reproducible runs")
	return cmd
}
