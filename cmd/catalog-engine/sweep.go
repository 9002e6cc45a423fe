// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/tempres"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove sample files older than a maximum age",
	Long: `Sweep walks the sample directory and removes files older than the
configured age threshold. Intended for cron-style cleanup of payloads
persisted by probe runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()

		maxAge, _ := cmd.Flags().GetInt("max-age-hours")
		if maxAge == 0 {
			maxAge = cfg.Temp.MaxAgeHours
		}

		tracker, err := tempres.NewTracker(cfg.Temp, os.Stderr)
		if err != nil {
			return err
		}

		removed, err := tracker.SweepOlderThan(maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d file(s) older than %dh from %s\n", removed, maxAge, tracker.BaseDir())
		return nil
	},
}

func init() {
	sweepCmd.Flags().Int("max-age-hours", 0, "age threshold in hours (0 = config default)")

	rootCmd.AddCommand(sweepCmd)
}
