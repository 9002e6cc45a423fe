// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/probe"
	"github.com/pdiddy/catalog-engine/internal/tempres"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

var probeCmd = &cobra.Command{
	Use:   "probe <series-id> [series-id...]",
	Short: "Probe series for data accessibility and observation counts",
	Long: `Probe fetches the data payload for each series id, verifies it parses as
observation markup, and reports size and observation counts. Individual
failures never abort the batch; each id produces one result row.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	if maxConcurrent, _ := cmd.Flags().GetInt("max-concurrent"); maxConcurrent != 0 {
		cfg.Probe.MaxConcurrent = maxConcurrent
	}
	saveSamples, _ := cmd.Flags().GetBool("save-samples")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var tracker *tempres.Tracker
	var err error
	if saveSamples {
		tracker, err = tempres.NewTracker(cfg.Temp, os.Stderr)
		if err != nil {
			return err
		}
	}

	client := probe.NewHTTPFetchClient(cfg.Probe)
	orchestrator := probe.NewOrchestrator(probe.NewProber(client, tracker, os.Stderr), os.Stderr)

	results, err := orchestrator.RunBulk(context.Background(), types.BulkRequest{
		SeriesIDs:     args,
		MaxConcurrent: cfg.Probe.MaxConcurrent,
		SaveSamples:   saveSamples,
		SkipFetch:     dryRun,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%-20s  %-10s  %6s  %10s  %6s  %s\n",
		"Series", "Access", "HTTP", "Bytes", "Obs", "Detail")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range results {
		access := "failed"
		if r.AccessSucceeded {
			access = "ok"
		}
		detail := r.ErrorMessage
		if r.ParseFailed {
			detail = "parse failed: " + detail
		}
		if detail == "" && r.SampleFilePath != "" {
			detail = r.SampleFilePath
		}
		httpStatus := "-"
		if r.HTTPStatus != 0 {
			httpStatus = fmt.Sprintf("%d", r.HTTPStatus)
		}
		fmt.Printf("%-20s  %-10s  %6s  %10d  %6d  %s\n",
			r.SeriesID, access, httpStatus, r.SizeBytes, r.ObservationCount, detail)
	}
	return nil
}

func init() {
	probeCmd.Flags().Int("max-concurrent", 0, "concurrency cap for the batch (0 = config default)")
	probeCmd.Flags().Bool("save-samples", false, "persist fetched payloads as sample files")
	probeCmd.Flags().Bool("dry-run", false, "produce placeholder results without fetching")

	rootCmd.AddCommand(probeCmd)
}
