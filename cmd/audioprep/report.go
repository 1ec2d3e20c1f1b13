// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/audioprep/internal/report"
	"github.com/pdiddy/audioprep/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect conversion history (runs, export)",
	Long: `Report inspects the outcomes recorded by previous convert runs: the
SQLite run index for per-run summaries, and the cumulative JSON history for
per-file state.`,
}

// --- runs subcommand ---

var reportRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past conversion runs",
	RunE:  runReportRuns,
}

func runReportRuns(cmd *cobra.Command, args []string) error {
	inputDir := setting(cmd, "input-dir", "convert.input_dir")
	limit, _ := cmd.Flags().GetInt("limit")

	idx, err := report.OpenIndex(types.IndexConfig{Dir: filepath.Join(inputDir, "index")})
	if err != nil {
		return err
	}
	defer idx.Close()

	runs, err := idx.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-4s  %-20s  %-30s  %9s  %7s  %6s\n",
		"ID", "Started", "Input", "Converted", "Skipped", "Failed")
	for _, r := range runs {
		fmt.Printf("%-4d  %-20s  %-30s  %9d  %7d  %6d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.InputDir,
			r.Converted, r.Skipped, r.Failed)
	}
	return nil
}

// --- export subcommand ---

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cumulative history as YAML or JSON",
	RunE:  runReportExport,
}

func runReportExport(cmd *cobra.Command, args []string) error {
	inputDir := setting(cmd, "input-dir", "convert.input_dir")
	historyPath := setting(cmd, "report-json", "convert.report_json")
	if historyPath == "" {
		historyPath = filepath.Join(inputDir, "conversion_report.json")
	}

	history := report.LoadHistory(historyPath)
	if len(history) == 0 {
		return fmt.Errorf("no history found at %s", historyPath)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		return report.ExportYAML(os.Stdout, history)
	case "json":
		return report.ExportJSON(os.Stdout, history)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	reportCmd.PersistentFlags().String("input-dir", "data/train", "directory the reports live under")
	reportCmd.PersistentFlags().String("report-json", "", "path of the JSON history (default: <input-dir>/conversion_report.json)")

	reportRunsCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	reportExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	reportCmd.AddCommand(reportRunsCmd)
	reportCmd.AddCommand(reportExportCmd)

	rootCmd.AddCommand(reportCmd)
}
