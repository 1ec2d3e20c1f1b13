// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/audioprep/internal/convert"
	"github.com/pdiddy/audioprep/internal/encoder"
	"github.com/pdiddy/audioprep/internal/report"
	"github.com/pdiddy/audioprep/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert .m4a files under the input directory to .mp3",
	Long: `Convert walks the input directory, encodes every .m4a file to a sibling
.mp3 with ffmpeg, and records one outcome per file: converted, skipped (the
.mp3 already exists), or failed. Individual failures never stop the run.

Outcomes are written three ways: the cumulative JSON history keyed by source
path, a CSV snapshot of this run, and a SQLite run index used by
"audioprep report runs".`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(cmd)

	// Fatal preconditions: both checked before any file is touched.
	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input directory does not exist: %s", cfg.InputDir)
	}

	bin := cfg.FFmpegBinary
	if bin == "" {
		bin, err = encoder.Locate()
		if err != nil {
			return err
		}
	}
	enc := encoder.New(bin, cfg.Quality)

	sources, err := convert.Discover(cfg.InputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d .m4a file(s) under %s\n", len(sources), cfg.InputDir)
	fmt.Printf("Using ffmpeg: %s\n\n", bin)

	startedAt := time.Now().UTC()
	result, err := convert.ConvertBatch(context.Background(), enc, sources, os.Stdout)
	if err != nil {
		return err
	}

	history := report.LoadHistory(cfg.ReportJSON)
	report.Merge(history, result.Records)
	if err := report.WriteHistory(cfg.ReportJSON, history); err != nil {
		return err
	}
	if err := report.WriteRunCSV(cfg.ReportCSV, result.Records); err != nil {
		return err
	}

	recordRunIndex(cfg.InputDir, startedAt, result.Records)

	fmt.Printf("\nJSON report (history): %s\n", cfg.ReportJSON)
	fmt.Printf("CSV report (last run): %s\n", cfg.ReportCSV)

	// Per-file failures are already recorded in the reports; the run
	// itself completed, so exit zero.
	return nil
}

// recordRunIndex appends the run to the SQLite index. The JSON and CSV
// reports are canonical, so index problems only warn.
func recordRunIndex(inputDir string, startedAt time.Time, records []types.ConversionRecord) {
	idx, err := report.OpenIndex(types.IndexConfig{Dir: filepath.Join(inputDir, "index")})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run index unavailable: %v\n", err)
		return
	}
	defer idx.Close()

	if _, err := idx.RecordRun(context.Background(), inputDir, startedAt, records); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run in index: %v\n", err)
	}
}

// conversionConfig resolves convert settings from flags, config file, and
// environment. Report paths default to files inside the input directory.
func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	cfg := types.ConversionConfig{
		InputDir:     setting(cmd, "input-dir", "convert.input_dir"),
		ReportJSON:   setting(cmd, "report-json", "convert.report_json"),
		ReportCSV:    setting(cmd, "report-csv", "convert.report_csv"),
		Quality:      intSetting(cmd, "quality", "convert.quality"),
		FFmpegBinary: setting(cmd, "ffmpeg", "convert.ffmpeg_binary"),
	}
	if cfg.ReportJSON == "" {
		cfg.ReportJSON = filepath.Join(cfg.InputDir, "conversion_report.json")
	}
	if cfg.ReportCSV == "" {
		cfg.ReportCSV = filepath.Join(cfg.InputDir, "last_conversion_report.csv")
	}
	return cfg
}

func init() {
	convertCmd.Flags().String("input-dir", "data/train", "directory containing .m4a files")
	convertCmd.Flags().String("report-json", "", "path for the JSON history (default: <input-dir>/conversion_report.json)")
	convertCmd.Flags().String("report-csv", "", "path for the CSV report of the latest run (default: <input-dir>/last_conversion_report.csv)")
	convertCmd.Flags().Int("quality", 2, "LAME VBR quality for -q:a (0 best, 9 smallest)")
	convertCmd.Flags().String("ffmpeg", "", "ffmpeg binary path (default: $FFMPEG_BINARY, then PATH)")

	rootCmd.AddCommand(convertCmd)
}
