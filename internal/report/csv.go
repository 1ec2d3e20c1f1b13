// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/audioprep/pkg/types"
)

// csvHeader is the column order of the last-run summary.
var csvHeader = []string{"source_path", "target_path", "status", "error_detail", "timestamp"}

// WriteRunCSV writes this run's records as a flat table, replacing any
// previous run's file.
func WriteRunCSV(path string, records []types.ConversionRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating run report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing run report header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.SourcePath,
			rec.TargetPath,
			string(rec.Status),
			rec.ErrorDetail,
			rec.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing run report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing run report: %w", err)
	}
	return f.Close()
}
