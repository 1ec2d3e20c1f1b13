// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists conversion outcomes: the cumulative JSON history,
// the per-run CSV summary, and a SQLite index of past runs.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/audioprep/pkg/types"
)

// LoadHistory reads the cumulative history document. A missing file yields
// an empty history; so does a corrupt one, since the history is a cache of
// outcomes and the next run rebuilds entries for every file it sees.
func LoadHistory(path string) types.History {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.History{}
	}

	var h types.History
	if err := json.Unmarshal(data, &h); err != nil || h == nil {
		fmt.Fprintf(os.Stderr, "warning: discarding unreadable history %s: %v\n", path, err)
		return types.History{}
	}
	return h
}

// Merge replaces the history entry for each record's source path. Entries
// for paths not present in records are left alone.
func Merge(h types.History, records []types.ConversionRecord) {
	for _, rec := range records {
		h[rec.SourcePath] = rec
	}
}

// WriteHistory writes the full history document, creating parent
// directories as needed.
func WriteHistory(path string, h types.History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history %s: %w", path, err)
	}
	return nil
}
