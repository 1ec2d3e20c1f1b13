// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the M4A-to-MP3 conversion run: discovery,
// per-file encoding with skip detection, and outcome classification.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/audioprep/internal/encoder"
	"github.com/pdiddy/audioprep/pkg/types"
)

// skipDetail is the error detail recorded when the target already exists.
const skipDetail = "target_exists"

// BatchResult holds the outcome of one conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Records lists this run's records in processing order, one per
	// discovered source file.
	Records []types.ConversionRecord
}

// Total returns the number of source files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed to convert.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile handles a single source file. An existing target skips the
// encoder and leaves the target untouched; otherwise the encoder runs and
// the outcome is classified. The source file is never modified.
func ConvertFile(ctx context.Context, enc encoder.Encoder, src string, w io.Writer) types.ConversionRecord {
	rec := types.ConversionRecord{
		SourcePath: src,
		TargetPath: TargetPath(src),
		Timestamp:  time.Now().UTC(),
	}
	base := filepath.Base(src)

	if _, err := os.Stat(rec.TargetPath); err == nil {
		rec.Status = types.StatusSkipped
		rec.ErrorDetail = skipDetail
		fmt.Fprintf(w, "skipped:   %s (already exists)\n", base)
		return rec
	}

	if err := enc.Encode(ctx, src, rec.TargetPath); err != nil {
		rec.Status = types.StatusFailed
		rec.ErrorDetail = err.Error()
		fmt.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return rec
	}

	rec.Status = types.StatusConverted
	fmt.Fprintf(w, "converted: %s\n", base)
	return rec
}

// ConvertBatch processes source files strictly in order, one encoder
// invocation at a time, printing per-file status to w. Per-file failures
// are recorded and processing continues; only context cancellation stops
// the run early.
func ConvertBatch(ctx context.Context, enc encoder.Encoder, sources []string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rec := ConvertFile(ctx, enc, src, w)
		result.Records = append(result.Records, rec)
		switch rec.Status {
		case types.StatusConverted:
			result.Converted++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nRun summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
