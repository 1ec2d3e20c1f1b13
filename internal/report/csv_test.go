// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/audioprep/pkg/types"
)

func TestWriteRunCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "last_conversion_report.csv")

	ts := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	records := []types.ConversionRecord{
		{
			SourcePath:  "data/train/a/bark1.m4a",
			TargetPath:  "data/train/a/bark1.mp3",
			Status:      types.StatusSkipped,
			ErrorDetail: "target_exists",
			Timestamp:   ts,
		},
		{
			SourcePath: "data/train/b/bark2.m4a",
			TargetPath: "data/train/b/bark2.mp3",
			Status:     types.StatusConverted,
			Timestamp:  ts,
		},
	}

	if err := WriteRunCSV(path, records); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 records", len(rows))
	}

	wantHeader := []string{"source_path", "target_path", "status", "error_detail", "timestamp"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	want := []string{"data/train/a/bark1.m4a", "data/train/a/bark1.mp3", "skipped", "target_exists", "2026-08-27T12:00:00Z"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}

func TestWriteRunCSVOverwritesPriorRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.csv")

	many := []types.ConversionRecord{
		{SourcePath: "a.m4a", TargetPath: "a.mp3", Status: types.StatusConverted, Timestamp: time.Now().UTC()},
		{SourcePath: "b.m4a", TargetPath: "b.mp3", Status: types.StatusConverted, Timestamp: time.Now().UTC()},
	}
	if err := WriteRunCSV(path, many); err != nil {
		t.Fatal(err)
	}
	if err := WriteRunCSV(path, many[:1]); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want header + 1 record after overwrite", len(rows))
	}
}
