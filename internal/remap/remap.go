// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remap rewrites Label Studio export files so their audio references
// point at locally converted MP3 names instead of hashed upload names.
package remap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultURLTemplate is the local-files serving URL Label Studio expects;
// "{filename}" is replaced per task.
const DefaultURLTemplate = "/data/local-files/?d=data/train/{filename}"

// hashedName matches Label Studio upload names of the form
// "<hash>-original.mp3" and captures the original filename.
var hashedName = regexp.MustCompile(`(?i)-([^/]+\.mp3)$`)

// Options control one remap operation.
type Options struct {
	// AudioDir is checked for each mapped filename; missing files are
	// reported in Result.Missing. Empty means the input file's directory.
	AudioDir string

	// URLTemplate builds the rewritten data.audio value. Empty means
	// DefaultURLTemplate.
	URLTemplate string
}

// Result reports what a remap run did.
type Result struct {
	// Tasks is the number of tasks in the export.
	Tasks int

	// Remapped is the number of tasks whose references were rewritten.
	Remapped int

	// Missing lists mapped filenames absent from the audio directory,
	// sorted and deduplicated.
	Missing []string
}

// task mirrors the Label Studio export entry fields the remap touches.
// Unknown fields are preserved through the raw map.
type task map[string]any

// ExtractFilename strips directories and Label Studio hash prefixes from an
// upload name, returning the clean MP3 filename. Names without a hash
// prefix pass through as their basename.
func ExtractFilename(value string) string {
	base := filepath.Base(value)
	if m := hashedName.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return base
}

// File reads a Label Studio export at inputPath, remaps its audio
// references, and writes the rewritten copy to outputPath. The input file
// is never modified.
func File(inputPath, outputPath string, opts Options) (Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("reading export %s: %w", inputPath, err)
	}

	var tasks []task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return Result{}, fmt.Errorf("parsing export %s: expected a top-level task array: %w", inputPath, err)
	}

	audioDir := opts.AudioDir
	if audioDir == "" {
		audioDir = filepath.Dir(inputPath)
	}
	template := opts.URLTemplate
	if template == "" {
		template = DefaultURLTemplate
	}

	result := Result{Tasks: len(tasks)}
	missing := make(map[string]struct{})

	for _, t := range tasks {
		name := uploadName(t)
		if name == "" {
			continue
		}

		filename := ExtractFilename(name)
		if _, err := os.Stat(filepath.Join(audioDir, filename)); err != nil {
			missing[filename] = struct{}{}
		}

		t["file_upload"] = filename
		dataField, _ := t["data"].(map[string]any)
		if dataField == nil {
			dataField = map[string]any{}
		}
		dataField["audio"] = strings.ReplaceAll(template, "{filename}", filename)
		t["data"] = dataField
		result.Remapped++
	}

	for name := range missing {
		result.Missing = append(result.Missing, name)
	}
	sort.Strings(result.Missing)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}
	out, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encoding rewritten export: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("writing rewritten export %s: %w", outputPath, err)
	}

	return result, nil
}

// uploadName picks the task's source audio reference: file_upload when
// present, else data.audio.
func uploadName(t task) string {
	if s, ok := t["file_upload"].(string); ok && s != "" {
		return s
	}
	if dataField, ok := t["data"].(map[string]any); ok {
		if s, ok := dataField["audio"].(string); ok {
			return s
		}
	}
	return ""
}

// PrintWarnings writes the missing-file warning block to w, matching the
// style of the convert run summary.
func PrintWarnings(w io.Writer, audioDir string, missing []string) {
	if len(missing) == 0 {
		return
	}
	fmt.Fprintf(w, "warning: %d mapped file(s) not found in %s\n", len(missing), audioDir)
	for _, name := range missing {
		fmt.Fprintf(w, "  - %s\n", name)
	}
}
