// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExt is the audio container extension the walk selects, matched
// case-insensitively.
const sourceExt = ".m4a"

// Discover walks root and returns every .m4a file path, sorted
// lexicographically so runs process files in a deterministic order.
// A missing or unreadable root is an error; unreadable subdirectories
// are warned about and skipped so one bad directory cannot abort a run.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), sourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// TargetPath returns the sibling .mp3 path for a source file.
func TargetPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".mp3"
}
