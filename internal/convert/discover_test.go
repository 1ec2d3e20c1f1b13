// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	// Nested tree with mixed-case extensions and non-audio noise.
	files := []string{
		"a/bark1.m4a",
		"a/bark1.mp3",
		"b/nested/bark2.M4A",
		"b/notes.txt",
		"top.m4a",
	}
	for _, rel := range files {
		p := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Discover(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(tmpDir, "a/bark1.m4a"),
		filepath.Join(tmpDir, "b/nested/bark2.M4A"),
		filepath.Join(tmpDir, "top.m4a"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"data/train/a/bark1.m4a", "data/train/a/bark1.mp3"},
		{"data/train/UPPER.M4A", "data/train/UPPER.mp3"},
		{"clip.m4a", "clip.mp3"},
	}
	for _, tt := range tests {
		if got := TargetPath(tt.src); got != tt.want {
			t.Errorf("TargetPath(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
