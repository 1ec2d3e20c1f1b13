// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encoder locates the ffmpeg binary and runs single-file MP3 encodes.
package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// envBinary names the environment variable that overrides ffmpeg discovery.
const envBinary = "FFMPEG_BINARY"

// candidatePaths are checked when ffmpeg is not on PATH. Homebrew on Apple
// Silicon and Intel Macs install outside the default PATH of launchd jobs.
var candidatePaths = []string{
	"/opt/homebrew/bin/ffmpeg",
	"/usr/local/bin/ffmpeg",
}

// Encoder transcodes one audio file to MP3.
type Encoder interface {
	// Encode reads src and writes an MP3 at dst, replacing any existing
	// file at dst. The returned error carries the encoder's stderr.
	Encode(ctx context.Context, src, dst string) error
}

// executor abstracts binary lookup and process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Stat(path string) error
	Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Stat(path string) error {
	_, err := os.Stat(path)
	return err
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// FFmpeg is an Encoder backed by an ffmpeg binary on the local system.
type FFmpeg struct {
	bin     string
	quality int
	exec    executor
}

// Locate finds an ffmpeg binary: $FFMPEG_BINARY if it points at an existing
// file, then PATH, then well-known Homebrew locations. It returns an error
// with installation guidance when nothing is found.
func Locate() (string, error) {
	return locate(defaultExec, os.Getenv(envBinary))
}

func locate(ex executor, envOverride string) (string, error) {
	if envOverride != "" && ex.Stat(envOverride) == nil {
		return envOverride, nil
	}

	if path, err := ex.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	for _, candidate := range candidatePaths {
		if ex.Stat(candidate) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf(
		"ffmpeg not found: install it (e.g. `brew install ffmpeg`) or set %s to the binary path",
		envBinary,
	)
}

// New returns an FFmpeg encoder using the binary at bin. quality is the LAME
// VBR level passed as -q:a; values outside 0..9 fall back to 2.
func New(bin string, quality int) *FFmpeg {
	if quality < 0 || quality > 9 {
		quality = 2
	}
	return &FFmpeg{bin: bin, quality: quality, exec: defaultExec}
}

// Binary returns the path of the ffmpeg binary in use.
func (f *FFmpeg) Binary() string { return f.bin }

// args builds the ffmpeg argument list for one encode. -vn drops any cover
// art video stream so the output is audio-only.
func (f *FFmpeg) args(src, dst string) []string {
	return []string{
		"-y",
		"-i", src,
		"-vn",
		"-codec:a", "libmp3lame",
		"-q:a", strconv.Itoa(f.quality),
		dst,
	}
}

// Encode runs ffmpeg for one source file, capturing stderr. On failure the
// error text is the trimmed stderr, or the process error when ffmpeg wrote
// nothing.
func (f *FFmpeg) Encode(ctx context.Context, src, dst string) error {
	var stderr bytes.Buffer
	err := f.exec.Run(ctx, f.bin, f.args(src, dst), &stderr)
	if err == nil {
		return nil
	}

	detail := strings.TrimSpace(stderr.String())
	if detail == "" {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return fmt.Errorf("ffmpeg: %s", detail)
}
