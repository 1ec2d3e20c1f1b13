// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encoder

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

// fakeExecutor scripts lookup and run behavior for tests.
type fakeExecutor struct {
	pathResult string
	pathErr    error
	existing   map[string]bool

	runErr    error
	runStderr string
	ranName   string
	ranArgs   []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	return f.pathResult, f.pathErr
}

func (f *fakeExecutor) Stat(path string) error {
	if f.existing[path] {
		return nil
	}
	return os.ErrNotExist
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
	f.ranName = name
	f.ranArgs = args
	stderr.WriteString(f.runStderr)
	return f.runErr
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		ex     *fakeExecutor
		env    string
		want   string
		errMsg string
	}{
		{
			name: "env override wins when the file exists",
			ex: &fakeExecutor{
				pathResult: "/usr/bin/ffmpeg",
				existing:   map[string]bool{"/custom/ffmpeg": true},
			},
			env:  "/custom/ffmpeg",
			want: "/custom/ffmpeg",
		},
		{
			name: "broken env override falls through to PATH",
			ex:   &fakeExecutor{pathResult: "/usr/bin/ffmpeg"},
			env:  "/nope/ffmpeg",
			want: "/usr/bin/ffmpeg",
		},
		{
			name: "PATH miss falls back to homebrew candidates",
			ex: &fakeExecutor{
				pathErr:  errors.New("not found"),
				existing: map[string]bool{"/opt/homebrew/bin/ffmpeg": true},
			},
			want: "/opt/homebrew/bin/ffmpeg",
		},
		{
			name:   "nothing found",
			ex:     &fakeExecutor{pathErr: errors.New("not found")},
			errMsg: "FFMPEG_BINARY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locate(tt.ex, tt.env)
			if tt.errMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("err = %v, want mention of %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("locate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFFmpegArgs(t *testing.T) {
	f := New("/usr/bin/ffmpeg", 2)
	got := f.args("in.m4a", "out.mp3")
	want := []string{"-y", "-i", "in.m4a", "-vn", "-codec:a", "libmp3lame", "-q:a", "2", "out.mp3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestNewClampsQuality(t *testing.T) {
	for _, q := range []int{-1, 10} {
		f := New("ffmpeg", q)
		if f.quality != 2 {
			t.Errorf("New(quality=%d).quality = %d, want default 2", q, f.quality)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		ex        *fakeExecutor
		wantErr   string
		wantClean bool
	}{
		{
			name:      "success",
			ex:        &fakeExecutor{},
			wantClean: true,
		},
		{
			name:    "failure carries trimmed stderr",
			ex:      &fakeExecutor{runErr: errors.New("exit status 1"), runStderr: "  Invalid data found  \n"},
			wantErr: "ffmpeg: Invalid data found",
		},
		{
			name:    "failure with empty stderr carries process error",
			ex:      &fakeExecutor{runErr: errors.New("exit status 187")},
			wantErr: "exit status 187",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FFmpeg{bin: "/usr/bin/ffmpeg", quality: 2, exec: tt.ex}
			err := f.Encode(context.Background(), "in.m4a", "out.mp3")

			if tt.wantClean {
				if err != nil {
					t.Fatal(err)
				}
			} else if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}

			if tt.ex.ranName != "/usr/bin/ffmpeg" {
				t.Errorf("ran %q, want the configured binary", tt.ex.ranName)
			}
			if len(tt.ex.ranArgs) == 0 || tt.ex.ranArgs[len(tt.ex.ranArgs)-1] != "out.mp3" {
				t.Errorf("args %v should end with the target path", tt.ex.ranArgs)
			}
		})
	}
}
