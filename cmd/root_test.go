// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"simon-weij/memo-stitch/lib"
	"strings"
	"testing"
	"time"
)

const fakeFFprobe = `#!/bin/sh
for arg in "$@"; do in="$arg"; done
case "$in" in
*broken*) echo "invalid data" >&2; exit 1 ;;
esac
echo '{"streams": [{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 480, "avg_frame_rate": "30/1"}], "format": {"duration": "1.5"}}'
`

const fakeFFmpeg = `#!/bin/sh
for arg in "$@"; do out="$arg"; done
echo "out_time_us=1500000"
echo "progress=end"
printf 'video' > "$out"
`

func installFakeTools(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	bin := t.TempDir()
	for name, script := range map[string]string{lib.FFprobeCommand: fakeFFprobe, lib.FFmpegCommand: fakeFFmpeg} {
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", bin)
}

func writeClip(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Now().Add(-age)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if len(args) == 0 || args[0] != listCmd.Name() {
		args = append(args, "--no-notifications", "--no-progress")
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return run(context.Background()), out.String()
}

func TestAggregate_ExportsLoadableClips(t *testing.T) {
	installFakeTools(t)
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	writeClip(t, source, "second.MOV", time.Minute)
	writeClip(t, source, "broken.MOV", 2*time.Minute)
	writeClip(t, source, "first.MOV", 3*time.Minute)
	writeClip(t, source, "ignored.mp4", 4*time.Minute)

	code, out := execute(t, source, destination, "--output", "memo.mp4")
	if code != lib.ExitOK {
		t.Fatalf("exit code = %d, output:\n%s", code, out)
	}

	data, err := os.ReadFile(filepath.Join(destination, "memo.mp4"))
	if err != nil || string(data) != "video" {
		t.Fatalf("output = %q, %v", data, err)
	}
	if !strings.Contains(out, "2 loaded, 1 skipped") {
		t.Errorf("summary missing counts:\n%s", out)
	}
	if strings.Index(out, "first.MOV") > strings.Index(out, "second.MOV") {
		t.Errorf("listing out of order:\n%s", out)
	}
}

func TestAggregate_HaltsOnEmptySource(t *testing.T) {
	installFakeTools(t)
	destination := t.TempDir()

	code, out := execute(t, t.TempDir(), destination)
	if code != lib.ExitHalted {
		t.Fatalf("exit code = %d, want %d, output:\n%s", code, lib.ExitHalted, out)
	}
	if !strings.Contains(out, "No videos found in the folder.") {
		t.Errorf("missing halt message:\n%s", out)
	}
	entries, _ := os.ReadDir(destination)
	if len(entries) != 0 {
		t.Errorf("destination not empty: %v", entries)
	}
}

func TestAggregate_HaltsWhenNothingLoads(t *testing.T) {
	installFakeTools(t)
	source := t.TempDir()
	writeClip(t, source, "broken-1.MOV", time.Minute)
	writeClip(t, source, "broken-2.MOV", time.Second)

	code, out := execute(t, source, t.TempDir())
	if code != lib.ExitHalted {
		t.Fatalf("exit code = %d, want %d, output:\n%s", code, lib.ExitHalted, out)
	}
}

func TestAggregate_FatalErrors(t *testing.T) {
	installFakeTools(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing source", []string{filepath.Join(t.TempDir(), "nope"), t.TempDir()}},
		{"missing destination argument", []string{t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, out := execute(t, tt.args...); code != lib.ExitFatal {
				t.Errorf("exit code = %d, want %d, output:\n%s", code, lib.ExitFatal, out)
			}
		})
	}
}

func TestAggregate_MissingTools(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	code, out := execute(t, t.TempDir(), t.TempDir())
	if code != lib.ExitFatal {
		t.Errorf("exit code = %d, want %d, output:\n%s", code, lib.ExitFatal, out)
	}
}

func TestList_ProbesInOrder(t *testing.T) {
	installFakeTools(t)
	source := t.TempDir()
	writeClip(t, source, "b.MOV", time.Minute)
	writeClip(t, source, "a.MOV", time.Hour)

	code, out := execute(t, "list", source)
	if code != lib.ExitOK {
		t.Fatalf("exit code = %d, output:\n%s", code, out)
	}
	if !strings.Contains(out, "a.MOV: 640x480 30.00 fps 1.5s audio=false") {
		t.Errorf("missing probe line:\n%s", out)
	}
	if strings.Index(out, "a.MOV") > strings.Index(out, "b.MOV") {
		t.Errorf("listing out of order:\n%s", out)
	}
}
