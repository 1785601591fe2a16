// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"no input", ErrNoInput, ExitHalted},
		{"no loadable clips", fmt.Errorf("run: %w", ErrNoLoadableClips), ExitHalted},
		{"directory", &DirectoryAccessError{Path: "/x", Err: os.ErrNotExist}, ExitFatal},
		{"export", &ExportError{Output: "/o.mp4", Err: ErrOutputExists}, ExitFatal},
		{"interrupted", context.Canceled, ExitFatal},
		{"usage", errors.New("accepts 2 arg(s), received 1"), ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	loadErr := &ClipLoadError{File: VideoFile{Name: "a.MOV"}, Err: os.ErrPermission}
	if !errors.Is(loadErr, os.ErrPermission) {
		t.Error("ClipLoadError does not unwrap")
	}
	if got := loadErr.Error(); got != "error loading a.MOV: permission denied" {
		t.Errorf("message = %q", got)
	}

	dirErr := &DirectoryAccessError{Path: "/src", Err: os.ErrNotExist}
	if !errors.Is(dirErr, os.ErrNotExist) {
		t.Error("DirectoryAccessError does not unwrap")
	}

	exportErr := &ExportError{Output: "/o.mp4", Err: ErrOutputExists}
	if !errors.Is(exportErr, ErrOutputExists) {
		t.Error("ExportError does not unwrap")
	}
}
