// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"errors"
	"fmt"
)

const (
	ExitOK     = 0
	ExitHalted = 1
	ExitFatal  = 2
)

var (
	ErrNoInput         = errors.New("no videos found in the folder")
	ErrNoLoadableClips = errors.New("no valid video clips to concatenate")

	// ErrOutputExists is wrapped by ExportError when overwriting is disabled.
	ErrOutputExists = errors.New("output file already exists")
)

type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot access source folder %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

type ClipLoadError struct {
	File VideoFile
	Err  error
}

func (e *ClipLoadError) Error() string {
	return fmt.Sprintf("error loading %s: %v", e.File.Name, e.Err)
}

func (e *ClipLoadError) Unwrap() error { return e.Err }

type ExportError struct {
	Output string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("error exporting video to %s: %v", e.Output, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsHalt reports whether err is a deliberate stop rather than a fault.
func IsHalt(err error) bool {
	return errors.Is(err, ErrNoInput) || errors.Is(err, ErrNoLoadableClips)
}

// ExitCode maps a pipeline error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsHalt(err):
		return ExitHalted
	default:
		return ExitFatal
	}
}
