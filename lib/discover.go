// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultExtension = ".MOV"

type VideoFile struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Discover lists the regular files directly inside dir whose name ends with
// ext. The match is case-sensitive and subdirectories are not entered.
func Discover(dir string, ext string) ([]VideoFile, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Path: dir, Err: err}
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, &DirectoryAccessError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryAccessError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, &DirectoryAccessError{Path: dir, Err: err}
	}

	files := make([]VideoFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}

		path := filepath.Join(absDir, entry.Name())
		fileInfo, err := os.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("Cannot stat file, ignoring")
			continue
		}
		if fileInfo.IsDir() {
			continue
		}

		files = append(files, VideoFile{
			Name:    entry.Name(),
			Path:    path,
			ModTime: fileInfo.ModTime(),
		})
	}

	return files, nil
}
