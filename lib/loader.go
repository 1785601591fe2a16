// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LoadClips skips files that fail to open; survivors keep their relative
// order. Loading stops early once ctx is done.
func LoadClips(ctx context.Context, opener Opener, files []VideoFile) ([]Clip, []*ClipLoadError) {
	clips := make([]Clip, 0, len(files))
	var failures []*ClipLoadError

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		log.Info().Str("file", file.Name).Msg("Loading file")

		clip, err := opener.Open(ctx, file)
		if err != nil {
			loadErr := &ClipLoadError{File: file, Err: err}
			log.Error().Err(err).Str("file", file.Name).Msg("Error loading clip, skipping")
			failures = append(failures, loadErr)
			continue
		}

		info := clip.Info()
		log.Debug().
			Str("file", file.Name).
			Int("width", info.Width).
			Int("height", info.Height).
			Float64("fps", info.FrameRate).
			Dur("duration", info.Duration).
			Bool("audio", info.HasAudio).
			Msg("Clip loaded")
		clips = append(clips, clip)
	}

	return clips, failures
}

func CloseClips(clips []Clip) {
	for _, clip := range clips {
		if err := clip.Close(); err != nil {
			log.Warn().Err(err).Str("file", clip.File().Name).Msg("Failed to release clip")
		}
	}
}
