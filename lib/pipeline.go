// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

type Job struct {
	Source      string
	Destination string
	OutputName  string
	Extension   string
	Canvas      CanvasOptions
	DryRun      bool

	// Listing receives the chronological file listing when set.
	Listing     io.Writer
	NewProgress func(total time.Duration) (ProgressFunc, func())
}

func (j Job) OutputPath() string {
	name := j.OutputName
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(j.Destination, name)
}

type Summary struct {
	Ordered     []VideoFile
	LoadedFiles []VideoFile
	Loaded      int
	Failures    []*ClipLoadError
	Canvas      Canvas
	Duration    time.Duration
	OutputPath  string
	DryRun      bool
}

// Run discovers, orders, loads, concatenates and exports. Halting outcomes
// are reported as ErrNoInput or ErrNoLoadableClips; anything else is fatal.
func Run(ctx context.Context, job Job, backend Backend) (*Summary, error) {
	summary := &Summary{OutputPath: job.OutputPath(), DryRun: job.DryRun}

	log.Info().Str("path", job.Source).Msg("Accessing source folder")
	files, err := Discover(job.Source, job.Extension)
	if err != nil {
		return summary, err
	}
	log.Info().Int("count", len(files)).Msg("Number of video files found")
	if len(files) == 0 {
		return summary, ErrNoInput
	}

	summary.Ordered = Order(files)
	if job.Listing != nil {
		PrintOrder(job.Listing, summary.Ordered)
	}

	clips, failures := LoadClips(ctx, backend, summary.Ordered)
	defer CloseClips(clips)

	summary.Failures = failures
	summary.Loaded = len(clips)
	for _, clip := range clips {
		summary.LoadedFiles = append(summary.LoadedFiles, clip.File())
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if len(clips) == 0 {
		return summary, ErrNoLoadableClips
	}

	timeline := Compose(clips, job.Canvas)
	summary.Canvas = timeline.Canvas
	summary.Duration = timeline.Duration()

	log.Info().
		Int("clips", len(clips)).
		Int("width", timeline.Canvas.Width).
		Int("height", timeline.Canvas.Height).
		Float64("fps", timeline.Canvas.FrameRate).
		Dur("duration", summary.Duration).
		Msg("Concatenating video clips")

	if job.DryRun {
		return summary, nil
	}

	progress, finish := ProgressFunc(nil), func() {}
	if job.NewProgress != nil {
		progress, finish = job.NewProgress(summary.Duration)
	}

	log.Info().Str("path", summary.OutputPath).Msg("Exporting the final video")
	err = backend.Export(ctx, timeline, summary.OutputPath, progress)
	finish()
	if err != nil {
		var exportErr *ExportError
		if !errors.As(err, &exportErr) {
			err = &ExportError{Output: summary.OutputPath, Err: err}
		}
		return summary, err
	}

	log.Info().Str("path", summary.OutputPath).Msg("Video exported successfully")
	return summary, nil
}
