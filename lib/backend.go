// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"context"
	"time"
)

type ClipInfo struct {
	Width      int
	Height     int
	FrameRate  float64
	Duration   time.Duration
	VideoCodec string
	HasAudio   bool
}

// Clip holds its file handle until Close.
type Clip interface {
	File() VideoFile
	Info() ClipInfo
	Close() error
}

type Opener interface {
	Open(ctx context.Context, file VideoFile) (Clip, error)
}

type ProgressFunc func(done time.Duration)

type Exporter interface {
	Export(ctx context.Context, timeline Timeline, outputPath string, progress ProgressFunc) error
}

type Backend interface {
	Opener
	Exporter
}
