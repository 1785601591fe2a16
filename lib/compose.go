// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultFrameRate  = 30.0
	audioSampleRate   = 48000
	audioChannelSetup = "stereo"
)

type CanvasOptions struct {
	Width     int
	Height    int
	FrameRate float64
}

type Canvas struct {
	Width     int
	Height    int
	FrameRate float64
}

type Timeline struct {
	Canvas   Canvas
	Clips    []Clip
	HasAudio bool
}

func (t Timeline) Duration() time.Duration {
	var total time.Duration
	for _, clip := range t.Clips {
		total += clip.Info().Duration
	}
	return total
}

func Compose(clips []Clip, opts CanvasOptions) Timeline {
	canvas := Canvas{Width: opts.Width, Height: opts.Height, FrameRate: opts.FrameRate}
	hasAudio := false

	for _, clip := range clips {
		info := clip.Info()
		if opts.Width == 0 && info.Width > canvas.Width {
			canvas.Width = info.Width
		}
		if opts.Height == 0 && info.Height > canvas.Height {
			canvas.Height = info.Height
		}
		if opts.FrameRate == 0 && info.FrameRate > canvas.FrameRate {
			canvas.FrameRate = info.FrameRate
		}
		hasAudio = hasAudio || info.HasAudio
	}

	if canvas.FrameRate <= 0 {
		canvas.FrameRate = DefaultFrameRate
	}
	// libx264 with yuv420p rejects odd dimensions.
	canvas.Width = roundUpEven(canvas.Width)
	canvas.Height = roundUpEven(canvas.Height)

	return Timeline{Canvas: canvas, Clips: clips, HasAudio: hasAudio}
}

func roundUpEven(n int) int {
	if n <= 0 {
		return 2
	}
	return n + n%2
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// Input i of the graph is clip i.
func (t Timeline) FilterGraph() string {
	c := t.Canvas
	var graph strings.Builder
	var concatInputs strings.Builder

	for i, clip := range t.Clips {
		fmt.Fprintf(&graph,
			"[%d:v:0]scale=%d:%d:force_original_aspect_ratio=decrease,"+
				"pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,fps=%s,format=yuv420p[v%d];",
			i, c.Width, c.Height, c.Width, c.Height, formatRate(c.FrameRate), i)
		fmt.Fprintf(&concatInputs, "[v%d]", i)

		if !t.HasAudio {
			continue
		}

		info := clip.Info()
		if info.HasAudio {
			fmt.Fprintf(&graph,
				"[%d:a:0]aresample=%d,aformat=sample_fmts=fltp:channel_layouts=%s[a%d];",
				i, audioSampleRate, audioChannelSetup, i)
		} else {
			fmt.Fprintf(&graph,
				"anullsrc=channel_layout=%s:sample_rate=%d,atrim=duration=%s,aformat=sample_fmts=fltp[a%d];",
				audioChannelSetup, audioSampleRate, formatRate(info.Duration.Seconds()), i)
		}
		fmt.Fprintf(&concatInputs, "[a%d]", i)
	}

	audioStreams := 0
	outputs := "[outv]"
	if t.HasAudio {
		audioStreams = 1
		outputs = "[outv][outa]"
	}
	fmt.Fprintf(&graph, "%sconcat=n=%d:v=1:a=%d%s", concatInputs.String(), len(t.Clips), audioStreams, outputs)

	return graph.String()
}
