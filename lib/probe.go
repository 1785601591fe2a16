// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

type ffprobeStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
}

// A clip without a video stream is rejected.
func parseProbe(data []byte) (ClipInfo, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return ClipInfo{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var info ClipInfo
	videoFound := false
	var streamDuration time.Duration

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if videoFound {
				continue
			}
			videoFound = true
			info.VideoCodec = stream.CodecName
			info.Width = stream.Width
			info.Height = stream.Height
			info.FrameRate = parseFrameRate(stream.AvgFrameRate)
			if info.FrameRate == 0 {
				info.FrameRate = parseFrameRate(stream.RFrameRate)
			}
			streamDuration = parseSeconds(stream.Duration)
		case "audio":
			info.HasAudio = true
		}
	}

	if !videoFound {
		return ClipInfo{}, fmt.Errorf("no video stream")
	}
	if info.Width <= 0 || info.Height <= 0 {
		return ClipInfo{}, fmt.Errorf("invalid video dimensions %dx%d", info.Width, info.Height)
	}

	info.Duration = parseSeconds(probe.Format.Duration)
	if info.Duration == 0 {
		info.Duration = streamDuration
	}

	return info, nil
}

func parseFrameRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	num, den, isFraction := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !isFraction {
		return n
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) time.Duration {
	if s == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(math.Round(seconds*1e6)) * time.Microsecond
}
