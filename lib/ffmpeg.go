// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	VideoCodec = "libx264"
	AudioCodec = "aac"

	DefaultFilePermissions = 0755
	stderrTailLines        = 20
)

type EncodeOptions struct {
	Preset       string
	CRF          int
	AudioBitrate string
	Overwrite    bool
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Preset:       "medium",
		CRF:          20,
		AudioBitrate: "192k",
		Overwrite:    true,
	}
}

type FFmpeg struct {
	Options EncodeOptions
	// Stderr, when set, receives ffmpeg's own diagnostics as they happen.
	Stderr io.Writer
}

func NewFFmpeg(opts EncodeOptions) *FFmpeg {
	return &FFmpeg{Options: opts}
}

func CheckTools() error {
	for _, tool := range []string{FFmpegCommand, FFprobeCommand} {
		path, err := exec.LookPath(tool)
		if err != nil {
			return fmt.Errorf("%s not found in PATH: install FFmpeg (apt install ffmpeg / brew install ffmpeg)", tool)
		}
		log.Debug().Str("tool", tool).Str("path", path).Msg("Found tool")
	}
	return nil
}

type ffmpegClip struct {
	file VideoFile
	info ClipInfo
	fd   *os.File
}

func (c *ffmpegClip) File() VideoFile { return c.file }
func (c *ffmpegClip) Info() ClipInfo  { return c.info }

func (c *ffmpegClip) Close() error {
	if c.fd == nil {
		return nil
	}
	err := c.fd.Close()
	c.fd = nil
	return err
}

func (f *FFmpeg) Open(ctx context.Context, file VideoFile) (Clip, error) {
	fd, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, FFprobeCommand,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		file.Path,
	)
	output, err := cmd.Output()
	if err != nil {
		fd.Close()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbe(output)
	if err != nil {
		fd.Close()
		return nil, err
	}

	return &ffmpegClip{file: file, info: info, fd: fd}, nil
}

// Export encodes the timeline next to outputPath and renames it into place,
// so a failed run never leaves a partial file under the final name.
func (f *FFmpeg) Export(ctx context.Context, timeline Timeline, outputPath string, progress ProgressFunc) error {
	if len(timeline.Clips) == 0 {
		return &ExportError{Output: outputPath, Err: errors.New("nothing to export")}
	}

	_, statErr := os.Stat(outputPath)
	exists := statErr == nil
	if exists && !f.Options.Overwrite {
		return &ExportError{Output: outputPath, Err: ErrOutputExists}
	}

	if err := ensureOutputDirectory(outputPath); err != nil {
		return &ExportError{Output: outputPath, Err: err}
	}

	tempPath := tempPathFor(outputPath)
	args := BuildExportArgs(timeline, tempPath, f.Options, containerFormat(outputPath))
	log.Debug().Strs("args", args).Msg("Running ffmpeg")

	if err := f.run(ctx, args, progress); err != nil {
		removeTemp(tempPath)
		return &ExportError{Output: outputPath, Err: err}
	}

	if exists {
		log.Warn().Str("path", outputPath).Msg("Replacing existing file")
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		removeTemp(tempPath)
		return &ExportError{Output: outputPath, Err: fmt.Errorf("failed to move output into place: %w", err)}
	}

	return nil
}

func (f *FFmpeg) run(ctx context.Context, args []string, progress ProgressFunc) error {
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	tail := newTailBuffer(stderrTailLines)
	if f.Stderr != nil {
		cmd.Stderr = io.MultiWriter(tail, f.Stderr)
	} else {
		cmd.Stderr = tail
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	readProgress(stdout, progress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
		}
		if msg := tail.String(); msg != "" {
			return fmt.Errorf("ffmpeg failed: %w\n%s", err, msg)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	return nil
}

func BuildExportArgs(timeline Timeline, tempPath string, opts EncodeOptions, format string) []string {
	args := []string{"-hide_banner", "-nostdin", "-y"}

	for _, clip := range timeline.Clips {
		args = append(args, "-i", clip.File().Path)
	}

	args = append(args,
		"-filter_complex", timeline.FilterGraph(),
		"-map", "[outv]",
	)
	if timeline.HasAudio {
		args = append(args, "-map", "[outa]")
	}

	args = append(args, "-c:v", VideoCodec)
	if opts.Preset != "" {
		args = append(args, "-preset", opts.Preset)
	}
	if opts.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
	}
	args = append(args, "-pix_fmt", "yuv420p")

	if timeline.HasAudio {
		args = append(args, "-c:a", AudioCodec)
		if opts.AudioBitrate != "" {
			args = append(args, "-b:a", opts.AudioBitrate)
		}
	}

	if format == "mp4" || format == "mov" {
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args,
		"-progress", "pipe:1",
		"-nostats",
		"-f", format,
		tempPath,
	)

	return args
}

func containerFormat(outputPath string) string {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".mov":
		return "mov"
	case ".mkv":
		return "matroska"
	default:
		return "mp4"
	}
}

func ensureOutputDirectory(outputPath string) error {
	directoryPath := filepath.Dir(outputPath)
	return os.MkdirAll(directoryPath, DefaultFilePermissions)
}

func tempPathFor(outputPath string) string {
	dir, name := filepath.Split(outputPath)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".part")
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove partial output")
	}
}
