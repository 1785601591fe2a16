// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

func readProgress(r io.Reader, progress ProgressFunc) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !found || key != "out_time_us" || progress == nil {
			continue
		}

		micros, err := strconv.ParseInt(value, 10, 64)
		if err != nil || micros < 0 {
			continue
		}
		progress(time.Duration(micros) * time.Microsecond)
	}
	// ffmpeg blocks on a full pipe if a line overflows the scanner.
	_, _ = io.Copy(io.Discard, r)
}

func NewProgressBar(w io.Writer, total time.Duration) (ProgressFunc, func()) {
	limit := total.Milliseconds()
	if limit <= 0 {
		limit = -1
	}

	bar := progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	)

	update := func(done time.Duration) {
		ms := done.Milliseconds()
		if limit > 0 && ms > limit {
			ms = limit
		}
		_ = bar.Set64(ms)
	}
	finish := func() {
		_ = bar.Finish()
	}
	return update, finish
}

type tailBuffer struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial string
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := t.partial + string(p)
	parts := strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
	t.partial = parts[len(parts)-1]

	for _, line := range parts[:len(parts)-1] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.lines = append(t.lines, line)
		if len(t.lines) > t.max {
			t.lines = t.lines[1:]
		}
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := t.lines
	if strings.TrimSpace(t.partial) != "" {
		lines = append(append([]string(nil), lines...), t.partial)
	}
	if len(lines) > t.max {
		lines = lines[len(lines)-t.max:]
	}
	return strings.Join(lines, "\n")
}
