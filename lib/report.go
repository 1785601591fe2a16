// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func PrintOrder(w io.Writer, files []VideoFile) {
	fmt.Fprintln(w, headingStyle.Render("Videos sorted in chronological order:"))
	for i, file := range files {
		fmt.Fprintf(w, "%3d. %s: %s\n", i+1, nameStyle.Render(file.Name), dimStyle.Render(file.ModTime.Format(timestampLayout)))
	}
}

func PrintSummary(w io.Writer, summary *Summary, runErr error) {
	if summary == nil {
		return
	}

	fmt.Fprintf(w, "\n%s %d found, %d loaded, %d skipped\n",
		headingStyle.Render("Clips:"), len(summary.Ordered), summary.Loaded, len(summary.Failures))
	for _, failure := range summary.Failures {
		fmt.Fprintf(w, "  %s %s: %v\n", failStyle.Render("skipped"), failure.File.Name, failure.Err)
	}

	switch {
	case runErr == nil && summary.DryRun:
		fmt.Fprintf(w, "%s would export to %s\n", okStyle.Render("Dry run:"), summary.OutputPath)
	case runErr == nil:
		fmt.Fprintf(w, "%s %s\n", okStyle.Render("Video exported successfully:"), summary.OutputPath)
	case IsHalt(runErr):
		fmt.Fprintf(w, "%s\n", dimStyle.Render(HaltMessage(runErr)))
	default:
		fmt.Fprintf(w, "%s %v\n", failStyle.Render("Failed:"), runErr)
	}
}

func HaltMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoInput):
		return "No videos found in the folder."
	case errors.Is(err, ErrNoLoadableClips):
		return "No valid video clips to concatenate."
	default:
		return err.Error()
	}
}
