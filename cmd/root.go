// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"simon-weij/memo-stitch/lib"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	outputName      string
	extension       string
	noClobber       bool
	dryRun          bool
	noNotifications bool
	noProgress      bool
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "memo-stitch <source> <destination>",
	Short: "Join voice memo clips into a single video",
	Long: `memo-stitch concatenates the video clips of a folder into one H.264/AAC
file, ordered by modification time. Clips of differing resolution or frame
rate are fitted onto a common canvas. Clips that cannot be read are skipped.

Exit status: 0 when the video was exported, 1 when there was nothing to
export, 2 on any failure.`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := settings.LogLevel
		if verbose {
			level = "debug"
		}
		lib.InitLogging(level, os.Stderr)
		return lib.CheckTools()
	},
	RunE: runAggregate,
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	encode := settings.EncodeOptions()
	encode.Overwrite = !noClobber
	backend := lib.NewFFmpeg(encode)
	if verbose {
		backend.Stderr = os.Stderr
	}

	job := lib.Job{
		Source:      args[0],
		Destination: args[1],
		OutputName:  outputName,
		Extension:   extension,
		Canvas:      settings.CanvasOptions(),
		DryRun:      dryRun,
		Listing:     cmd.OutOrStdout(),
	}
	if !noProgress && !verbose {
		job.NewProgress = func(total time.Duration) (lib.ProgressFunc, func()) {
			return lib.NewProgressBar(cmd.ErrOrStderr(), total)
		}
	}

	summary, err := lib.Run(ctx, job, backend)
	if err == nil || lib.IsHalt(err) {
		lib.PrintSummary(cmd.OutOrStdout(), summary, err)
	}

	if !dryRun && !noNotifications {
		notifyDone(summary, err)
	}
	return err
}

func notifyDone(summary *lib.Summary, runErr error) {
	notifier := lib.DesktopNotifier{AppName: lib.AppName}
	if err := lib.NotifyResult(notifier, summary, runErr); err != nil {
		log.Debug().Err(err).Msg("Desktop notification not sent")
	}
}

func Execute() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	lib.InitLogging(settings.LogLevel, os.Stderr)

	err := rootCmd.ExecuteContext(ctx)
	code := lib.ExitCode(err)
	if code == lib.ExitFatal {
		log.Error().Err(err).Msg("Run failed")
	}
	return code
}

func init() {
	rootCmd.Flags().StringVarP(&outputName, "output", "o", settings.OutputName, "Name of the output video file")
	rootCmd.Flags().StringVar(&extension, "ext", settings.Extension, "File extension to collect (case-sensitive)")
	rootCmd.Flags().BoolVar(&noClobber, "no-clobber", !settings.Overwrite, "Fail instead of replacing an existing output file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List and probe clips without exporting")
	rootCmd.Flags().BoolVar(&noNotifications, "no-notifications", !settings.Notifications, "Disable desktop notifications")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Hide the export progress bar")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs and ffmpeg output")
}
