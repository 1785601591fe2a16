// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"simon-weij/memo-stitch/lib"
	"time"

	"github.com/spf13/cobra"
)

var (
	listExtension string
	listProbe     bool
)

var listCmd = &cobra.Command{
	Use:   "list <source>",
	Short: "Show the clips of a folder in the order they would be joined",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		files, err := lib.Discover(args[0], listExtension)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), lib.HaltMessage(lib.ErrNoInput))
			return lib.ErrNoInput
		}

		ordered := lib.Order(files)
		lib.PrintOrder(cmd.OutOrStdout(), ordered)
		if !listProbe {
			return nil
		}

		clips, failures := lib.LoadClips(cmd.Context(), lib.NewFFmpeg(lib.DefaultEncodeOptions()), ordered)
		defer lib.CloseClips(clips)

		fmt.Fprintln(cmd.OutOrStdout())
		for _, clip := range clips {
			info := clip.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %.2f fps %s audio=%t\n",
				clip.File().Name, info.Width, info.Height,
				info.FrameRate, info.Duration.Round(10*time.Millisecond), info.HasAudio)
		}
		for _, failure := range failures {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", failure.File.Name, failure.Err)
		}
		if len(clips) == 0 {
			return lib.ErrNoLoadableClips
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listExtension, "ext", settings.Extension, "File extension to collect (case-sensitive)")
	listCmd.Flags().BoolVar(&listProbe, "probe", true, "Probe each clip with ffprobe")
}
