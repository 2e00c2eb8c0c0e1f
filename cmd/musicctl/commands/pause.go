package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/slots"
)

var pauseCmd = &cobra.Command{
	Use:   "pause [slot]",
	Short: "Toggle pause on a player",
	Long: `Pause toggles playback on a live player. Paused players stay
registered and keep their slot; run pause again to resume.

With no argument the primary slot is toggled.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPause,
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	target := slots.Primary
	if len(args) == 1 {
		target = args[0]
	}

	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	if err := r.Pause(ctx, target); err != nil {
		return describeError(err)
	}

	printer.Success("Toggled pause on slot %s\n", target)
	return nil
}
