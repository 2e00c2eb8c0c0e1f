package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/slots"
)

var nextCmd = &cobra.Command{
	Use:   "next [slot]",
	Short: "Skip to the next playlist entry",
	Long: `Next advances a live player to the next entry in its playlist. On
the last entry the player moves on and stops, which is what mpv does
for playlist-next with force.

With no argument the primary slot advances.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	target := slots.Primary
	if len(args) == 1 {
		target = args[0]
	}

	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	if err := r.Next(ctx, target); err != nil {
		return describeError(err)
	}

	printer.Success("Skipped to next track on slot %s\n", target)
	return nil
}
