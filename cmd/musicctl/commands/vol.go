package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/router"
)

var volCmd = &cobra.Command{
	Use:   "vol <slot|all> <level>",
	Short: "Set the volume of one player or all of them",
	Long: `Vol sets the playback volume of a live player. Levels run 0-130;
values outside that range are clamped, and 100 is the player's native
full volume.

Address a single slot by id, or 'all' to sweep every live player. With
'all', slots that fail to answer are reported individually and the rest
are still adjusted.`,
	Args: cobra.ExactArgs(2),
	RunE: runVol,
}

func init() {
	rootCmd.AddCommand(volCmd)
}

func runVol(cmd *cobra.Command, args []string) error {
	level, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("volume must be a whole number between %d and %d, got %q",
			router.VolumeMin, router.VolumeMax, args[1])
	}

	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	outcomes, err := r.Vol(ctx, args[0], level)
	if err != nil {
		return describeError(err)
	}

	if len(outcomes) == 0 {
		printer.Info("No live players to adjust\n")
		return nil
	}

	applied := router.ClampVolume(level)
	for _, o := range outcomes {
		if o.OK {
			printer.Success("Slot %s volume set to %d\n", o.Slot, applied)
		} else {
			printer.Warning("Slot %s did not take the volume: %v\n", o.Slot, o.Err)
		}
	}
	return nil
}
