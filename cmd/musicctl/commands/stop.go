package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/slots"
)

var stopCmd = &cobra.Command{
	Use:   "stop [slot|all]",
	Short: "Stop players and release their slots",
	Long: `Stop asks a player to quit over its control socket and removes the
slot from the registry.

With no argument the primary slot stops. Pass a slot id to stop one
layered player, or 'all' to stop everything. A player that will not
acknowledge the quit is reported but deregistered anyway; if it is
genuinely dead the registry was stale, and if it lingers the next
prune catches it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	target := slots.Primary
	if len(args) == 1 {
		target = args[0]
	}

	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	outcomes, err := r.Stop(ctx, target)
	if err != nil {
		return describeError(err)
	}

	if len(outcomes) == 0 {
		printer.Info("No live players to stop\n")
		return nil
	}

	for _, o := range outcomes {
		if o.OK {
			printer.Step("Stopped slot %s\n", o.Slot)
		} else {
			printer.Warning("Slot %s ignored the quit (%v), released its slot anyway\n", o.Slot, o.Err)
		}
	}

	printer.Success("\nReleased %d slot(s)\n", len(outcomes))
	return nil
}
