package commands

import (
	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
)

var layerCmd = &cobra.Command{
	Use:   "layer <target>",
	Short: "Start an extra player on the lowest free slot",
	Long: `Layer starts an additional detached player for a single target,
leaving every existing player untouched. Use it to stack ambience
(rain, cafe noise, a drone) under whatever the primary slot is playing.

The new player takes the lowest free slot id. That id is printed so you
can address the player later with vol, pause, next and stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayer,
}

func init() {
	rootCmd.AddCommand(layerCmd)
}

func runLayer(cmd *cobra.Command, args []string) error {
	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	result, err := r.Layer(args[0])
	if err != nil {
		return describeError(err)
	}

	printer.Success("Player layered on slot %s (pid %d)\n", result.Slot, result.PID)
	printer.Info("Adjust it with: musicctl vol %s <0-130>\n", result.Slot)
	return nil
}
