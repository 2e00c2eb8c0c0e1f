package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/slots"
)

var (
	currentJSON bool
)

var currentCmd = &cobra.Command{
	Use:   "current [slot]",
	Short: "Show what a player is playing right now",
	Long: `Current asks a live player what it is doing: title, position,
playlist progress, volume and pause state.

With no argument the primary slot is asked. The player must answer on
its control socket; a slot that is registered but unreachable is an
error rather than a guess.

Use --json for machine-readable output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCurrent,
}

func init() {
	currentCmd.Flags().BoolVar(&currentJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(currentCmd)
}

func runCurrent(cmd *cobra.Command, args []string) error {
	target := slots.Primary
	if len(args) == 1 {
		target = args[0]
	}

	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	snap, err := r.Current(ctx, target)
	if err != nil {
		return describeError(err)
	}

	if currentJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	title := snap.Title
	if title == "" {
		title = "(unknown)"
	}

	state := ""
	if snap.Paused != nil && *snap.Paused {
		state = " [paused]"
	}
	printer.Info("Slot %s: %s%s\n", snap.Slot, title, state)

	if snap.Path != "" && snap.Path != snap.Title {
		printer.Muted("  %s\n", snap.Path)
	}

	if snap.Position != nil {
		if snap.Duration != nil && *snap.Duration > 0 {
			printer.Info("  %s / %s\n", formatClock(*snap.Position), formatClock(*snap.Duration))
		} else {
			// Live streams have a position but no end.
			printer.Info("  %s\n", formatClock(*snap.Position))
		}
	}

	if snap.PlaylistPos != nil && snap.PlaylistCount != nil && *snap.PlaylistCount > 1 {
		printer.Info("  Track %d of %d\n", *snap.PlaylistPos+1, *snap.PlaylistCount)
	}

	if snap.Volume != nil {
		printer.Info("  Volume %d\n", int(*snap.Volume))
	}

	return nil
}

// formatClock renders seconds as m:ss, or h:mm:ss past the hour.
func formatClock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)

	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
