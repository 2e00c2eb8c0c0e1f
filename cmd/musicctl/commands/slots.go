package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/router"
)

var (
	slotsJSON bool
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List live player slots",
	Long: `Slots lists every player that is actually alive right now. Dead
entries are pruned from the registry before listing, so the output
reflects reality even after players were killed behind musicctl's back.

For each slot, displays:
  • Slot id and process id
  • Current media title (asked over the control socket)
  • Volume and uptime

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runSlots,
}

func init() {
	slotsCmd.Flags().BoolVar(&slotsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	statuses, err := r.Slots(ctx)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		if !slotsJSON {
			fmt.Println("No live players.")
			fmt.Println()
			fmt.Println("Run 'musicctl play <target>' to start one.")
		} else {
			fmt.Println("[]")
		}
		return nil
	}

	if slotsJSON {
		outputJSON(statuses)
	} else {
		outputTable(statuses)
	}

	return nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	hours := d / time.Hour
	d -= hours * time.Hour

	minutes := d / time.Minute
	d -= minutes * time.Minute

	seconds := d / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	} else {
		return fmt.Sprintf("%ds", seconds)
	}
}

func outputJSON(statuses []router.SlotStatus) {
	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func outputTable(statuses []router.SlotStatus) {
	// Print header
	fmt.Printf("%-6s %-8s %-40s %-8s %s\n", "SLOT", "PID", "TITLE", "VOLUME", "UPTIME")

	// Print rows
	for _, s := range statuses {
		// A player that will not answer still holds its slot; show what we know.
		title := s.Title
		if title == "" {
			title = "(unknown)"
		}
		if len(title) > 40 {
			title = title[:37] + "..."
		}

		volume := "-"
		if s.Volume != nil {
			volume = strconv.Itoa(int(*s.Volume))
		}

		uptime := "-"
		if !s.StartedAt.IsZero() {
			uptime = formatDuration(time.Since(s.StartedAt))
		}

		fmt.Printf("%-6s %-8d %-40s %-8s %s\n", s.Slot, s.PID, title, volume, uptime)
	}
}
