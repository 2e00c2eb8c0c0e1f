package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/router"
)

var playCmd = &cobra.Command{
	Use:   "play <target>...",
	Short: "Play targets on the primary player, starting one if needed",
	Long: `Play queues one or more targets on the primary slot. A target is
anything the player resolves: a file, a directory, a stream URL, a
YouTube link.

If a player already answers on the primary control socket, its playlist
is replaced in place and playback starts immediately. If nothing
answers, a fresh detached player is spawned with the targets on its
command line and registered as slot 0. Extra targets beyond the first
are appended to the playlist.

The player keeps running after musicctl exits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	r, _, err := buildRouter()
	if err != nil {
		return err
	}

	result, err := r.Play(ctx, args)
	if err != nil {
		return describeError(err)
	}

	switch {
	case result.Mode == router.PlaySpawned:
		printer.Success("Player started on slot %s (pid %d)\n", result.Slot, result.PID)
	case result.PID > 0:
		printer.Success("Playlist replaced on slot %s (pid %d)\n", result.Slot, result.PID)
	default:
		// An unregistered player answered on the primary socket.
		printer.Success("Playlist replaced on slot %s\n", result.Slot)
	}
	if len(args) > 1 {
		printer.Info("Queued %d targets\n", len(args))
	}
	return nil
}
