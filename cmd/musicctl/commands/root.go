package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/player"
	"github.com/twoknow/music-hub/internal/printer"
	"github.com/twoknow/music-hub/internal/probe"
	"github.com/twoknow/music-hub/internal/router"
	"github.com/twoknow/music-hub/internal/slots"
	"github.com/twoknow/music-hub/pkg/mpvipc"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "musicctl",
	Short: "musicctl - detached music players under one remote control",
	Long: `musicctl drives long-running mpv players that outlive the command itself.

Each invocation does one thing and exits: start playback, layer an extra
player, nudge a volume, list what is alive, stop things. The players keep
running detached in the background; musicctl finds them again through a
slot registry and talks to them over their control sockets.

Slot 0 is the primary player ('play' replaces its playlist). Higher slots
hold layered players ('layer' starts one per free slot).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Diagnostics go to stderr; stdout stays clean for command
		// output and --json.
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Execute runs the root command
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// buildRouter wires the production stack shared by every playback command.
func buildRouter() (*router.Router, config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, config.Paths{}, err
	}

	cfg, err := config.Load(paths)
	if err != nil {
		return nil, config.Paths{}, fmt.Errorf(`%w

Fix %s or remove it to fall back to defaults`, err, paths.ConfigFile)
	}

	registry := slots.NewRegistry(paths, probe.System())
	launcher := player.NewLauncher(paths, cfg)
	return router.New(registry, launcher, nil, paths.Runtime), paths, nil
}

// describeError turns the typed failures commands share into actionable
// messages. Anything unrecognized passes through unchanged.
func describeError(err error) error {
	var notFound *slots.NotFoundError
	if errors.As(err, &notFound) {
		return printer.Error(
			fmt.Sprintf("slot %s is not active", notFound.SlotID),
			"No live player is registered under that slot id.",
			[]string{
				"List live slots: musicctl slots",
				"Start a player: musicctl play <target>",
			},
		)
	}

	if slots.IsCapacity(err) {
		return printer.Error(
			"no free player slots",
			"Every slot id is taken by a live player.",
			[]string{
				"See what is running: musicctl slots",
				"Stop something first: musicctl stop <slot>",
			},
		)
	}

	if player.IsSpawnFailure(err) {
		return printer.Error(
			"failed to start player",
			err.Error(),
			[]string{
				"Install mpv so it is on PATH",
				fmt.Sprintf("Or point %s at your mpv binary", config.EnvPlayerBinary),
				"Or set player.binary in the config file (musicctl init shows where)",
			},
		)
	}

	if mpvipc.IsProtocol(err) {
		return printer.Error(
			"player rejected the command",
			err.Error(),
			[]string{
				"The player is alive but refused; 'musicctl slots' shows its state",
				"Retry, or restart it: musicctl stop <slot> && musicctl play <target>",
			},
		)
	}

	if mpvipc.IsUnreachable(err) {
		return printer.Error(
			"player not reachable",
			err.Error(),
			[]string{
				"The player may have just exited; 'musicctl slots' re-checks liveness",
			},
		)
	}

	return err
}
