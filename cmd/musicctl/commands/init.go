package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/player"
	"github.com/twoknow/music-hub/internal/printer"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the music-hub directories, default config and player hook script",
	Long: `Init prepares everything musicctl needs on disk: the data directory,
a commented default config, and the lua hook script players load to
report track changes.

Init never overwrites files you have edited. Running it on an already
initialized setup just reports what is there.

The data directory defaults to the platform config dir and can be moved
with the ` + config.EnvHome + ` environment variable.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return err
	}

	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	printer.Success("Data directory ready: %s\n", paths.Base)

	if _, err := os.Stat(paths.ConfigFile); os.IsNotExist(err) {
		if err := os.WriteFile(paths.ConfigFile, []byte(defaultConfigYML), 0o644); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		printer.Success("Default config written: %s\n", paths.ConfigFile)
	} else if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	} else {
		printer.Info("Config already present: %s\n", paths.ConfigFile)
	}

	installed, err := player.InstallHookScript(paths)
	if err != nil {
		return err
	}
	if installed {
		printer.Success("Player hook script installed: %s\n", paths.ScriptFile)
	} else {
		printer.Info("Hook script already present: %s\n", paths.ScriptFile)
	}

	// Validate now so a broken config surfaces here, not mid-play.
	if _, err := config.Load(paths); err != nil {
		return fmt.Errorf(`config exists but does not validate: %w

Fix %s or delete it and re-run init`, err, paths.ConfigFile)
	}

	fmt.Println()
	printer.Info("Registry:  %s\n", paths.Registry)
	printer.Info("Events:    %s\n", paths.EventsFile)
	printer.Info("Config:    %s\n", paths.ConfigFile)
	return nil
}

const defaultConfigYML = `# music-hub configuration
version: "1"

player:
  # Absolute path to the player binary. Defaults to mpv found on PATH;
  # the ` + config.EnvPlayerBinary + ` environment variable overrides both.
  # binary: /usr/local/bin/mpv

  # Keep video output. Off by default: players run headless for audio.
  # video: false

  # Extra arguments appended to every launch, before the targets.
  # extra_args: ["--volume=80"]

# Where players append track-change events (JSON lines). Defaults to
# mpv_events.jsonl inside the data directory.
# events:
#   file: /somewhere/else/events.jsonl

# tools:
#   ytdlp: /usr/local/bin/yt-dlp
`
