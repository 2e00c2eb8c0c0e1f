package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/events"
	"github.com/twoknow/music-hub/internal/printer"
)

var (
	watchOutputFormat string
	watchFromStart    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream player events as they happen",
	Long: `Watch follows the events file players append to and prints each
track change as it happens: what started, what finished and why, which
player exited.

Events come from the hook script musicctl init installs; players
launched without it emit nothing. Watch keeps running until interrupted.

Output Formats:
  default - Human-readable lines with timestamps
  json    - Line-delimited JSON for programmatic processing

Examples:
  # Follow new events
  musicctl watch

  # Replay everything already in the file, then follow
  musicctl watch --from-start

  # Archive events as JSON
  musicctl watch --output=json >> plays.jsonl`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().BoolVar(&watchFromStart, "from-start", false, "Replay the whole events file before following")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Validate output format
	var format events.OutputFormat
	switch watchOutputFormat {
	case "default":
		format = events.OutputFormatDefault
	case "json":
		format = events.OutputFormatJSON
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	paths, err := config.DefaultPaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(paths)
	if err != nil {
		return err
	}
	sink := cfg.EventSink(paths)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if format == events.OutputFormatDefault {
		printer.Info("Watching %s (Ctrl-C to stop)\n", sink)
	}

	err = events.Stream(ctx, sink, format, watchFromStart, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
