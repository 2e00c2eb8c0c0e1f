package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is the fallback read cadence. File notifications wake
// the stream sooner when the platform delivers them; the ticker keeps
// it honest when they are unavailable.
const pollInterval = 200 * time.Millisecond

// Stream follows the events file at path and renders every new event to
// w until ctx is cancelled. By default reading starts at the current end
// of the file; fromStart replays existing events first. A file that does
// not exist yet is waited on, not an error: players create it on their
// first event.
func Stream(ctx context.Context, path string, format OutputFormat, fromStart bool, w io.Writer) error {
	f := newFormatter(format, w)

	var offset int64
	if !fromStart {
		if fi, err := os.Stat(path); err == nil {
			offset = fi.Size()
		}
	}

	// Watch the directory rather than the file so appends to a file
	// created after the stream starts still wake us.
	var wakeups <-chan fsnotify.Event
	var watchErrs <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if addErr := watcher.Add(filepath.Dir(path)); addErr != nil {
			slog.Debug("event file notifications unavailable, polling only", "err", addErr)
		} else {
			wakeups = watcher.Events
			watchErrs = watcher.Errors
		}
	} else {
		slog.Debug("event file notifications unavailable, polling only", "err", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if err := drain(path, &offset, f); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:

		case event, ok := <-wakeups:
			if !ok {
				wakeups = nil
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			slog.Warn("event file watcher error", "err", err)
		}
	}
}

// drain reads complete lines past *offset and feeds them to the
// formatter. Partial trailing lines stay unconsumed for the next pass;
// malformed lines are skipped the way the rest of the tooling skips
// them, so one bad write never wedges the stream. A file shorter than
// the offset was truncated and is re-read from the top.
func drain(path string, offset *int64, f formatter) error {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return err
	}
	if fi.Size() < *offset {
		*offset = 0
	}
	if fi.Size() == *offset {
		return nil
	}

	if _, err := fh.Seek(*offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(fh)
	if err != nil {
		return err
	}

	consumed := 0
	for {
		nl := bytes.IndexByte(data[consumed:], '\n')
		if nl < 0 {
			break
		}
		line := bytes.TrimSpace(data[consumed : consumed+nl])
		consumed += nl + 1

		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			slog.Debug("skipping malformed event line", "err", err)
			continue
		}
		if err := f.Format(ev); err != nil {
			return err
		}
	}
	*offset += int64(consumed)
	return nil
}
