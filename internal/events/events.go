// Package events follows the JSONL file that player hook scripts append
// to, turning raw lines into rendered activity. It only ever reads; the
// players own the file.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat selects how streamed events are rendered.
type OutputFormat string

const (
	// OutputFormatDefault renders human-readable lines with timestamps.
	OutputFormatDefault OutputFormat = "default"
	// OutputFormatJSON renders one normalized JSON object per line.
	OutputFormatJSON OutputFormat = "json"
)

// Event is one line of the events file, as emitted by the player hook
// script. Fields the script could not read are simply absent.
type Event struct {
	Event        string  `json:"event"`
	LaunchID     string  `json:"launch_id,omitempty"`
	Time         string  `json:"time,omitempty"`
	Path         string  `json:"path,omitempty"`
	Title        string  `json:"title,omitempty"`
	Reason       string  `json:"reason,omitempty"`
	PlaybackTime float64 `json:"playback_time,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
}

type formatter interface {
	Format(ev Event) error
}

func newFormatter(format OutputFormat, w io.Writer) formatter {
	if format == OutputFormatJSON {
		return &jsonFormatter{writer: w}
	}
	return &defaultFormatter{writer: w}
}

type defaultFormatter struct {
	writer io.Writer
}

func (f *defaultFormatter) Format(ev Event) error {
	ts := eventClock(ev.Time)

	what := ev.Title
	if what == "" {
		what = ev.Path
	}
	if what == "" {
		what = "(unknown)"
	}

	var line string
	switch ev.Event {
	case "play_start":
		line = fmt.Sprintf("▶️  Now playing: %s%s", what, playerSuffix(ev.LaunchID))
	case "play_end":
		line = fmt.Sprintf("⏹️  Finished: %s%s%s", what, reasonSuffix(ev), playerSuffix(ev.LaunchID))
	case "shutdown":
		line = fmt.Sprintf("👋 Player exited%s", playerSuffix(ev.LaunchID))
	default:
		line = fmt.Sprintf("🔸 %s: %s%s", ev.Event, what, playerSuffix(ev.LaunchID))
	}

	_, err := fmt.Fprintf(f.writer, "[%s] %s\n", ts, line)
	return err
}

type jsonFormatter struct {
	writer io.Writer
}

func (f *jsonFormatter) Format(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintf(f.writer, "%s\n", data)
	return err
}

// eventClock renders the event's own timestamp when it carries one,
// falling back to the wall clock for lines without.
func eventClock(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local().Format("15:04:05")
	}
	return time.Now().Format("15:04:05")
}

// playerSuffix tags a line with the short launch id so overlapping
// players can be told apart.
func playerSuffix(launchID string) string {
	if launchID == "" {
		return ""
	}
	if len(launchID) > 8 {
		launchID = launchID[:8]
	}
	return fmt.Sprintf(" (player %s)", launchID)
}

func reasonSuffix(ev Event) string {
	parts := ""
	if ev.Reason != "" {
		parts = "reason=" + ev.Reason
	}
	if ev.Duration > 0 && ev.PlaybackTime > 0 {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("%s/%s", clock(ev.PlaybackTime), clock(ev.Duration))
	}
	if parts == "" {
		return ""
	}
	return " (" + parts + ")"
}

func clock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)

	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
