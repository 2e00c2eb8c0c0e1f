package router

import (
	"context"
	"time"

	"github.com/twoknow/music-hub/internal/slots"
)

// SlotStatus is one row of the slots listing. Title and Volume are
// courtesy data; a player that will not answer leaves them empty.
type SlotStatus struct {
	Slot      string    `json:"slot"`
	PID       int       `json:"pid"`
	Socket    string    `json:"socket"`
	Title     string    `json:"title,omitempty"`
	Volume    *float64  `json:"volume,omitempty"`
	LaunchID  string    `json:"launch_id,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Snapshot is the now-playing state of a single player.
type Snapshot struct {
	Slot          string   `json:"slot"`
	Title         string   `json:"title,omitempty"`
	Path          string   `json:"path,omitempty"`
	Position      *float64 `json:"position,omitempty"`
	Duration      *float64 `json:"duration,omitempty"`
	PlaylistPos   *int     `json:"playlist_pos,omitempty"`
	PlaylistCount *int     `json:"playlist_count,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
	Paused        *bool    `json:"paused,omitempty"`
}

// Slots lists every live player. Status queries are best-effort per
// slot: a player that answers nothing still appears in the listing,
// the row just stays bare.
func (r *Router) Slots(ctx context.Context) ([]SlotStatus, error) {
	reg, err := r.registry.Prune()
	if err != nil {
		return nil, err
	}

	statuses := make([]SlotStatus, 0, len(reg))
	for _, id := range slots.SortedIDs(reg) {
		rec := reg[id]
		status := SlotStatus{
			Slot:      id,
			PID:       rec.PID,
			Socket:    rec.Socket,
			LaunchID:  rec.LaunchID,
			StartedAt: rec.StartedAt,
		}

		ch := r.channel(rec.Socket)
		if title, err := ch.GetProperty(ctx, "media-title"); err == nil {
			if s, ok := title.(string); ok {
				status.Title = s
			}
		}
		if vol, err := ch.GetProperty(ctx, "volume"); err == nil {
			if f, ok := vol.(float64); ok {
				status.Volume = &f
			}
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Current reports what one player is doing. The title fetch doubles as
// the channel check and its failure is the command's failure; the
// remaining properties are filled in best-effort.
func (r *Router) Current(ctx context.Context, target string) (*Snapshot, error) {
	rec, err := r.liveRecord(target)
	if err != nil {
		return nil, err
	}

	ch := r.channel(rec.Socket)
	title, err := ch.GetProperty(ctx, "media-title")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Slot: target}
	if s, ok := title.(string); ok {
		snap.Title = s
	}
	if v, err := ch.GetProperty(ctx, "path"); err == nil {
		if s, ok := v.(string); ok {
			snap.Path = s
		}
	}
	snap.Position = floatProperty(ctx, ch, "playback-time")
	snap.Duration = floatProperty(ctx, ch, "duration")
	snap.Volume = floatProperty(ctx, ch, "volume")
	snap.PlaylistPos = intProperty(ctx, ch, "playlist-pos")
	snap.PlaylistCount = intProperty(ctx, ch, "playlist-count")
	if v, err := ch.GetProperty(ctx, "pause"); err == nil {
		if b, ok := v.(bool); ok {
			snap.Paused = &b
		}
	}
	return snap, nil
}

func floatProperty(ctx context.Context, ch Channel, name string) *float64 {
	v, err := ch.GetProperty(ctx, name)
	if err != nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func intProperty(ctx context.Context, ch Channel, name string) *int {
	f := floatProperty(ctx, ch, name)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
