package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twoknow/music-hub/internal/slots"
	"github.com/twoknow/music-hub/pkg/mpvipc"
)

// PlayMode says how a play request was satisfied.
type PlayMode string

const (
	// PlayReplaced means a live primary player took the new playlist.
	PlayReplaced PlayMode = "replaced"
	// PlaySpawned means no player answered and a fresh one was started.
	PlaySpawned PlayMode = "spawned"
)

// PlayResult reports what Play did.
type PlayResult struct {
	Mode PlayMode `json:"mode"`
	Slot string   `json:"slot"`
	PID  int      `json:"pid,omitempty"`
}

// LayerResult reports where Layer put the new player.
type LayerResult struct {
	Slot   string `json:"slot"`
	PID    int    `json:"pid"`
	Socket string `json:"socket"`
}

// Play queues targets on the primary slot. A live player gets its
// playlist replaced over the control channel; a silent socket means no
// player is running, so one is spawned with the targets on its command
// line. A player that answers badly is a real error, never a spawn
// trigger.
func (r *Router) Play(ctx context.Context, targets []string) (*PlayResult, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("play requires at least one target")
	}

	if _, err := r.registry.Prune(); err != nil {
		return nil, err
	}

	socket := slots.SocketForSlot(r.runtime, slots.Primary)
	ch := r.channel(socket)

	err := ch.LoadReplace(ctx, targets[0])
	switch {
	case err == nil:
		// Only the initial replace falls back to spawning; a failed
		// append after a successful replace means the player is live
		// and the failure must surface.
		for _, target := range targets[1:] {
			if err := ch.LoadAppend(ctx, target); err != nil {
				return nil, err
			}
		}
		return &PlayResult{
			Mode: PlayReplaced,
			Slot: slots.Primary,
			PID:  r.registry.Load()[slots.Primary].PID,
		}, nil

	case mpvipc.IsUnreachable(err):
		slog.Debug("primary player unreachable, spawning", "socket", socket)
		return r.spawnPrimary(targets)

	default:
		return nil, err
	}
}

func (r *Router) spawnPrimary(targets []string) (*PlayResult, error) {
	var result PlayResult
	_, err := r.registry.Update(func(reg map[string]slots.Record) error {
		handle, err := r.launcher.Spawn(slots.Primary, targets)
		if err != nil {
			return err
		}
		reg[slots.Primary] = recordFor(slots.Primary, handle)
		result = PlayResult{Mode: PlaySpawned, Slot: slots.Primary, PID: handle.PID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Layer starts an additional player in the lowest free slot, never
// touching existing ones. Allocation, spawn and registration run under
// a single registry update so concurrent invocations cannot end up
// sharing a slot id.
func (r *Router) Layer(target string) (*LayerResult, error) {
	if _, err := r.registry.Prune(); err != nil {
		return nil, err
	}

	var result LayerResult
	_, err := r.registry.Update(func(reg map[string]slots.Record) error {
		id, err := slots.NextSlotID(reg)
		if err != nil {
			return err
		}
		handle, err := r.launcher.Spawn(id, []string{target})
		if err != nil {
			return err
		}
		reg[id] = recordFor(id, handle)
		result = LayerResult{Slot: id, PID: handle.PID, Socket: handle.Socket}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("layered player", "slot", result.Slot, "pid", result.PID)
	return &result, nil
}
