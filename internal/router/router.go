// Package router maps CLI verbs onto the slot registry, player control
// channels and the launcher. It owns the reuse-or-spawn policy; the
// pieces it drives are injected so tests can swap in fakes.
package router

import (
	"context"

	"github.com/twoknow/music-hub/internal/player"
	"github.com/twoknow/music-hub/internal/slots"
	"github.com/twoknow/music-hub/pkg/mpvipc"
)

// TargetAll addresses every live slot in batch operations.
const TargetAll = "all"

// Volume bounds accepted by players. Requests outside the range are
// clamped, never rejected.
const (
	VolumeMin = 0
	VolumeMax = 130
)

// Channel is one player's control connection. *mpvipc.Client implements it.
type Channel interface {
	LoadReplace(ctx context.Context, target string) error
	LoadAppend(ctx context.Context, target string) error
	GetProperty(ctx context.Context, name string) (any, error)
	SetProperty(ctx context.Context, name string, value any) error
	Quit(ctx context.Context) error
	CyclePause(ctx context.Context) error
	PlaylistNext(ctx context.Context) error
	ShowText(ctx context.Context, text string)
}

// Launcher starts detached players. *player.Launcher implements it.
type Launcher interface {
	Spawn(slotID string, targets []string) (player.Handle, error)
}

// ChannelFunc builds the control channel for a socket address.
type ChannelFunc func(socket string) Channel

// DefaultChannel builds the production control channel.
func DefaultChannel(socket string) Channel {
	return mpvipc.NewClient(socket, 0)
}

// Router executes playback commands against the live set of players.
type Router struct {
	registry *slots.Registry
	launcher Launcher
	channel  ChannelFunc
	runtime  string
}

// New creates a router. channel may be nil to use DefaultChannel.
func New(registry *slots.Registry, launcher Launcher, channel ChannelFunc, runtimeDir string) *Router {
	if channel == nil {
		channel = DefaultChannel
	}
	return &Router{
		registry: registry,
		launcher: launcher,
		channel:  channel,
		runtime:  runtimeDir,
	}
}

// ClampVolume bounds a requested volume to what players accept.
func ClampVolume(level int) int {
	if level < VolumeMin {
		return VolumeMin
	}
	if level > VolumeMax {
		return VolumeMax
	}
	return level
}

// resolveTargets expands a slot argument against an already pruned
// registry. TargetAll yields every live slot (possibly none); an
// explicitly named slot must be registered.
func resolveTargets(reg map[string]slots.Record, target string) ([]string, error) {
	if target == TargetAll {
		return slots.SortedIDs(reg), nil
	}
	if _, ok := reg[target]; !ok {
		return nil, &slots.NotFoundError{SlotID: target}
	}
	return []string{target}, nil
}

// liveRecord prunes the registry and returns the record for one
// explicitly named slot.
func (r *Router) liveRecord(target string) (slots.Record, error) {
	reg, err := r.registry.Prune()
	if err != nil {
		return slots.Record{}, err
	}
	rec, ok := reg[target]
	if !ok {
		return slots.Record{}, &slots.NotFoundError{SlotID: target}
	}
	return rec, nil
}

func recordFor(slotID string, h player.Handle) slots.Record {
	return slots.Record{
		SlotID:    slotID,
		Socket:    h.Socket,
		PID:       h.PID,
		LaunchID:  h.LaunchID,
		StartedAt: h.StartedAt,
	}
}
