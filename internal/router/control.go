package router

import (
	"context"
	"log/slog"
)

// SlotOutcome is one slot's result within a batch operation. Batches
// never abort early; every targeted slot gets an outcome.
type SlotOutcome struct {
	Slot string `json:"slot"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

// Vol sets the volume on one slot or all of them, clamping the level
// silently. Channel failures are per-slot outcomes, not command errors;
// only naming a slot that does not exist fails the command.
func (r *Router) Vol(ctx context.Context, target string, level int) ([]SlotOutcome, error) {
	level = ClampVolume(level)

	reg, err := r.registry.Prune()
	if err != nil {
		return nil, err
	}
	ids, err := resolveTargets(reg, target)
	if err != nil {
		return nil, err
	}

	outcomes := make([]SlotOutcome, 0, len(ids))
	for _, id := range ids {
		if err := r.channel(reg[id].Socket).SetProperty(ctx, "volume", level); err != nil {
			outcomes = append(outcomes, SlotOutcome{Slot: id, Err: err.Error()})
			continue
		}
		outcomes = append(outcomes, SlotOutcome{Slot: id, OK: true})
	}
	return outcomes, nil
}

// Stop shuts down one slot or all of them. The quit is best-effort:
// whatever the channel says, the slot is deregistered, so a wedged
// player cannot pin its registry entry. The next prune catches any
// process that ignored the quit and later died; one that keeps running
// unregistered is deliberate leakage, visible to the user via the
// outcome.
func (r *Router) Stop(ctx context.Context, target string) ([]SlotOutcome, error) {
	reg, err := r.registry.Prune()
	if err != nil {
		return nil, err
	}
	ids, err := resolveTargets(reg, target)
	if err != nil {
		return nil, err
	}

	outcomes := make([]SlotOutcome, 0, len(ids))
	for _, id := range ids {
		outcome := SlotOutcome{Slot: id, OK: true}
		if err := r.channel(reg[id].Socket).Quit(ctx); err != nil {
			slog.Debug("quit failed, deregistering anyway", "slot", id, "err", err)
			outcome.OK = false
			outcome.Err = err.Error()
		}
		if err := r.registry.Unregister(id); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// Pause toggles playback on one slot and flashes an OSD hint on the
// player. The hint is cosmetic; the toggle is not.
func (r *Router) Pause(ctx context.Context, target string) error {
	rec, err := r.liveRecord(target)
	if err != nil {
		return err
	}

	ch := r.channel(rec.Socket)
	if err := ch.CyclePause(ctx); err != nil {
		return err
	}
	ch.ShowText(ctx, "music-hub: pause toggled")
	return nil
}

// Next skips one slot's player to its next playlist entry.
func (r *Router) Next(ctx context.Context, target string) error {
	rec, err := r.liveRecord(target)
	if err != nil {
		return err
	}

	ch := r.channel(rec.Socket)
	if err := ch.PlaylistNext(ctx); err != nil {
		return err
	}
	ch.ShowText(ctx, "music-hub: next track")
	return nil
}
