// Package slots tracks which player slots are occupied by live
// processes. The registry is a single JSON file, rewritten whole on
// every mutation and reconciled against process liveness before use.
package slots

import "time"

const (
	// Primary is the slot that play reuses and stop targets by default.
	Primary = "0"

	// MaxSlots bounds slot id allocation.
	MaxSlots = 100
)

// Record describes one occupied slot: which process owns it and the
// control socket that process listens on.
type Record struct {
	SlotID    string    `json:"slot_id"`
	Socket    string    `json:"socket"`
	PID       int       `json:"pid"`
	LaunchID  string    `json:"launch_id,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
