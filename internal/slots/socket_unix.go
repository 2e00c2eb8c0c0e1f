//go:build !windows

package slots

import "path/filepath"

// SocketForSlot returns the control socket path for a slot. Pure
// derivation, no filesystem access. The primary slot keeps a fixed name
// so an already-running primary player stays reachable across upgrades;
// every other slot appends its id to the same base.
func SocketForSlot(runtimeDir, slotID string) string {
	if slotID == Primary {
		return filepath.Join(runtimeDir, "musichub-mpv.sock")
	}
	return filepath.Join(runtimeDir, "musichub-mpv-"+slotID+".sock")
}
