//go:build windows

package slots

// SocketForSlot returns the control pipe name for a slot. Named pipes
// live in the pipe namespace, so runtimeDir is unused here; the names
// match what existing installations already listen on.
func SocketForSlot(runtimeDir, slotID string) string {
	if slotID == Primary {
		return `\\.\pipe\musichub-mpv`
	}
	return `\\.\pipe\musichub-mpv-` + slotID
}
