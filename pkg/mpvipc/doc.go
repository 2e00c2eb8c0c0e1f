// Package mpvipc speaks mpv's JSON IPC protocol over a player's control
// socket (a unix domain socket on POSIX, a named pipe on Windows).
//
// # Wire format
//
// Each request is a single JSON object on its own line:
//
//	{"command": ["loadfile", "song.mp3", "replace"], "request_id": 7}
//
// The player answers with a JSON line carrying the same request_id and
// an "error" field that reads "success" when the command was accepted.
// Asynchronous event lines (objects with an "event" field) interleave
// freely with replies and are skipped while waiting for a match.
//
// # Error model
//
// Failures split into two kinds that callers must treat differently:
//
//   - ErrUnreachable: nothing is listening on the socket. This is the
//     normal state of a slot whose player was never started or has
//     exited, and is what orchestration code keys its spawn decisions on.
//   - ProtocolError: a player answered, but the exchange failed (error
//     status, malformed reply, or reply timeout). A live player answered,
//     so this is never treated as "player not running".
//
// # Usage
//
//	client := mpvipc.NewClient("/run/music-hub/musichub-mpv.sock", 0)
//	if err := client.LoadReplace(ctx, "https://example.com/stream"); err != nil {
//		if mpvipc.IsUnreachable(err) {
//			// spawn a player, then retry or hand the targets to the launcher
//		}
//		return err
//	}
//
// Every call opens a fresh connection for one request/response exchange.
// The caller's lifetime is a single CLI invocation, so holding
// connections open buys nothing and would complicate reply matching.
package mpvipc
