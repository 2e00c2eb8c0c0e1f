package mpvipc

import (
	"errors"
	"fmt"
)

// ErrUnreachable reports that no player answered on the socket: nothing
// is listening, the endpoint does not exist, or the connect timed out.
var ErrUnreachable = errors.New("player control socket unreachable")

// ProtocolError reports that a player answered but the exchange failed:
// the reply carried an error status, was malformed, or timed out.
type ProtocolError struct {
	Op     string // command verb, e.g. "loadfile"
	Reason string // player-reported status or transport detail
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("player rejected %s: %s", e.Op, e.Reason)
}

// IsUnreachable returns true if the error means no player is listening
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsProtocol returns true if the error came from a live player that
// answered badly rather than from an absent one
func IsProtocol(err error) bool {
	var protocol *ProtocolError
	return errors.As(err, &protocol)
}
