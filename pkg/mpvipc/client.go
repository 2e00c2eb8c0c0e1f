package mpvipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds connecting to a socket and waiting for a reply.
// Probing a socket with no listener is the normal "player not running"
// case, so the bound stays short.
const DefaultTimeout = time.Second

// Client talks to one player instance over its control socket. Each
// method opens a fresh connection, performs a single request/response
// exchange and closes. Safe for concurrent use.
type Client struct {
	socket  string
	timeout time.Duration
	nextID  atomic.Int64
}

// NewClient creates a client for the player listening on socket.
// A timeout of zero means DefaultTimeout.
func NewClient(socket string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{socket: socket, timeout: timeout}
}

// Socket returns the address this client talks to.
func (c *Client) Socket() string {
	return c.socket
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// Response is one reply line from the player. The player reports
// command status in its "error" field; "success" means accepted.
type Response struct {
	Data      any    `json:"data"`
	Status    string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event,omitempty"`
}

// OK reports whether the player accepted the command.
func (r *Response) OK() bool {
	return r.Status == "success"
}

// Command sends one command array and waits for the matching reply.
// Dial failures return ErrUnreachable; every failure after a successful
// connect is a *ProtocolError.
func (c *Client) Command(ctx context.Context, args ...any) (*Response, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := dial(dialCtx, c.socket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.socket, ErrUnreachable)
	}
	defer conn.Close()

	id := c.nextID.Add(1)
	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	payload = append(payload, '\n')

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, &ProtocolError{Op: opName(args), Reason: fmt.Sprintf("set deadline: %v", err)}
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, &ProtocolError{Op: opName(args), Reason: fmt.Sprintf("write failed: %v", err)}
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, &ProtocolError{Op: opName(args), Reason: fmt.Sprintf("malformed reply: %v", err)}
		}

		// Event traffic and replies to other requests interleave with
		// the reply we are waiting for.
		if resp.Event != "" || resp.RequestID != id {
			continue
		}

		if !resp.OK() {
			return nil, &ProtocolError{Op: opName(args), Reason: resp.Status}
		}
		return &resp, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, &ProtocolError{Op: opName(args), Reason: fmt.Sprintf("reply timed out: %v", err)}
	}
	return nil, &ProtocolError{Op: opName(args), Reason: "connection closed before reply"}
}

// LoadReplace replaces the player's playlist with target and starts playback.
func (c *Client) LoadReplace(ctx context.Context, target string) error {
	_, err := c.Command(ctx, "loadfile", target, "replace")
	return err
}

// LoadAppend appends target to the player's playlist.
func (c *Client) LoadAppend(ctx context.Context, target string) error {
	_, err := c.Command(ctx, "loadfile", target, "append")
	return err
}

// GetProperty fetches a property value (numbers arrive as float64).
func (c *Client) GetProperty(ctx context.Context, name string) (any, error) {
	resp, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SetProperty assigns a property value.
func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	_, err := c.Command(ctx, "set_property", name, value)
	return err
}

// Quit asks the player to exit.
func (c *Client) Quit(ctx context.Context) error {
	_, err := c.Command(ctx, "quit")
	return err
}

// CyclePause toggles the player between paused and playing.
func (c *Client) CyclePause(ctx context.Context) error {
	_, err := c.Command(ctx, "cycle", "pause")
	return err
}

// PlaylistNext skips to the next playlist entry even while loading.
func (c *Client) PlaylistNext(ctx context.Context) error {
	_, err := c.Command(ctx, "playlist-next", "force")
	return err
}

// ShowText flashes an on-screen message. Feedback is best-effort, so
// failures are dropped.
func (c *Client) ShowText(ctx context.Context, text string) {
	_, _ = c.Command(ctx, "show-text", text, 1500)
}

func opName(args []any) string {
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	return "command"
}
