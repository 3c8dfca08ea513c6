package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// ScriptMessage is the first argument of every script-message mpvtick binds.
const ScriptMessage = "mpvtick"

const (
	eventClientMessage = "client-message"
	eventShutdown      = "shutdown"
	replySuccess       = "success"
)

var (
	ErrClosed  = errors.New("mpv: connection closed")
	ErrCommand = errors.New("mpv: command failed")
)

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type message struct {
	RequestID *int64          `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Event     string          `json:"event,omitempty"`
	Args      []string        `json:"args,omitempty"`
}

type Client struct {
	logger *slog.Logger
	conn   net.Conn

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu       sync.Mutex
	pending  map[int64]chan message
	bindings map[string]func()

	closed    chan struct{}
	closeOnce sync.Once
}

// Connect dials the IPC server at path, a unix socket or a windows pipe.
func Connect(ctx context.Context, logger *slog.Logger, path string) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := dial(dialCtx, path)
	if err != nil {
		return nil, err
	}

	return NewClient(logger, conn), nil
}

func NewClient(logger *slog.Logger, conn net.Conn) *Client {
	return &Client{
		logger:   logger,
		conn:     conn,
		pending:  make(map[int64]chan message),
		bindings: make(map[string]func()),
		closed:   make(chan struct{}),
	}
}

// Listen reads replies and events until the connection drops, mpv shuts
// down or ctx is cancelled. Commands only complete while Listen runs.
func (c *Client) Listen(ctx context.Context) error {
	defer c.Close()

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.closed:
		}
	}()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			c.logger.WarnContext(ctx, "mpv: could not decode message", slog.String("line", scanner.Text()), slog.Any("error", err))
			continue
		}

		if msg.Event == "" && msg.RequestID != nil {
			c.deliver(*msg.RequestID, msg)
			continue
		}

		if msg.Event == eventShutdown {
			c.logger.InfoContext(ctx, "mpv: player is shutting down")
			return nil
		}

		c.handleEvent(ctx, msg)
	}

	if ctx.Err() != nil {
		return nil
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("mpv: read failed. %w", err)
	}

	c.logger.InfoContext(ctx, "mpv: connection closed by player")
	return nil
}

func (c *Client) deliver(id int64, msg message) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()

	if ok {
		ch <- msg
	}
}

func (c *Client) handleEvent(ctx context.Context, msg message) {
	if msg.Event != eventClientMessage || len(msg.Args) < 2 || msg.Args[0] != ScriptMessage {
		return
	}

	action := msg.Args[1]

	c.mu.Lock()
	fn, ok := c.bindings[action]
	c.mu.Unlock()

	if !ok {
		c.logger.DebugContext(ctx, "mpv: no binding for action", slog.String("action", action))
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.ErrorContext(ctx, "mpv: recovered from panic in key action", slog.String("action", action), slog.Any("panic", r))
			}
		}()

		fn()
	}()
}

// Command runs an mpv input command and returns the reply data.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	id := c.nextID.Add(1)
	reply := make(chan message, 1)

	c.mu.Lock()
	c.pending[id] = reply
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}

	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		forget()
		return nil, fmt.Errorf("mpv: could not encode command. %w", err)
	}

	if err := c.write(append(payload, '\n')); err != nil {
		forget()
		return nil, err
	}

	select {
	case msg := <-reply:
		if msg.Error != replySuccess {
			return nil, fmt.Errorf("%w: %v: %s", ErrCommand, args[0], msg.Error)
		}
		return msg.Data, nil
	case <-c.closed:
		forget()
		return nil, ErrClosed
	case <-ctx.Done():
		forget()
		return nil, ctx.Err()
	}
}

func (c *Client) write(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("mpv: could not write command. %w", err)
	}

	return nil
}

func (c *Client) ShowText(ctx context.Context, text string, duration time.Duration) error {
	_, err := c.Command(ctx, "show-text", text, duration.Milliseconds())
	return err
}

func (c *Client) GetProperty(ctx context.Context, name string) (any, error) {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return nil, err
	}

	var value any
	if len(data) == 0 {
		return value, nil
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("mpv: could not decode property %s. %w", name, err)
	}

	return value, nil
}

func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	_, err := c.Command(ctx, "set_property", name, value)
	return err
}

// BindKey makes key send "script-message mpvtick <action>", which Listen
// turns into a call to fn.
func (c *Client) BindKey(ctx context.Context, key string, action string, fn func()) error {
	c.mu.Lock()
	c.bindings[action] = fn
	c.mu.Unlock()

	_, err := c.Command(ctx, "keybind", key, fmt.Sprintf("script-message %s %s", ScriptMessage, action))
	if err != nil {
		return fmt.Errorf("mpv: could not bind %s to %s. %w", key, action, err)
	}

	return nil
}

func (c *Client) Close() error {
	var err error

	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})

	return err
}
