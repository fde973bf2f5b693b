package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/DexterLB/mpvipc"
)

// ErrClosed is returned for requests made after the connection went away.
var ErrClosed = errors.New("mpv connection closed")

// ErrPropertyUnavailable mirrors mpv's "property unavailable" error, which
// it reports for properties that exist but have no value right now.
var ErrPropertyUnavailable = errors.New("property unavailable")

const eventBuffer = 64

// Event is an asynchronous message from the player, such as a property change.
type Event struct {
	Name string
	ID   int64
	Data json.RawMessage
}

// Client speaks mpv's JSON IPC protocol over one connection. It is safe for
// concurrent use.
type Client struct {
	conn *mpvipc.Connection

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

// Dial connects to the socket mpv opened with --input-ipc-server.
func Dial(ctx context.Context, socketPath string) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn := mpvipc.NewConnection(socketPath)
	if err := conn.Open(); err != nil {
		return nil, fmt.Errorf("connect to mpv at %s: %w", socketPath, err)
	}

	c := &Client{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	// the listener stays registered for the life of the connection
	listener, _ := conn.NewEventListener()
	go c.forward(listener)
	return c, nil
}

// Events delivers property changes and other player events. The channel is
// closed when the connection ends. Events are dropped if it is not drained.
// Delivery order between events is not guaranteed.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Err reports why the connection ended, once Events has been closed.
func (c *Client) Err() error {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.err
	default:
		return nil
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Command runs an mpv input command and returns its data field.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	if c.conn.IsClosed() {
		return nil, ErrClosed
	}

	type reply struct {
		data any
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		data, err := c.conn.Call(args...)
		ch <- reply{data, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, commandError(r.err)
		}
		if r.data == nil {
			return nil, nil
		}
		raw, err := json.Marshal(r.data)
		if err != nil {
			return nil, fmt.Errorf("encode mpv reply: %w", err)
		}
		return raw, nil
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func commandError(err error) error {
	if strings.Contains(err.Error(), ErrPropertyUnavailable.Error()) {
		return ErrPropertyUnavailable
	}
	return err
}

// GetProperty decodes the current value of name into out.
func (c *Client) GetProperty(ctx context.Context, name string, out any) error {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return fmt.Errorf("get %s: %w", name, err)
	}
	if data == nil {
		data = json.RawMessage("null")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	if _, err := c.Command(ctx, "set_property", name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// ObserveProperty asks mpv to send a property-change event tagged with id
// whenever name changes.
func (c *Client) ObserveProperty(ctx context.Context, id int64, name string) error {
	if _, err := c.Command(ctx, "observe_property", id, name); err != nil {
		return fmt.Errorf("observe %s: %w", name, err)
	}
	return nil
}

func (c *Client) UnobserveProperty(ctx context.Context, id int64) error {
	if _, err := c.Command(ctx, "unobserve_property", id); err != nil {
		return fmt.Errorf("unobserve %d: %w", id, err)
	}
	return nil
}

// forward copies library events into the buffered channel until the
// connection closes.
func (c *Client) forward(listener chan *mpvipc.Event) {
	closed := make(chan struct{})
	go func() {
		c.conn.WaitUntilClosed()
		close(closed)
	}()

	for {
		select {
		case ev, ok := <-listener:
			if !ok {
				c.shutdown(ErrClosed)
				return
			}
			if ev == nil {
				continue
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			select {
			case c.events <- Event{Name: ev.Name, ID: int64(ev.ID), Data: data}:
			default:
			}
		case <-closed:
			c.shutdown(ErrClosed)
			return
		}
	}
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
		close(c.events)
	})
}
