package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// Subscriber manages the per-project WebSocket subscription. Frames
// arrive as JSON; only frames with type "event" are delivered, anything
// else (including frames that fail to parse) is dropped so a noisy
// backend never kills the stream.
//
// A dropped connection is redialed with exponential backoff until Close
// is called; events already delivered are unaffected, so the log feed
// stays continuous across reconnects.
type Subscriber struct {
	url    string
	events chan LogEvent
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	conn    *websocket.Conn
	started bool
	done    chan struct{}
}

type streamFrame struct {
	Type string `json:"type"`
}

const (
	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// NewSubscriber creates a subscriber for one project id. The WebSocket
// URL is derived from the HTTP base.
func NewSubscriber(baseURL, projectID string) (*Subscriber, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws/projects/" + projectID

	ctx, cancel := context.WithCancel(context.Background())
	return &Subscriber{
		url:    u.String(),
		events: make(chan LogEvent, 64),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}, nil
}

// Events returns the channel accepted events are delivered on. The
// channel is closed after Close, or once reconnecting has been given up.
func (s *Subscriber) Events() <-chan LogEvent {
	return s.events
}

// Connect dials the stream and starts the read loop.
func (s *Subscriber) Connect() error {
	conn, err := s.dial()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.started = true
	s.mu.Unlock()

	go s.readLoop()
	return nil
}

func (s *Subscriber) dial() (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	return conn, nil
}

// Close tears the subscription down. Safe on every exit path; callers
// must arrange for it to run even when setup partially failed.
func (s *Subscriber) Close() error {
	s.cancel()

	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	started := s.started
	s.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close(websocket.StatusNormalClosure, "closing")
	}
	if started {
		<-s.done
	}
	return err
}

func (s *Subscriber) readLoop() {
	defer close(s.done)
	defer close(s.events)

	backoff := reconnectBase
	for {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()

		if conn == nil {
			return
		}

		if s.readFrames(conn) {
			return
		}
		// Release the dead connection before redialing.
		conn.Close(websocket.StatusAbnormalClosure, "reconnecting")

		// Connection dropped; redial with backoff until cancelled.
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < reconnectMax {
				backoff *= 2
				if backoff > reconnectMax {
					backoff = reconnectMax
				}
			}

			next, err := s.dial()
			if err != nil {
				continue
			}
			backoff = reconnectBase

			s.mu.Lock()
			closed := s.conn == nil && s.ctx.Err() != nil
			if !closed {
				s.conn = next
			}
			s.mu.Unlock()

			if closed {
				next.Close(websocket.StatusNormalClosure, "closing")
				return
			}
			break
		}
	}
}

// readFrames pumps one connection. Returns true when the subscriber is
// shutting down, false when the connection dropped and should be
// redialed.
func (s *Subscriber) readFrames(conn *websocket.Conn) bool {
	for {
		select {
		case <-s.ctx.Done():
			return true
		default:
		}

		_, message, err := conn.Read(s.ctx)
		if err != nil {
			return s.ctx.Err() != nil
		}

		var frame streamFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			continue // malformed frame, keep the stream alive
		}
		if frame.Type != "event" {
			continue
		}

		var event LogEvent
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}

		select {
		case s.events <- event:
		case <-s.ctx.Done():
			return true
		}
	}
}
