// Package net publishes board changes to read-only observers over a
// websocket feed and advertises the feed on the local network.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"MarkBoard/internal/logger"
	"MarkBoard/internal/state"
)

const (
	FeedPath = "/feed"

	EventStrokeComplete = "stroke_complete"
	EventStrokesChange  = "strokes_change"

	writeWait  = 5 * time.Second
	sendBuffer = 32
)

// Event is one message on the feed.
type Event struct {
	Type    string           `json:"type"`
	Stroke  *state.Stroke    `json:"stroke,omitempty"`
	Strokes state.Collection `json:"strokes,omitempty"`
}

// MarshalJSON writes only the payload field that belongs to the event type.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Type == EventStrokesChange {
		strokes := e.Strokes
		if strokes == nil {
			strokes = state.Collection{}
		}
		return json.Marshal(struct {
			Type    string           `json:"type"`
			Strokes state.Collection `json:"strokes"`
		}{e.Type, strokes})
	}
	return json.Marshal(struct {
		Type   string        `json:"type"`
		Stroke *state.Stroke `json:"stroke,omitempty"`
	}{e.Type, e.Stroke})
}

func StrokeComplete(s state.Stroke) Event {
	return Event{Type: EventStrokeComplete, Stroke: &s}
}

func StrokesChange(c state.Collection) Event {
	return Event{Type: EventStrokesChange, Strokes: c}
}

type observer struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed fans events out to every connected observer. Observers that fall
// behind are disconnected rather than blocking the board.
type Feed struct {
	upgrader  websocket.Upgrader
	mu        sync.Mutex
	observers map[*observer]struct{}
	log       *slog.Logger
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		observers: make(map[*observer]struct{}),
		log:       logger.For("feed"),
	}
}

// Observers returns the number of connected observers.
func (f *Feed) Observers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.observers)
}

// Publish queues ev for every observer. It never blocks.
func (f *Feed) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		f.log.Warn("encode event", "type", ev.Type, "error", err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for o := range f.observers {
		select {
		case o.send <- data:
		default:
			f.log.Warn("observer too slow, dropping", "remote", o.conn.RemoteAddr().String())
			f.dropLocked(o)
		}
	}
}

func (f *Feed) dropLocked(o *observer) {
	if _, ok := f.observers[o]; !ok {
		return
	}
	delete(f.observers, o)
	close(o.send)
}

func (f *Feed) drop(o *observer) {
	f.mu.Lock()
	f.dropLocked(o)
	f.mu.Unlock()
}

// ServeHTTP upgrades the request and registers the observer.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	o := &observer{conn: conn, send: make(chan []byte, sendBuffer)}
	f.mu.Lock()
	f.observers[o] = struct{}{}
	f.mu.Unlock()
	f.log.Info("observer connected", "remote", conn.RemoteAddr().String())

	go f.write(o)
	f.read(o)
}

// read discards inbound messages until the connection closes.
func (f *Feed) read(o *observer) {
	defer func() {
		f.drop(o)
		o.conn.Close()
		f.log.Info("observer disconnected", "remote", o.conn.RemoteAddr().String())
	}()
	for {
		if _, _, err := o.conn.NextReader(); err != nil {
			return
		}
	}
}

func (f *Feed) write(o *observer) {
	defer o.conn.Close()
	for data := range o.send {
		o.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := o.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.drop(o)
			return
		}
	}
	o.conn.SetWriteDeadline(time.Now().Add(writeWait))
	o.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every observer.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for o := range f.observers {
		f.dropLocked(o)
	}
}

// Serve listens on addr and serves the feed until ctx is done. ready, if
// set, receives the bound address once the listener is up.
func (f *Feed) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen feed %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(FeedPath, f)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		f.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	if ready != nil {
		ready(ln.Addr())
	}
	f.log.Info("feed listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve feed: %w", err)
	}
	return nil
}
