// Package sse streams condition and marker updates as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner/pkg/constants"
)

// eventBuffer is the number of broadcast events waiting for Run.
const eventBuffer = 256

// Broadcaster fans events out to connected SSE streams. Streams register
// themselves in ServeHTTP; Run delivers queued events and ends every
// stream when its context is done.
type Broadcaster struct {
	mu       sync.RWMutex
	clients  map[chan Event]struct{}
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
	logger   *zerolog.Logger
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]struct{}),
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run delivers queued events until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	defer b.stop()
	for {
		select {
		case <-ctx.Done():
			b.logger.Debug().Msg("SSE broadcaster shut down")
			return
		case event := <-b.events:
			b.deliver(event)
		}
	}
}

func (b *Broadcaster) stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.mu.Lock()
		clear(b.clients)
		b.mu.Unlock()
	})
}

func (b *Broadcaster) deliver(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client <- event:
		default:
			b.logger.Warn().Str("event", event.Event).Msg("SSE client buffer full, event skipped")
		}
	}
}

// Broadcast queues an event for every stream; it drops the event when the
// queue is full.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Msg("SSE broadcast channel full, event dropped")
	}
}

// ClientCount returns the number of connected streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) add() (chan Event, bool) {
	select {
	case <-b.done:
		return nil, false
	default:
	}
	client := make(chan Event, constants.SSEClientBuffer)
	b.mu.Lock()
	b.clients[client] = struct{}{}
	n := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("total_clients", n).Msg("SSE client connected")
	return client, true
}

func (b *Broadcaster) remove(client chan Event) {
	b.mu.Lock()
	delete(b.clients, client)
	n := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("total_clients", n).Msg("SSE client disconnected")
}

// ServeHTTP streams events until the client goes away or the broadcaster
// stops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, ok := b.add()
	if !ok {
		http.Error(w, "Stream closed", http.StatusServiceUnavailable)
		return
	}
	defer b.remove(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	b.writeEvent(w, flusher, Event{
		Event: "client.connected",
		Data: map[string]any{
			"message":   "Connected to mariner updates stream",
			"timestamp": time.Now().UTC(),
		},
	})

	for {
		select {
		case event := <-client:
			b.writeEvent(w, flusher, event)
		case <-r.Context().Done():
			return
		case <-b.done:
			return
		}
	}
}

func (b *Broadcaster) writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event data")
		return
	}
	if event.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}
