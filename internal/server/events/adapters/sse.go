package adapters

import (
	"strconv"

	"github.com/harborline/mariner/internal/server/events"
	"github.com/harborline/mariner/internal/server/sse"
)

// SSESubscriber forwards broker events to the SSE broadcaster.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a new SSE subscriber.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send queues the event on every SSE stream. The frame id is the event's
// timestamp in milliseconds.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatInt(event.Timestamp.UnixMilli(), 10),
		Data:  event.Data,
	})
	return nil
}

// Close is a no-op; the broadcaster has its own lifecycle.
func (s *SSESubscriber) Close() error {
	return nil
}
