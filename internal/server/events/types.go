// Package events connects mariner's hooks to the realtime transports.
//
// The Broker receives events published from hooks (conditions refreshes,
// marker selections) and fans them out to every Subscriber. The WebSocket
// hub and the SSE broadcaster are subscribed through the adapters package.
package events

import "time"

// EventType names an event on the wire.
type EventType string

// Event types.
const (
	// ConditionsUpdated carries a port's newly applied conditions snapshot.
	ConditionsUpdated EventType = "conditions.updated"

	// MarkerSelected is published when a map popup's details action fires.
	MarkerSelected EventType = "marker.selected"

	// ClientConnected is sent to a transport client when it connects.
	ClientConnected EventType = "client.connected"
)

// Event is one published event.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
