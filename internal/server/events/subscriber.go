package events

// Subscriber consumes events for one transport.
type Subscriber interface {
	// Send delivers an event. It must not block; transports buffer or
	// drop on their own.
	Send(Event) error

	// Close releases the subscriber when the broker shuts down.
	Close() error
}
