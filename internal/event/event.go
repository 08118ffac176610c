// Package event defines the canonical inbound event model and the
// normalizer that maps raw webhook payloads onto it.
package event

import "errors"

// ErrMalformedEvent marks webhook payloads that cannot be normalized.
// The ingress still acknowledges such requests; the event is dropped
// with a logged warning so the sender does not retry-storm us.
var ErrMalformedEvent = errors.New("malformed event")

// Kind distinguishes the two accepted payload shapes.
type Kind string

const (
	// KindCommand is a slash command sent as a chat message.
	KindCommand Kind = "command"
	// KindButton is an inline keyboard button press.
	KindButton Kind = "button"
)

// Event is the canonical inbound action, consumed exactly once by the
// dialogue engine. Data holds "name:args" for commands and the verbatim
// button token for presses.
type Event struct {
	ActorID   int64
	ActorName string
	Kind      Kind
	Data      string

	// Transport metadata used by the outbound dispatcher. ChatID and
	// MessageID identify the message a button press originated from;
	// MessageID is zero for command events.
	ChatID     int64
	MessageID  int
	CallbackID string
	UpdateID   int
}
