package engine

import "time"

// ActionKind tags the outbound action variants the engine may emit.
type ActionKind int

const (
	// ActionNoOp absorbs invalid transitions; the dispatcher only
	// acknowledges the triggering button press, nothing is rendered.
	ActionNoOp ActionKind = iota
	// ActionReply always sends a new message.
	ActionReply
	// ActionEdit edits the current message, or sends a new one when the
	// triggering event carries none (command-initiated flows).
	ActionEdit
	// ActionDelete removes the current message.
	ActionDelete
)

// Button is a single inline keyboard button in transport-neutral form.
type Button struct {
	Text string
	Data string
}

// Keyboard is rows of buttons attached to a rendered message.
type Keyboard [][]Button

// Action is one outbound render step. Delay is the pause the dispatcher
// observes before executing the step, which keeps the engine itself free
// of wall-clock dependencies. TrackView marks the step whose resulting
// message becomes the live batch view for the pagination sub-flow.
type Action struct {
	Kind      ActionKind
	Text      string
	Keyboard  Keyboard
	Delay     time.Duration
	TrackView bool
}

func noOp() []Action {
	return []Action{{Kind: ActionNoOp}}
}

func reply(text string, kb Keyboard) Action {
	return Action{Kind: ActionReply, Text: text, Keyboard: kb}
}

func edit(text string, kb Keyboard) Action {
	return Action{Kind: ActionEdit, Text: text, Keyboard: kb}
}

func editAfter(delay time.Duration, text string, kb Keyboard) Action {
	return Action{Kind: ActionEdit, Text: text, Keyboard: kb, Delay: delay}
}

func deleteCurrent() Action {
	return Action{Kind: ActionDelete}
}
