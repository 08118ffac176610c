// Package dispatch turns engine actions into transport calls, one call
// per action, in emission order.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/identbot/core/logger"
	"github.com/m3rciful/identbot/internal/engine"
	"github.com/m3rciful/identbot/internal/event"
)

// Transport is the outbound messaging collaborator. Failures are the
// collaborator's to retry; the dispatcher only logs them.
type Transport interface {
	Send(ctx context.Context, chatID int64, text string, kb engine.Keyboard) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb engine.Keyboard) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	Ack(ctx context.Context, callbackID string) error
}

// Dispatcher executes ordered render steps for one event. It runs inside
// the actor's pump worker, so pacing delays stall only that actor.
type Dispatcher struct {
	transport Transport
	sleep     func(time.Duration)
}

// NewDispatcher wires the transport. sleep is injectable for tests; nil
// selects time.Sleep.
func NewDispatcher(transport Transport, sleep func(time.Duration)) *Dispatcher {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Dispatcher{transport: transport, sleep: sleep}
}

// Dispatch executes the actions emitted for ev. Button presses are
// acknowledged up front. EditCurrent degrades to a fresh send when the
// event carries no editable message; the sent message then becomes
// current for the rest of the sequence. Returns the message id of the
// step marked TrackView, when any such step rendered successfully.
func (d *Dispatcher) Dispatch(ctx context.Context, ev event.Event, actions []engine.Action) (int, bool) {
	if ev.CallbackID != "" {
		if err := d.transport.Ack(ctx, ev.CallbackID); err != nil {
			logger.Warn(ctx, "dispatch", "ack.fail", slog.String("error", err.Error()))
		}
	}

	current := ev.MessageID
	viewID := 0
	tracked := false

	for _, act := range actions {
		if act.Delay > 0 {
			d.sleep(act.Delay)
		}

		switch act.Kind {
		case engine.ActionNoOp:
			continue

		case engine.ActionReply:
			if _, err := d.transport.Send(ctx, ev.ChatID, act.Text, act.Keyboard); err != nil {
				d.logFailure(ctx, "send", err)
			}

		case engine.ActionEdit:
			if current == 0 {
				id, err := d.transport.Send(ctx, ev.ChatID, act.Text, act.Keyboard)
				if err != nil {
					d.logFailure(ctx, "send", err)
					continue
				}
				current = id
			} else if err := d.transport.Edit(ctx, ev.ChatID, current, act.Text, act.Keyboard); err != nil {
				d.logFailure(ctx, "edit", err)
				continue
			}
			if act.TrackView {
				viewID = current
				tracked = true
			}

		case engine.ActionDelete:
			if current == 0 {
				continue
			}
			if err := d.transport.Delete(ctx, ev.ChatID, current); err != nil {
				d.logFailure(ctx, "delete", err)
			}
			current = 0
		}
	}

	return viewID, tracked
}

// logFailure records a transport failure. No retry here and no session
// rollback: a failed render is a UX gap, not a correctness violation.
func (d *Dispatcher) logFailure(ctx context.Context, action string, err error) {
	logger.Error(ctx, "dispatch", "transport.fail",
		slog.String("action", action),
		slog.String("error", logger.SanitizeLimit(err.Error(), 256)),
	)
}
