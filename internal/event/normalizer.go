package event

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Normalize converts a raw Bot API update into a canonical Event.
// Exactly two payload shapes are accepted: a slash-command message and a
// callback button press. Anything else is ErrMalformedEvent.
func Normalize(upd *tele.Update) (Event, error) {
	if upd == nil {
		return Event{}, fmt.Errorf("nil update: %w", ErrMalformedEvent)
	}

	switch {
	case upd.Callback != nil:
		return normalizeCallback(upd)
	case upd.Message != nil:
		return normalizeMessage(upd)
	}
	return Event{}, fmt.Errorf("unsupported update shape: %w", ErrMalformedEvent)
}

func normalizeCallback(upd *tele.Update) (Event, error) {
	cb := upd.Callback
	if cb.Sender == nil || cb.Sender.ID == 0 {
		return Event{}, fmt.Errorf("callback without sender: %w", ErrMalformedEvent)
	}

	data := strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
	if data == "" {
		return Event{}, fmt.Errorf("callback without data: %w", ErrMalformedEvent)
	}

	ev := Event{
		ActorID:    cb.Sender.ID,
		ActorName:  cb.Sender.FirstName,
		Kind:       KindButton,
		Data:       data,
		CallbackID: cb.ID,
		UpdateID:   upd.ID,
	}
	if cb.Message != nil {
		ev.MessageID = cb.Message.ID
		if cb.Message.Chat != nil {
			ev.ChatID = cb.Message.Chat.ID
		}
	}
	if ev.ChatID == 0 {
		ev.ChatID = cb.Sender.ID
	}
	return ev, nil
}

func normalizeMessage(upd *tele.Update) (Event, error) {
	msg := upd.Message
	if msg.Sender == nil || msg.Sender.ID == 0 {
		return Event{}, fmt.Errorf("message without sender: %w", ErrMalformedEvent)
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return Event{}, fmt.Errorf("non-command message: %w", ErrMalformedEvent)
	}

	name, args, _ := strings.Cut(text[1:], " ")
	// Strip the "@botname" suffix used in group chats.
	name, _, _ = strings.Cut(name, "@")
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Event{}, fmt.Errorf("empty command: %w", ErrMalformedEvent)
	}

	data := name
	if args = strings.TrimSpace(args); args != "" {
		data = name + ":" + args
	}

	ev := Event{
		ActorID:   msg.Sender.ID,
		ActorName: msg.Sender.FirstName,
		Kind:      KindCommand,
		Data:      data,
		ChatID:    msg.Sender.ID,
		UpdateID:  upd.ID,
	}
	if msg.Chat != nil {
		ev.ChatID = msg.Chat.ID
	}
	return ev, nil
}

// Command splits an Event's command data into name and argument string.
// The argument is empty when the command carried none.
func (e Event) Command() (string, string) {
	if e.Kind != KindCommand {
		return "", ""
	}
	name, args, _ := strings.Cut(e.Data, ":")
	return name, args
}
