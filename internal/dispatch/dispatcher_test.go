package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3rciful/identbot/internal/engine"
	"github.com/m3rciful/identbot/internal/event"
)

type call struct {
	op        string
	messageID int
	text      string
}

type fakeTransport struct {
	calls   []call
	nextID  int
	editErr error
}

func (f *fakeTransport) Send(_ context.Context, _ int64, text string, _ engine.Keyboard) (int, error) {
	f.nextID++
	f.calls = append(f.calls, call{op: "send", messageID: f.nextID, text: text})
	return f.nextID, nil
}

func (f *fakeTransport) Edit(_ context.Context, _ int64, messageID int, text string, _ engine.Keyboard) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.calls = append(f.calls, call{op: "edit", messageID: messageID, text: text})
	return nil
}

func (f *fakeTransport) Delete(_ context.Context, _ int64, messageID int) error {
	f.calls = append(f.calls, call{op: "delete", messageID: messageID})
	return nil
}

func (f *fakeTransport) Ack(_ context.Context, _ string) error {
	f.calls = append(f.calls, call{op: "ack"})
	return nil
}

func edit(text string) engine.Action {
	return engine.Action{Kind: engine.ActionEdit, Text: text}
}

func TestDispatchEditsCurrentMessageInOrder(t *testing.T) {
	tr := &fakeTransport{}
	var slept []time.Duration
	d := NewDispatcher(tr, func(dur time.Duration) { slept = append(slept, dur) })

	ev := event.Event{ActorID: 7, ChatID: 7, MessageID: 42, CallbackID: "cb", Kind: event.KindButton}
	actions := []engine.Action{
		edit("one"),
		{Kind: engine.ActionEdit, Text: "two", Delay: 100 * time.Millisecond},
		{Kind: engine.ActionEdit, Text: "three", Delay: 100 * time.Millisecond, TrackView: true},
	}

	viewID, tracked := d.Dispatch(context.Background(), ev, actions)

	want := []call{
		{op: "ack"},
		{op: "edit", messageID: 42, text: "one"},
		{op: "edit", messageID: 42, text: "two"},
		{op: "edit", messageID: 42, text: "three"},
	}
	if len(tr.calls) != len(want) {
		t.Fatalf("calls = %+v", tr.calls)
	}
	for i := range want {
		if tr.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, tr.calls[i], want[i])
		}
	}
	if len(slept) != 2 {
		t.Errorf("pacing steps = %d", len(slept))
	}
	if !tracked || viewID != 42 {
		t.Errorf("view = %d tracked = %v", viewID, tracked)
	}
}

func TestDispatchDegradesEditToSendForCommands(t *testing.T) {
	tr := &fakeTransport{}
	d := NewDispatcher(tr, func(time.Duration) {})

	// Command events carry no editable message.
	ev := event.Event{ActorID: 7, ChatID: 7, Kind: event.KindCommand}
	actions := []engine.Action{edit("menu"), edit("second"), {Kind: engine.ActionEdit, Text: "final", TrackView: true}}

	viewID, tracked := d.Dispatch(context.Background(), ev, actions)

	if tr.calls[0].op != "send" {
		t.Fatalf("first call = %+v", tr.calls[0])
	}
	sentID := tr.calls[0].messageID
	// Subsequent steps edit the freshly sent message.
	for _, c := range tr.calls[1:] {
		if c.op != "edit" || c.messageID != sentID {
			t.Errorf("call = %+v, want edit of %d", c, sentID)
		}
	}
	if !tracked || viewID != sentID {
		t.Errorf("view = %d tracked = %v", viewID, tracked)
	}
}

func TestDispatchReplyAlwaysSendsNew(t *testing.T) {
	tr := &fakeTransport{}
	d := NewDispatcher(tr, func(time.Duration) {})

	ev := event.Event{ActorID: 7, ChatID: 7, MessageID: 42, Kind: event.KindButton}
	d.Dispatch(context.Background(), ev, []engine.Action{{Kind: engine.ActionReply, Text: "stats"}})

	if len(tr.calls) != 1 || tr.calls[0].op != "send" {
		t.Fatalf("calls = %+v", tr.calls)
	}
}

func TestDispatchDelete(t *testing.T) {
	tr := &fakeTransport{}
	d := NewDispatcher(tr, func(time.Duration) {})

	ev := event.Event{ActorID: 7, ChatID: 7, MessageID: 42, Kind: event.KindButton}
	d.Dispatch(context.Background(), ev, []engine.Action{{Kind: engine.ActionDelete}})

	if len(tr.calls) != 1 || tr.calls[0] != (call{op: "delete", messageID: 42}) {
		t.Fatalf("calls = %+v", tr.calls)
	}

	// Deleting with no current message is a no-op.
	tr.calls = nil
	d.Dispatch(context.Background(), event.Event{ActorID: 7, ChatID: 7, Kind: event.KindCommand}, []engine.Action{{Kind: engine.ActionDelete}})
	if len(tr.calls) != 0 {
		t.Fatalf("calls = %+v", tr.calls)
	}
}

func TestDispatchNoOpRendersNothing(t *testing.T) {
	tr := &fakeTransport{}
	d := NewDispatcher(tr, func(time.Duration) {})

	ev := event.Event{ActorID: 7, ChatID: 7, MessageID: 42, CallbackID: "cb", Kind: event.KindButton}
	d.Dispatch(context.Background(), ev, []engine.Action{{Kind: engine.ActionNoOp}})

	// Only the callback acknowledgement goes out.
	if len(tr.calls) != 1 || tr.calls[0].op != "ack" {
		t.Fatalf("calls = %+v", tr.calls)
	}
}

func TestDispatchContinuesPastTransportFailure(t *testing.T) {
	tr := &fakeTransport{editErr: errors.New("boom")}
	d := NewDispatcher(tr, func(time.Duration) {})

	ev := event.Event{ActorID: 7, ChatID: 7, MessageID: 42, Kind: event.KindButton}
	actions := []engine.Action{
		edit("fails"),
		{Kind: engine.ActionDelete},
	}
	viewID, tracked := d.Dispatch(context.Background(), ev, actions)

	// The failed edit is skipped, the delete still runs.
	if len(tr.calls) != 1 || tr.calls[0].op != "delete" {
		t.Fatalf("calls = %+v", tr.calls)
	}
	if tracked || viewID != 0 {
		t.Errorf("view tracked despite failure")
	}
}
