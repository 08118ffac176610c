package pump

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/identbot/internal/event"
)

func TestPerActorOrderPreserved(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int64][]string)

	p := New(func(_ context.Context, ev event.Event) {
		// Uneven processing time must not reorder an actor's events.
		if ev.Data == "a-1" {
			time.Sleep(10 * time.Millisecond)
		}
		mu.Lock()
		seen[ev.ActorID] = append(seen[ev.ActorID], ev.Data)
		mu.Unlock()
	})

	for i := 1; i <= 4; i++ {
		for _, actor := range []int64{1, 2} {
			prefix := "a"
			if actor == 2 {
				prefix = "b"
			}
			if err := p.Submit(event.Event{ActorID: actor, Data: prefixN(prefix, i)}); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
	}
	p.Close()

	for actor, got := range seen {
		for i, data := range got {
			want := prefixN("a", i+1)
			if actor == 2 {
				want = prefixN("b", i+1)
			}
			if data != want {
				t.Errorf("actor %d event %d = %q, want %q", actor, i, data, want)
			}
		}
		if len(got) != 4 {
			t.Errorf("actor %d processed %d events", actor, len(got))
		}
	}
}

func prefixN(prefix string, n int) string {
	return prefix + "-" + string(rune('0'+n))
}

func TestActorsRunIndependently(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	fastDone := make(chan struct{})

	p := New(func(_ context.Context, ev event.Event) {
		switch ev.ActorID {
		case 1:
			close(slowStarted)
			<-release
		case 2:
			close(fastDone)
		}
	})
	defer p.Close()

	if err := p.Submit(event.Event{ActorID: 1}); err != nil {
		t.Fatal(err)
	}
	<-slowStarted
	if err := p.Submit(event.Event{ActorID: 2}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fastDone:
	case <-time.After(2 * time.Second):
		t.Fatal("a stalled actor blocked another actor's worker")
	}
	close(release)
}

func TestSubmitAfterCloseFails(t *testing.T) {
	p := New(func(context.Context, event.Event) {})
	p.Close()
	if err := p.Submit(event.Event{ActorID: 1}); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v", err)
	}
}

func TestCloseDrainsQueuedEvents(t *testing.T) {
	var mu sync.Mutex
	var count int
	p := New(func(_ context.Context, ev event.Event) {
		time.Sleep(time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
	})
	for i := 0; i < 10; i++ {
		if err := p.Submit(event.Event{ActorID: 1, Data: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	p.Close()

	mu.Lock()
	defer mu.Unlock()
	if count != 10 {
		t.Fatalf("processed %d of 10 queued events", count)
	}
}
