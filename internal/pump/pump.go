// Package pump decouples webhook ingestion from dialogue processing.
// Events for one actor are processed strictly in arrival order by a
// dedicated worker; distinct actors run fully in parallel. Queues are
// unbounded FIFOs: sustained overload grows memory instead of blocking
// the HTTP accept path, an accepted trade-off at this scope.
package pump

import (
	"context"
	"errors"
	"sync"

	"github.com/m3rciful/identbot/internal/event"
)

// ErrClosed is returned when submitting after shutdown began.
var ErrClosed = errors.New("pump: closed")

// Handler processes one event. It runs on the actor's worker goroutine,
// so it may block (pacing delays) without affecting other actors.
type Handler func(ctx context.Context, ev event.Event)

// Pump fans events out to per-actor workers.
type Pump struct {
	handler Handler

	mu     sync.Mutex
	queues map[int64]*actorQueue
	closed bool

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New constructs a Pump around the processing handler.
func New(handler Handler) *Pump {
	return &Pump{
		handler: handler,
		queues:  make(map[int64]*actorQueue),
		stop:    make(chan struct{}),
	}
}

// Submit enqueues an event for its actor, creating the worker lazily.
// It never blocks on processing.
func (p *Pump) Submit(ev event.Event) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	q, ok := p.queues[ev.ActorID]
	if !ok {
		q = newActorQueue()
		p.queues[ev.ActorID] = q
		p.wg.Add(1)
		go p.worker(q)
	}
	p.mu.Unlock()

	q.push(ev)
	return nil
}

// Close stops accepting events, lets every worker drain its queue and
// waits for them to finish.
func (p *Pump) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.stop)
		p.wg.Wait()
	})
}

func (p *Pump) worker(q *actorQueue) {
	defer p.wg.Done()
	ctx := context.Background()
	for {
		ev, ok := q.pop(p.stop)
		if !ok {
			return
		}
		p.handler(ctx, ev)
	}
}

// actorQueue is an unbounded FIFO with a single consumer.
type actorQueue struct {
	mu    sync.Mutex
	items []event.Event
	wake  chan struct{}
}

func newActorQueue() *actorQueue {
	return &actorQueue{wake: make(chan struct{}, 1)}
}

func (q *actorQueue) push(ev event.Event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop returns the next event, blocking until one arrives or stop closes.
// On stop it keeps returning queued events until the queue is drained.
func (q *actorQueue) pop(stop <-chan struct{}) (event.Event, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, true
		}
		q.mu.Unlock()

		select {
		case <-q.wake:
		case <-stop:
			// Drain anything that raced in before the stop.
			q.mu.Lock()
			if len(q.items) > 0 {
				ev := q.items[0]
				q.items = q.items[1:]
				q.mu.Unlock()
				return ev, true
			}
			q.mu.Unlock()
			return event.Event{}, false
		}
	}
}
