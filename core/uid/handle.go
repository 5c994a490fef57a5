package uid

import (
	"context"
	"sync/atomic"
)

// Handle is a reference to one id actor. Clones share the actor and its
// counter. A Handle is safe for concurrent use.
type Handle struct {
	tx       *sender
	released atomic.Bool
}

// New starts a fresh actor, with its counter at zero, and returns the first
// handle to it.
func New(opts Options) *Handle {
	return spawn(opts, 0)
}

func spawn(opts Options, nextID uint32) *Handle {
	opts = opts.withDefaults()

	tx, rx := newChannel(opts.Capacity)
	a := newActor(rx, opts)
	a.nextID = nextID

	tx.done = a.done
	tx.id = opts.ID
	tx.metrics = opts.Metrics

	go a.run()

	return &Handle{tx: tx}
}

// Clone returns another handle to the same actor. Each clone must be
// released on its own. Cloning a released handle yields a released handle.
func (h *Handle) Clone() *Handle {
	c := &Handle{tx: h.tx}
	if h.released.Load() {
		c.released.Store(true)
		return c
	}
	h.tx.acquire()
	return c
}

// Release gives up this handle. Once all clones are released the actor
// serves the requests already queued and stops. Release is idempotent.
func (h *Handle) Release() {
	if h.released.Swap(true) {
		return
	}
	h.tx.release()
}

// ID returns the actor's label.
func (h *Handle) ID() string { return h.tx.id }

// Done is closed when the actor has terminated.
func (h *Handle) Done() <-chan struct{} { return h.tx.done }

// Pending returns the number of requests waiting in the queue.
func (h *Handle) Pending() int { return len(h.tx.msgs) }

// GetUniqueID returns the next identifier. It panics with ErrActorKilled if
// the actor can no longer reply, and with ErrHandleReleased if h was
// released.
func (h *Handle) GetUniqueID() uint32 {
	id, err := h.Next(context.Background())
	if err != nil {
		panic(err)
	}
	return id
}

// Next returns the next identifier. It blocks while the request queue is
// full and until the actor replies.
func (h *Handle) Next(ctx context.Context) (uint32, error) {
	msg, reply := newGetUniqueID(ctx)
	mt := msg.MsgType()

	if h.released.Load() {
		h.tx.metrics.RequestFailed(mt, reasonReleased)
		return 0, ErrHandleReleased
	}
	if err := ctx.Err(); err != nil {
		h.tx.metrics.RequestFailed(mt, reasonCanceled)
		return 0, err
	}

	defer h.tx.metrics.RequestDuration(mt).ObserveDuration()

	// A send that loses against done is dropped here; the wait below reports it.
	select {
	case h.tx.msgs <- msg:
	case <-h.tx.done:
	case <-ctx.Done():
		h.tx.metrics.RequestFailed(mt, reasonCanceled)
		return 0, ctx.Err()
	}

	select {
	case id := <-reply:
		return id, nil
	case <-h.tx.done:
		// the actor may have replied right before stopping
		select {
		case id := <-reply:
			return id, nil
		default:
		}
		h.tx.metrics.RequestFailed(mt, reasonKilled)
		return 0, ErrActorKilled
	case <-ctx.Done():
		h.tx.metrics.RequestFailed(mt, reasonCanceled)
		return 0, ctx.Err()
	}
}

// Pause stops the actor from taking requests off the queue until Resume or
// Step. Requests keep queueing up to the capacity.
func (h *Handle) Pause() error { return h.control(ctrlPause) }

// Resume returns the actor to continuous processing.
func (h *Handle) Resume() error { return h.control(ctrlResume) }

// Step lets a paused actor serve exactly one more request.
func (h *Handle) Step() error { return h.control(ctrlStep) }

// control returns once the actor has applied the command.
func (h *Handle) control(k ctrlKind) error {
	if h.released.Load() {
		return ErrHandleReleased
	}

	c := ctrlMsg{kind: k, ack: make(chan struct{})}
	select {
	case h.tx.control <- c:
	case <-h.tx.done:
		return ErrActorKilled
	}

	select {
	case <-c.ack:
		return nil
	case <-h.tx.done:
		return ErrActorKilled
	}
}
