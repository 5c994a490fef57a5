package uid

import (
	"context"
	"log/slog"
	"math"
)

const (
	reasonKilled    = "killed"
	reasonReleased  = "released"
	reasonExhausted = "exhausted"
	reasonCanceled  = "canceled"
)

// actor owns the counter. Every field below rx is touched only by run.
type actor struct {
	ctx     context.Context
	log     *slog.Logger
	metrics ActorMetrics
	id      string
	rx      receiver
	done    chan struct{}

	nextID  uint32
	paused  bool
	permits int
}

func newActor(rx receiver, opts Options) *actor {
	return &actor{
		ctx:     opts.Context,
		log:     opts.Logger.With(slog.String("actor", opts.ID)),
		metrics: opts.Metrics,
		id:      opts.ID,
		rx:      rx,
		done:    make(chan struct{}),
	}
}

func (a *actor) run() {
	defer close(a.done)

	a.log.Debug("actor started", slog.Int("capacity", cap(a.rx.msgs)))

	reason := a.loop()

	a.metrics.ActorTerminated(a.id, reason)
	a.log.Info("actor terminated",
		slog.String("reason", reason),
		slog.Uint64("last_id", uint64(a.nextID)),
	)
}

func (a *actor) loop() string {
	for {
		a.metrics.MailboxDepth(a.id, len(a.rx.msgs))

		// nil while paused without a step permit, so the select never picks it
		var msgs <-chan Message
		if !a.paused || a.permits > 0 {
			msgs = a.rx.msgs
		}

		select {
		case <-a.ctx.Done():
			return reasonKilled
		case c := <-a.rx.control:
			a.apply(c)
		case <-a.rx.released:
			return a.drain()
		case m := <-msgs:
			if a.paused {
				a.permits--
			}
			if !a.handle(m) {
				return reasonExhausted
			}
		}
	}
}

// drain serves what was accepted before the last sender went away. Pause
// state is ignored at this point.
func (a *actor) drain() string {
	for {
		select {
		case m := <-a.rx.msgs:
			if !a.handle(m) {
				return reasonExhausted
			}
		default:
			return reasonReleased
		}
	}
}

func (a *actor) handle(m Message) bool {
	defer a.metrics.MessageDuration(m.MsgType()).ObserveDuration()

	switch msg := m.(type) {
	case GetUniqueID:
		if a.nextID == math.MaxUint32 {
			a.log.Error("id space exhausted", slog.Uint64("last_id", uint64(a.nextID)))
			return false
		}
		a.nextID++
		a.metrics.LastIssued(a.id, a.nextID)

		delivered := msg.reply(a.nextID)
		if !delivered {
			// caller is gone; the id stays consumed
			a.log.Debug("reply dropped", slog.Uint64("id", uint64(a.nextID)))
		}
		a.metrics.MessageProcessed(msg.MsgType(), delivered)
	default:
		a.log.Warn("unknown message", slog.String("msg_type", m.MsgType()))
	}
	return true
}

func (a *actor) apply(c ctrlMsg) {
	switch c.kind {
	case ctrlPause:
		a.paused = true
		a.permits = 0
	case ctrlResume:
		a.paused = false
		a.permits = 0
	case ctrlStep:
		if a.paused {
			a.permits++
		}
	}
	close(c.ack)
	a.log.Debug("control applied", slog.String("kind", c.kind.String()))
}
