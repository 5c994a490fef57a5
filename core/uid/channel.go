package uid

import "sync/atomic"

// ---- control messages (internal) ----

type ctrlKind int

const (
	ctrlPause ctrlKind = iota
	ctrlResume
	ctrlStep
)

func (k ctrlKind) String() string {
	switch k {
	case ctrlPause:
		return "pause"
	case ctrlResume:
		return "resume"
	case ctrlStep:
		return "step"
	default:
		return "unknown"
	}
}

type ctrlMsg struct {
	kind ctrlKind
	ack  chan struct{}
}

// sender is the producing end of a request queue, shared by every clone of
// a Handle. refs counts the clones that have not been released yet.
type sender struct {
	msgs     chan<- Message
	control  chan<- ctrlMsg
	released chan struct{}
	refs     atomic.Int64
	done     <-chan struct{}

	id      string
	metrics ActorMetrics
}

// receiver is the consuming end, owned by exactly one actor.
type receiver struct {
	msgs    <-chan Message
	control <-chan ctrlMsg
	// released is closed once no sender is left.
	released <-chan struct{}
}

func newChannel(capacity int) (*sender, receiver) {
	msgs := make(chan Message, capacity)
	control := make(chan ctrlMsg)
	released := make(chan struct{})

	tx := &sender{
		msgs:     msgs,
		control:  control,
		released: released,
	}
	tx.refs.Store(1)

	return tx, receiver{
		msgs:     msgs,
		control:  control,
		released: released,
	}
}

func (s *sender) acquire() { s.refs.Add(1) }

func (s *sender) release() {
	if s.refs.Add(-1) == 0 {
		close(s.released)
	}
}
