package uid

import "context"

type msgTyper interface{ MsgType() string }

// Message is a request placed on the actor's queue. The variants are defined
// in this package only.
type Message interface {
	msgTyper
	isMessage()
}

// GetUniqueID asks the actor for the next identifier. ReplyTo has capacity 1
// and is written at most once.
type GetUniqueID struct {
	ctx     context.Context
	ReplyTo chan<- uint32
}

func newGetUniqueID(ctx context.Context) (GetUniqueID, <-chan uint32) {
	reply := make(chan uint32, 1)
	return GetUniqueID{ctx: ctx, ReplyTo: reply}, reply
}

func (GetUniqueID) MsgType() string { return "get_unique_id" }
func (GetUniqueID) isMessage()      {}

// reply delivers id unless the caller already gave up. It never blocks.
func (m GetUniqueID) reply(id uint32) bool {
	if m.ctx != nil && m.ctx.Err() != nil {
		return false
	}
	select {
	case m.ReplyTo <- id:
		return true
	default:
		return false
	}
}

var _ Message = GetUniqueID{}
