// Package uid hands out process-unique, strictly increasing identifiers
// from a single actor.
//
// The counter lives inside one goroutine (the actor) and is never touched by
// anything else. Callers talk to it through a [Handle], which owns the
// sending side of a bounded request queue. Every request carries its own
// one-shot reply channel; the actor processes requests one at a time, in
// queue order, and answers each of them exactly once.
//
// # Creating a Handle
//
//	h := uid.New(uid.Options{})
//	defer h.Release()
//
//	id := h.GetUniqueID() // 1
//	id = h.GetUniqueID()  // 2
//
// Each call to [New] starts a distinct actor with its own counter. Use
// [Handle.Clone] to share one actor between goroutines or components:
//
//	worker := h.Clone()
//	go func() {
//	    defer worker.Release()
//	    _ = worker.GetUniqueID() // same sequence as h
//	}()
//
// # Errors
//
// [Handle.GetUniqueID] treats a dead actor as fatal and panics with
// [ErrActorKilled]. [Handle.Next] returns the same condition as an error and
// additionally honors context cancellation:
//
//	id, err := h.Next(ctx)
//	if errors.Is(err, uid.ErrActorKilled) {
//	    // the actor is gone, no reply will ever arrive
//	}
//
// A request abandoned through its context still consumes an identifier once
// the actor reaches it. That identifier is never handed out again.
//
// # Backpressure
//
// The request queue holds [Options.Capacity] entries (default 8). When it is
// full, callers block in [Handle.Next] until the actor makes room.
//
// # Lifecycle
//
// The actor terminates when its [Options.Context] is cancelled (killed), when
// the last clone has been released (after serving everything already queued),
// or when the identifier space is exhausted. [Handle.Done] is closed once it
// has stopped.
//
// For tests and debugging the actor can be paused, stepped one message at a
// time and resumed:
//
//	_ = h.Pause()
//	_ = h.Step()   // serve exactly one queued request
//	_ = h.Resume()
package uid
