package uid

import "errors"

var (
	// ErrActorKilled is returned (or raised by GetUniqueID) when the actor
	// terminated before replying.
	ErrActorKilled = errors.New("actor has been killed")
	// ErrHandleReleased is returned when a released handle is used.
	ErrHandleReleased = errors.New("handle released")
)
