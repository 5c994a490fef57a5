package uid

import (
	"context"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultCapacity is the request queue size used when Options.Capacity is unset.
const DefaultCapacity = 8

type Options struct {
	// Capacity of the request queue. Values <= 0 select DefaultCapacity.
	Capacity int
	// Context bounds the actor's lifetime. Cancelling it kills the actor.
	Context context.Context
	Logger  *slog.Logger
	Metrics ActorMetrics
	// ID labels the actor in logs and metrics. Defaults to a random nanoid.
	ID string
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = NopActorMetrics()
	}
	if o.ID == "" {
		o.ID = gonanoid.Must(8)
	}
	return o
}
