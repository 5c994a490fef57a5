package uid

import "github.com/codewandler/idgen-go/core/metrics"

// ActorMetrics defines the instrumentation points of the id actor and its
// handles. All methods are thread-safe.
type ActorMetrics interface {
	// Actor side
	MessageDuration(msgType string) metrics.Timer
	MessageProcessed(msgType string, delivered bool)
	MailboxDepth(actorID string, depth int)
	LastIssued(actorID string, id uint32)
	ActorTerminated(actorID string, reason string)

	// Handle side
	RequestDuration(msgType string) metrics.Timer
	RequestFailed(msgType string, reason string)
}

type nopActorMetrics struct{}

func (nopActorMetrics) MessageDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) MessageProcessed(string, bool)        {}
func (nopActorMetrics) MailboxDepth(string, int)             {}
func (nopActorMetrics) LastIssued(string, uint32)            {}
func (nopActorMetrics) ActorTerminated(string, string)       {}

func (nopActorMetrics) RequestDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) RequestFailed(string, string)         {}

// NopActorMetrics returns a no-op ActorMetrics implementation.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }
