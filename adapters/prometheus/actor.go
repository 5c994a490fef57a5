package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/idgen-go/core/metrics"
	"github.com/codewandler/idgen-go/core/uid"
)

// actorMetrics implements uid.ActorMetrics using Prometheus.
type actorMetrics struct {
	messageDuration *prometheus.HistogramVec
	messagesTotal   *prometheus.CounterVec
	mailboxDepth    *prometheus.GaugeVec
	lastIssued      *prometheus.GaugeVec
	terminatedTotal *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestFailures *prometheus.CounterVec
}

// NewActorMetrics creates a new Prometheus implementation of ActorMetrics and
// registers its collectors with reg.
func NewActorMetrics(reg prometheus.Registerer) uid.ActorMetrics {
	m := &actorMetrics{
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idgen_actor_message_duration_seconds",
			Help:    "Message handling time in seconds",
			Buckets: defaultBuckets,
		}, []string{"message_type"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idgen_actor_messages_total",
			Help: "Total number of messages processed, by whether the reply reached the caller",
		}, []string{"message_type", "delivered"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "idgen_actor_mailbox_depth",
			Help: "Current request queue depth",
		}, []string{"actor_id"}),

		lastIssued: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "idgen_actor_last_issued_id",
			Help: "Most recently issued identifier",
		}, []string{"actor_id"}),

		terminatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idgen_actor_terminated_total",
			Help: "Total number of terminated actors",
		}, []string{"reason"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idgen_handle_request_duration_seconds",
			Help:    "Caller-side request latency in seconds, including queueing",
			Buckets: defaultBuckets,
		}, []string{"message_type"}),

		requestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idgen_handle_request_failures_total",
			Help: "Total number of failed requests",
		}, []string{"message_type", "reason"}),
	}

	reg.MustRegister(
		m.messageDuration,
		m.messagesTotal,
		m.mailboxDepth,
		m.lastIssued,
		m.terminatedTotal,
		m.requestDuration,
		m.requestFailures,
	)

	return m
}

func (m *actorMetrics) MessageDuration(msgType string) metrics.Timer {
	return newTimer(m.messageDuration.WithLabelValues(msgType))
}

func (m *actorMetrics) MessageProcessed(msgType string, delivered bool) {
	m.messagesTotal.WithLabelValues(msgType, boolToStr(delivered)).Inc()
}

func (m *actorMetrics) MailboxDepth(actorID string, depth int) {
	m.mailboxDepth.WithLabelValues(actorID).Set(float64(depth))
}

func (m *actorMetrics) LastIssued(actorID string, id uint32) {
	m.lastIssued.WithLabelValues(actorID).Set(float64(id))
}

func (m *actorMetrics) ActorTerminated(actorID string, reason string) {
	m.terminatedTotal.WithLabelValues(reason).Inc()
	m.mailboxDepth.DeleteLabelValues(actorID)
	m.lastIssued.DeleteLabelValues(actorID)
}

func (m *actorMetrics) RequestDuration(msgType string) metrics.Timer {
	return newTimer(m.requestDuration.WithLabelValues(msgType))
}

func (m *actorMetrics) RequestFailed(msgType string, reason string) {
	m.requestFailures.WithLabelValues(msgType, reason).Inc()
}

var _ uid.ActorMetrics = (*actorMetrics)(nil)
