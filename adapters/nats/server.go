package nats

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/codewandler/idgen-go/core/uid"
)

type ServerConfig struct {
	Connect Connector    // Connect is used to create the underlying NATS connection. If nil, ConnectDefault() is used.
	Log     *slog.Logger // Log for diagnostics (optional)
	Subject string       // Subject to serve on, DefaultSubject if empty
	Queue   string       // Queue group (optional); members share the request load
}

// Server answers id requests on a NATS subject from one id actor.
type Server struct {
	connect Connector
	log     *slog.Logger
	subject string
	queue   string
	handle  *uid.Handle
	served  atomic.Bool
	ready   chan struct{}
}

// NewServer creates a server backed by its own clone of h. The clone is
// released when Serve returns.
func NewServer(cfg ServerConfig, h *uid.Handle) *Server {
	if cfg.Connect == nil {
		cfg.Connect = ConnectDefault()
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	return &Server{
		connect: cfg.Connect,
		log:     cfg.Log.With(slog.String("subject", cfg.Subject), slog.String("actor", h.ID())),
		subject: cfg.Subject,
		queue:   cfg.Queue,
		handle:  h.Clone(),
		ready:   make(chan struct{}),
	}
}

// Ready is closed once Serve has an active subscription.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Serve subscribes and answers requests until ctx is done or the actor
// terminates. A server can serve once.
func (s *Server) Serve(ctx context.Context) error {
	defer s.handle.Release()

	if s.served.Swap(true) {
		return ErrServerClosed
	}

	nc, closeNc, err := s.connect()
	if err != nil {
		return fmt.Errorf("nats: connect: %w", err)
	}
	defer closeNc()

	// requests still buffered when ctx ends are answered during drain
	reqCtx := context.WithoutCancel(ctx)

	sub, err := nc.QueueSubscribe(s.subject, s.queue, func(msg *natsgo.Msg) {
		id, err := s.handle.Next(reqCtx)
		if err != nil {
			s.log.Warn("id request failed", slog.Any("error", err))
		}
		if err := msg.Respond(encodeResponse(id, err)); err != nil {
			s.log.Error("failed to publish reply", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("nats: subscribe: %w", err)
	}
	if err := nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("nats: flush: %w", err)
	}

	close(s.ready)
	s.log.Info("serving ids")

	select {
	case <-ctx.Done():
	case <-s.handle.Done():
		s.log.Warn("actor terminated, stop serving")
	}

	if err := sub.Drain(); err != nil {
		s.log.Warn("failed to drain subscription", slog.Any("error", err))
		return nil
	}
	waitDrained(sub, drainTimeout)
	s.log.Info("stopped serving ids")
	return nil
}

const drainTimeout = 2 * time.Second

// waitDrained blocks until sub has delivered its pending messages or timeout
// passes. The connection must stay open until then.
func waitDrained(sub *natsgo.Subscription, timeout time.Duration) {
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(timeout)
	for sub.IsValid() {
		select {
		case <-deadline:
			return
		case <-tick.C:
		}
	}
}
