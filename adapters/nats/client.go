package nats

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

type ClientConfig struct {
	Connect Connector     // Connect is used to create the underlying NATS connection. If nil, ConnectDefault() is used.
	Subject string        // Subject the server listens on, DefaultSubject if empty
	Timeout time.Duration // Timeout applied when the request context has no deadline (default 5s)
}

// Client requests ids from a remote Server.
type Client struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	subject string
	timeout time.Duration
	closed  atomic.Bool
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Connect == nil {
		cfg.Connect = ConnectDefault()
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	nc, closeNc, err := cfg.Connect()
	if err != nil {
		return nil, fmt.Errorf("nats: connect: %w", err)
	}

	return &Client{nc: nc, closeNc: closeNc, subject: cfg.Subject, timeout: cfg.Timeout}, nil
}

// Next requests the next id. Without a running server the request fails
// with nats.ErrNoResponders.
func (c *Client) Next(ctx context.Context) (uint32, error) {
	if c.closed.Load() {
		return 0, ErrClientClosed
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	msg, err := c.nc.RequestWithContext(ctx, c.subject, nil)
	if err != nil {
		return 0, fmt.Errorf("nats: request: %w", err)
	}
	return decodeResponse(msg.Data)
}

func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return ErrClientClosed
	}
	c.closeNc()
	return nil
}
