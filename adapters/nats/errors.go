package nats

import "errors"

var (
	// ErrServerClosed is returned by Serve on a server that already served.
	ErrServerClosed = errors.New("server closed")
	ErrClientClosed = errors.New("client closed")
)
