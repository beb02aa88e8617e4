package server

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPListener opens plain TCP listeners. TLS is terminated in front of the service.
type TCPListener struct {
	keepAlive time.Duration
}

// NewTCPListener creates a TCPListener. A zero keepAlive uses the OS default.
func NewTCPListener(keepAlive time.Duration) *TCPListener {
	return &TCPListener{keepAlive: keepAlive}
}

// Listen announces on addr.
func (l *TCPListener) Listen(network, addr string) (net.Listener, error) {
	lc := net.ListenConfig{KeepAlive: l.keepAlive}
	ln, err := lc.Listen(context.Background(), network, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
