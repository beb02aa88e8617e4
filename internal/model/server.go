package model

import (
	"context"
	"net"
)

type Server interface {
	Start(listener Listener) error
	Stop(ctx context.Context) error
	Address() string
}

// Listener opens the socket a Server accepts connections on.
type Listener interface {
	Listen(network, addr string) (net.Listener, error)
}
