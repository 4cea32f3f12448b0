package transport

import (
	"errors"
	"net"
)

// Transport errors.
var (
	ErrAlreadyOpen = errors.New("connection already open")
	ErrNotOpen     = errors.New("connection not open")
)

// ReceiveFunc is invoked for every datagram received on an open
// connection. The buffer is only valid for the duration of the call.
type ReceiveFunc func(data []byte, from net.Addr)

// Conn is one transport connection to a server. Implementations must
// deliver received datagrams through the callback passed to Open until
// Close is called.
type Conn interface {
	// Open establishes the connection and starts delivering received
	// datagrams to receive.
	Open(receive ReceiveFunc) error

	// Send transmits one datagram.
	Send(data []byte) error

	// Close tears the connection down. Close is idempotent.
	Close() error

	// RemoteAddr returns the server address, or nil before Open.
	RemoteAddr() net.Addr
}

// Dialer creates connections to server addresses. The session layer
// uses it so tests and platform ports can substitute the transport.
type Dialer interface {
	Dial(address string) (Conn, error)
}
