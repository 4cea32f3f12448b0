package transport

import (
	"errors"
	"net"
	"sync"
)

// udpReadBufferSize bounds a single received datagram.
const udpReadBufferSize = 1500

// UDPConn is a Conn over a connected UDP socket.
type UDPConn struct {
	mu sync.Mutex

	address string
	conn    *net.UDPConn
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewUDPConn creates an unopened UDP connection to the given
// host:port address.
func NewUDPConn(address string) *UDPConn {
	return &UDPConn{address: address}
}

// Open resolves the address, connects the socket and starts the read
// loop.
func (c *UDPConn) Open(receive ReceiveFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyOpen
	}

	addr, err := net.ResolveUDPAddr("udp", c.address)
	if err != nil {
		return err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return err
	}

	c.conn = conn
	c.done = make(chan struct{})
	c.wg.Add(1)
	go c.readLoop(conn, receive)
	return nil
}

func (c *UDPConn) readLoop(conn *net.UDPConn, receive ReceiveFunc) {
	defer c.wg.Done()

	buf := make([]byte, udpReadBufferSize)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		receive(buf[:n], from)
	}
}

// Send transmits one datagram to the server.
func (c *UDPConn) Send(data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotOpen
	}
	_, err := conn.Write(data)
	return err
}

// Close shuts the socket down and waits for the read loop to exit.
func (c *UDPConn) Close() error {
	c.mu.Lock()
	conn := c.conn
	if conn != nil {
		c.conn = nil
		close(c.done)
	}
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	c.wg.Wait()
	return err
}

// RemoteAddr returns the server address.
func (c *UDPConn) RemoteAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// Verify UDPConn implements Conn.
var _ Conn = (*UDPConn)(nil)

// UDPDialer creates UDP connections.
type UDPDialer struct{}

// Dial returns an unopened UDP connection to address.
func (UDPDialer) Dial(address string) (Conn, error) {
	if address == "" {
		return nil, errors.New("empty server address")
	}
	return NewUDPConn(address), nil
}

// Verify UDPDialer implements Dialer.
var _ Dialer = UDPDialer{}
