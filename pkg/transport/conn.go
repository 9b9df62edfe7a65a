package transport

import (
	"net"
	"sync"
	"time"
)

// Conn is one open connection to the collector. It is not safe for
// concurrent use.
type Conn interface {
	// Send writes one frame, adding the transport's framing.
	Send(frame []byte) error

	// Close releases the socket. Calling it more than once is a no-op.
	Close() error
}

// closer makes Close idempotent: only the first call reaches the socket.
type closer struct {
	once sync.Once
	c    interface{ Close() error }
}

func (c *closer) Close() error {
	var err error
	c.once.Do(func() {
		err = c.c.Close()
	})
	return err
}

type datagramConn struct {
	closer
	pc      *net.UDPConn
	raddr   *net.UDPAddr
	timeout time.Duration
}

func newDatagramConn(pc *net.UDPConn, raddr *net.UDPAddr, timeout time.Duration) *datagramConn {
	return &datagramConn{closer: closer{c: pc}, pc: pc, raddr: raddr, timeout: timeout}
}

// Send submits the frame as a single datagram, unterminated.
func (c *datagramConn) Send(frame []byte) error {
	if c.timeout > 0 {
		if err := c.pc.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return err
		}
	}
	_, err := c.pc.WriteToUDP(frame, c.raddr)
	return err
}

type streamConn struct {
	closer
	nc      net.Conn
	timeout time.Duration
	buf     []byte
}

func newStreamConn(nc net.Conn, timeout time.Duration) *streamConn {
	return &streamConn{closer: closer{c: nc}, nc: nc, timeout: timeout}
}

// Send writes the frame followed by a single "\n".
func (c *streamConn) Send(frame []byte) error {
	c.buf = append(append(c.buf[:0], frame...), '\n')
	if c.timeout > 0 {
		if err := c.nc.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return err
		}
	}
	_, err := c.nc.Write(c.buf)
	return err
}
