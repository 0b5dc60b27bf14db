// Package pipe provides a synchronous in-memory transport for tests.
package pipe

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/pkg/errors"

	"web/transport"
)

type Addr struct{ Name string }

var _ transport.Addr = Addr{}

func (a Addr) Network() string { return "pipe" }
func (a Addr) String() string  { return a.Name }

type conn struct {
	inner net.Conn

	local, remote Addr
}

var _ transport.Conn = (*conn)(nil)

// NewPair returns both ends of a synchronous pipe connection.
func NewPair(name1, name2 string) (c1, c2 transport.Conn) {
	p1, p2 := net.Pipe()

	a1, a2 := Addr{Name: name1}, Addr{Name: name2}
	c1 = &conn{inner: p1, local: a1, remote: a2}
	c2 = &conn{inner: p2, local: a2, remote: a1}
	return
}

func (c *conn) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	return n, wrapConnErr(err)
}

func (c *conn) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	return n, wrapConnErr(err)
}

func (c *conn) Close() error { return wrapConnErr(c.inner.Close()) }

func (c *conn) LocalAddr() transport.Addr  { return c.local }
func (c *conn) RemoteAddr() transport.Addr { return c.remote }

func wrapConnErr(err error) error {
	if errors.Is(err, io.ErrClosedPipe) {
		return transport.ErrConnClosed
	}
	return err
}

type dialRequest struct {
	conn     transport.Conn
	accepted chan struct{}
}

// Transport is an in-memory network: listeners register under an Addr
// and dialers connect to them.
type Transport struct {
	listeners map[Addr]*listener

	mu sync.Mutex
}

func NewTransport() *Transport {
	return &Transport{listeners: make(map[Addr]*listener)}
}

var _ transport.ConnDialer = (*Transport)(nil)

func (t *Transport) Dial(ctx context.Context, addr transport.Addr) (transport.Conn, error) {
	t.mu.Lock()
	l, ok := t.listeners[addr.(Addr)]
	t.mu.Unlock()

	if !ok {
		return nil, transport.ErrNetUnreachable
	}

	c1, c2 := NewPair("dialer", addr.String())

	req := dialRequest{
		conn:     c2,
		accepted: make(chan struct{}, 1),
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrConnRefused
	case l.requests <- req:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case _, accepted := <-req.accepted:
		if !accepted {
			return nil, transport.ErrConnRefused
		}
	}

	return c1, nil
}

func (t *Transport) Listen(addr Addr) (*listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listeners[addr]; ok {
		return nil, transport.ErrAddrAlreadyInUse
	}

	l := &listener{
		addr:      addr,
		transport: t,
		requests:  make(chan dialRequest),
		closed:    make(chan struct{}),
	}
	t.listeners[addr] = l

	return l, nil
}

type listener struct {
	addr Addr

	transport *Transport

	requests chan dialRequest
	closed   chan struct{}

	mu sync.Mutex
}

var _ transport.ConnListener = (*listener)(nil)

func (l *listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrConnListenerClosed
	case request := <-l.requests:
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case request.accepted <- struct{}{}:
		}

		return request.conn, nil
	}
}

func (l *listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.closed:
		return transport.ErrConnListenerClosed
	default:
	}

	close(l.closed)

	l.transport.mu.Lock()
	delete(l.transport.listeners, l.addr)
	l.transport.mu.Unlock()

	return nil
}
