// Package tcp adapts OS TCP sockets to the transport interfaces.
package tcp

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"

	"web/transport"
)

type Addr struct{ inner net.Addr }

var _ transport.Addr = Addr{}

func (a Addr) Network() string { return a.inner.Network() }
func (a Addr) String() string  { return a.inner.String() }

type Conn struct{ inner net.Conn }

var _ transport.Conn = (*Conn)(nil)

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	return n, wrapConnErr(err)
}

func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	return n, wrapConnErr(err)
}

func (c *Conn) Close() error { return wrapConnErr(c.inner.Close()) }

func (c *Conn) LocalAddr() transport.Addr  { return Addr{inner: c.inner.LocalAddr()} }
func (c *Conn) RemoteAddr() transport.Addr { return Addr{inner: c.inner.RemoteAddr()} }

func wrapConnErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, net.ErrClosed) {
		return transport.ErrConnClosed
	}
	return err
}

type Listener struct{ inner *net.TCPListener }

var _ transport.ConnListener = (*Listener)(nil)

func Listen(addr string) (*Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %q", addr)
	}

	return &Listener{inner: l.(*net.TCPListener)}, nil
}

func (l *Listener) Addr() transport.Addr { return Addr{inner: l.inner.Addr()} }

// Accept blocks until a connection arrives or ctx is done. Cancelling
// ctx forces the pending accept to return by expiring its deadline.
func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.inner.SetDeadline(time.Now())
		case <-done:
		}
	}()

	conn, err := l.inner.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListenerClosed
		}
		return nil, errors.Wrap(err, "accepting connection")
	}

	// A cancel may have raced the accept and left a stale deadline.
	l.inner.SetDeadline(time.Time{})

	return &Conn{inner: conn}, nil
}

func (l *Listener) Close() error {
	if err := l.inner.Close(); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return transport.ErrConnListenerClosed
		}
		return err
	}
	return nil
}

// Dial connects to a TCP endpoint. It exists for tests and tools; the
// server only ever accepts.
func Dial(ctx context.Context, addr string) (transport.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %q", addr)
	}

	return &Conn{inner: conn}, nil
}
