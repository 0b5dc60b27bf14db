// Package server accepts connections and serves one buffered request
// per connection: read, parse, dispatch, serialize, write, close.
package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"web/router"
	"web/transport"
)

type Server struct {
	l transport.ConnListener

	closeListener func()
	wg            sync.WaitGroup

	router *router.Router
	logger *slog.Logger
	clock  clock.Clock
	opts   Options
}

// New assembles a server around a pre-populated router. The router
// must not be modified once Start is called; connections read it
// concurrently without locking.
func New(
	l transport.ConnListener,
	logger *slog.Logger,
	clock clock.Clock,
	router *router.Router,
	opts Options,
) *Server {
	return &Server{
		l:      l,
		logger: logger,
		clock:  clock,
		router: router,
		opts:   opts,
	}
}

// Start runs the accept loop in the background, spawning one goroutine
// per accepted connection.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.closeListener = cancel
	go func() {
		for {
			conn, err := s.acceptConn(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					s.logger.Error(
						"unexpected error when accepting connection",
						"error", err.Error(),
					)
				}
				return
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				conn.serve()
			}()
		}
	}()
}

func (s *Server) acceptConn(ctx context.Context) (*conn, error) {
	con, err := s.l.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listening for connection")
	}

	return &conn{
		con:    con,
		router: s.router,
		clock:  s.clock,
		opts:   s.opts,
		logger: s.logger.With("conn", con.RemoteAddr().String()),
	}, nil
}

// Close stops the accept loop and waits for in-flight connections.
func (s *Server) Close() error {
	s.closeListener()
	s.wg.Wait()
	return nil
}
