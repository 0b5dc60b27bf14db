package server

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"web/http"
	"web/http/status"
	"web/router"
	"web/transport"
)

// Preferred format: IMF-fixdate
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.7
const dateFormat = time.RFC1123

type conn struct {
	con transport.Conn

	router *router.Router
	clock  clock.Clock
	opts   Options

	logger *slog.Logger
}

// serve handles the connection's single request. Failures here are
// fatal to this connection only; they are logged and never reach the
// accept loop or other connections.
func (c *conn) serve() {
	defer func() {
		if err := c.con.Close(); err != nil && !errors.Is(err, transport.ErrConnClosed) {
			c.logger.Error("error when closing connection", "error", err.Error())
		}
	}()

	buf := make([]byte, c.opts.readBufferSize())
	n, err := c.con.Read(buf)
	if err != nil {
		c.logger.Error("reading request", "error", err.Error())
		return
	}

	res := c.respond(buf[:n])

	// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-6.6.1-6
	res.Headers.Set("Date", c.clock.Now().Format(dateFormat))

	if _, err := c.con.Write(res.Bytes()); err != nil {
		c.logger.Error("writing response", "error", err.Error())
	}
}

func (c *conn) respond(raw []byte) *http.Response {
	req, err := http.ParseRequest(raw)
	if err != nil {
		se := toStatusError(err)
		c.logger.Info("rejecting malformed request", "error", err.Error())
		return errorResponse(se)
	}

	res := http.NewResponse()
	if err := c.router.Dispatch(&req, res); err != nil {
		se := toStatusError(err)
		c.logger.Info("request not dispatched",
			"method", req.Method.String(),
			"target", req.Target,
			"status", se.Status.Code,
		)
		return errorResponse(se)
	}

	return res
}

// toStatusError classifies a parse or dispatch failure into the status
// it is reported as. Parse failures are the client's fault (400);
// an unmatched route is 404. Anything else is a server-side bug.
func toStatusError(err error) status.Error {
	switch {
	case errors.Is(err, router.ErrRouteNotFound):
		return status.NewError(err, status.NotFound)
	case errors.Is(err, http.ErrMalformedRequestLine),
		errors.Is(err, http.ErrUnsupportedMethod),
		errors.Is(err, http.ErrUnsupportedVersion):
		return status.NewError(err, status.BadRequest)
	}

	return status.NewError(err, status.InternalServerError)
}

func errorResponse(se status.Error) *http.Response {
	msg := ""
	if se.Cause() != nil {
		msg = se.Cause().Error()
	}

	return http.ErrorResponse(se.Status, msg)
}
