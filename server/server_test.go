package server

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"web/http"
	"web/router"
	"web/transport"
	"web/transport/pipe"
)

type ServerTestSuite struct {
	suite.Suite

	transport *pipe.Transport
	addr      pipe.Addr
	lis       transport.ConnListener

	clock  *clock.Mock
	server *Server
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.transport = pipe.NewTransport()
	s.addr = pipe.Addr{Name: "server"}

	lis, err := s.transport.Listen(s.addr)
	s.Require().NoError(err)
	s.lis = lis

	rt := router.New()
	rt.Bind(http.MethodGet, "/posts/{id}", func(req *http.Request, res *http.Response, pattern string) {
		params, _ := router.PathParams(pattern, req.Target)
		res.Body = []byte("Post " + params["id"])
	})
	rt.Bind(http.MethodPost, "/echo", func(req *http.Request, res *http.Response, _ string) {
		res.Body = req.Body
	})
	rt.Bind(http.MethodGet, "/boom", func(*http.Request, *http.Response, string) {
		panic("oops")
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.server = New(s.lis, logger, s.clock, rt, Options{})
	s.server.Start()
}

func (s *ServerTestSuite) TearDownTest() {
	defer goleak.VerifyNone(s.T())
	s.NoError(s.server.Close())
	s.NoError(s.lis.Close())
}

// roundTrip runs one full connection: dial, write the raw request,
// read the raw response.
func (s *ServerTestSuite) roundTrip(raw string) string {
	conn, err := s.transport.Dial(context.Background(), s.addr)
	s.Require().NoError(err)
	defer conn.Close()

	_, err = conn.Write([]byte(raw))
	s.Require().NoError(err)

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	s.Require().NoError(err)

	return string(buf[:n])
}

func (s *ServerTestSuite) TestDispatchedRequest() {
	res := s.roundTrip("GET /posts/42 HTTP/1.1\r\nHost: localhost\r\n\r\n")

	s.True(strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n"), res)
	s.True(strings.HasSuffix(res, "\r\n\r\nPost 42"), res)
}

func (s *ServerTestSuite) TestDateHeader() {
	s.clock.Set(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

	res := s.roundTrip("GET /posts/1 HTTP/1.1\r\n\r\n")

	expected := "Date: " + s.clock.Now().Format(dateFormat) + "\r\n"
	s.Contains(res, expected)
}

func (s *ServerTestSuite) TestRequestBody() {
	res := s.roundTrip("POST /echo HTTP/1.1\r\nHost: a\r\n\r\nhello")

	s.True(strings.HasPrefix(res, "HTTP/1.1 200 OK\r\n"), res)
	s.True(strings.HasSuffix(res, "\r\n\r\nhello"), res)
}

func (s *ServerTestSuite) TestRouteNotFound() {
	res := s.roundTrip("GET /nope HTTP/1.1\r\n\r\n")

	s.True(strings.HasPrefix(res, "HTTP/1.1 404 Not Found\r\n"), res)
}

func (s *ServerTestSuite) TestUnsupportedMethod() {
	res := s.roundTrip("FOO /x HTTP/1.1\r\n\r\n")

	s.True(strings.HasPrefix(res, "HTTP/1.1 400 Bad Request\r\n"), res)
}

func (s *ServerTestSuite) TestMalformedRequestLine() {
	res := s.roundTrip("GET /\r\n\r\n")

	s.True(strings.HasPrefix(res, "HTTP/1.1 400 Bad Request\r\n"), res)
}

func (s *ServerTestSuite) TestHandlerPanicIsContained() {
	res := s.roundTrip("GET /boom HTTP/1.1\r\n\r\n")
	s.True(strings.HasPrefix(res, "HTTP/1.1 500 Internal Server Error\r\n"), res)

	// The server keeps accepting after a handler panic.
	res = s.roundTrip("GET /posts/7 HTTP/1.1\r\n\r\n")
	s.True(strings.HasSuffix(res, "\r\n\r\nPost 7"), res)
}

func (s *ServerTestSuite) TestConnectionsAreIsolated() {
	// A failing request on one connection does not affect the next one.
	res := s.roundTrip("garbage\r\n\r\n")
	s.True(strings.HasPrefix(res, "HTTP/1.1 400 Bad Request\r\n"), res)

	res = s.roundTrip("GET /posts/8 HTTP/1.1\r\n\r\n")
	s.True(strings.HasSuffix(res, "\r\n\r\nPost 8"), res)
}
