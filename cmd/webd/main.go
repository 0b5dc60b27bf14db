// Command webd runs a demo server on a configurable port.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"

	"web/http"
	"web/router"
	"web/server"
	"web/transport/tcp"
)

func main() {
	port := flag.Int("port", 3000, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rt := router.New()
	rt.Bind(http.MethodGet, "/test", func(req *http.Request, res *http.Response, _ string) {
		logger.Info("request received", "target", req.Target)
	})
	rt.Bind(http.MethodGet, "/posts/{id}", func(req *http.Request, res *http.Response, pattern string) {
		params, _ := router.PathParams(pattern, req.Target)
		res.Body = []byte("Post " + params["id"])
	})
	rt.Bind(http.MethodGet, "/users", func(req *http.Request, res *http.Response, _ string) {
		query := router.ParseQuery(req.Target)
		name, ok := query["name"]
		if !ok {
			name = "stranger"
		}
		res.Body = []byte("Hello, " + name)
	})

	lis, err := tcp.Listen(fmt.Sprintf("127.0.0.1:%d", *port))
	if err != nil {
		logger.Error("failed to listen", "error", err.Error())
		os.Exit(1)
	}

	srv := server.New(lis, logger, clock.New(), rt, server.Options{})
	srv.Start()
	logger.Info("server running", "addr", "http://"+lis.Addr().String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := srv.Close(); err != nil {
		logger.Error("error when closing server", "error", err.Error())
	}
	if err := lis.Close(); err != nil {
		logger.Error("error when closing listener", "error", err.Error())
	}
}
