// Package router matches request paths against registered route
// patterns and dispatches to the bound handlers.
package router

import (
	"fmt"

	"github.com/pkg/errors"

	"web/http"
	"web/http/status"
)

// HandlerFunc observes the request and the pattern it matched, and
// mutates the response in place. Handlers run synchronously and must
// express failures by setting an error status and body on the
// response, never by panicking.
type HandlerFunc func(req *http.Request, res *http.Response, pattern string)

type entry struct {
	method  http.Method
	pattern string
	handler HandlerFunc
}

// Router is an ordered dispatch table. Entries are probed in
// registration order, which makes the tie-break among overlapping
// patterns deterministic. It must be fully populated before serving
// starts; concurrent Dispatch calls are then safe without locking.
type Router struct {
	entries []entry
}

func New() *Router { return &Router{} }

// Bind registers handler under (method, pattern). Rebinding an
// existing key replaces the handler in place, keeping its original
// position in the probe order.
func (r *Router) Bind(method http.Method, pattern string, handler HandlerFunc) {
	for i, e := range r.entries {
		if e.method == method && e.pattern == pattern {
			r.entries[i].handler = handler
			return
		}
	}

	r.entries = append(r.entries, entry{method: method, pattern: pattern, handler: handler})
}

var ErrRouteNotFound = errors.New("route not found")

// Dispatch finds the first entry whose method equals the request's
// method and whose pattern matches the request's path, and invokes its
// handler exactly once. No match returns [ErrRouteNotFound] without
// invoking anything.
func (r *Router) Dispatch(req *http.Request, res *http.Response) error {
	path, _ := SplitTarget(req.Target)

	for _, e := range r.entries {
		if e.method != req.Method {
			continue
		}
		if _, ok := Match(e.pattern, path); !ok {
			continue
		}

		invoke(e.handler, req, res, e.pattern)
		return nil
	}

	return errors.Wrapf(ErrRouteNotFound, "%s %s", req.Method, path)
}

// invoke guards dispatch against a handler that panics despite the
// contract: the panic is converted into a 500 response on the spot.
func invoke(h HandlerFunc, req *http.Request, res *http.Response, pattern string) {
	defer func() {
		if e := recover(); e != nil {
			*res = *http.ErrorResponse(
				status.InternalServerError,
				fmt.Sprintf("handler panicked: %v", e),
			)
		}
	}()

	h(req, res, pattern)
}
