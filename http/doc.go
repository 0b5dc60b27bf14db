// Package http implements a minimal HTTP/1.1 message layer: it parses
// one fully buffered request into a structured value and serializes a
// structured response back into bytes.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
