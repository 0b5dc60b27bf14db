package http

import (
	"bytes"
	"strconv"

	"web/http/status"
)

// Response is a response message under construction. It is only ever
// built in process (by a handler or an error constructor), never parsed
// from bytes.
type Response struct {
	Status  status.Status
	Headers Headers

	Body []byte
}

// NewResponse returns the default response handlers start from:
// 200 OK with no headers and a placeholder body.
func NewResponse() *Response {
	return &Response{
		Status:  status.OK,
		Headers: NewHeaders(nil),
		Body:    []byte("Hello, World!"),
	}
}

// ErrorResponse builds a response whose body is the given message.
// It sets no headers; in particular it does not compute Content-Length
// or Content-Type.
func ErrorResponse(s status.Status, msg string) *Response {
	return &Response{
		Status:  s,
		Headers: NewHeaders(nil),
		Body:    []byte(msg),
	}
}

// Bytes serializes the response. Header emission order follows the
// mapping's iteration order and is not stable across entries.
func (r *Response) Bytes() []byte {
	buf := bytes.NewBuffer(nil)

	buf.WriteString(string(VersionHTTP11))
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatUint(uint64(r.Status.Code), 10))
	buf.WriteByte(' ')
	buf.WriteString(r.Status.ReasonPhrase)
	buf.WriteString("\r\n")

	for _, field := range r.Headers.Fields() {
		buf.WriteString(field[0])
		buf.WriteString(": ")
		buf.WriteString(field[1])
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")

	if r.Body != nil {
		buf.Write(r.Body)
	}

	return buf.Bytes()
}
