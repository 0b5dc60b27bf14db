package http

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Request is a parsed request message. Body is nil when the message has
// no body; an empty body normalizes to nil.
type Request struct {
	Method  Method
	Target  string // raw target: path plus optional "?query"
	Version Version
	Headers Headers

	Body []byte
}

var ErrMalformedRequestLine = errors.New("malformed request line")

// ParseRequest parses one fully buffered request. It is a pure
// function: the same bytes always yield the same request or the same
// error. Both CRLF and bare-LF line terminators are accepted.
func ParseRequest(b []byte) (Request, error) {
	br := bufio.NewReader(bytes.NewReader(b))

	line, err := readLine(br)
	if err != nil {
		return Request{}, ErrMalformedRequestLine
	}

	req, err := parseRequestLine(line)
	if err != nil {
		return Request{}, errors.Wrap(err, "parsing request line")
	}

	req.Headers = parseHeaders(br)

	body, err := io.ReadAll(br)
	if err != nil {
		return Request{}, errors.Wrap(err, "reading body")
	}
	if len(body) > 0 {
		req.Body = body
	}

	return req, nil
}

func parseRequestLine(line string) (Request, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return Request{}, ErrMalformedRequestLine
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return Request{}, err
	}

	version, err := ParseVersion(parts[2])
	if err != nil {
		return Request{}, err
	}

	return Request{
		Method:  method,
		Target:  parts[1],
		Version: version,
		Headers: NewHeaders(nil),
	}, nil
}

// parseHeaders consumes field lines until a blank line or end of input.
// A line without a colon is skipped; on duplicate names the last line
// wins. Header parsing is total: it never fails on any name.
func parseHeaders(br *bufio.Reader) Headers {
	headers := NewHeaders(nil)
	for {
		line, err := readLine(br)
		if err != nil || strings.TrimSpace(line) == "" {
			break
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		headers.Set(name, strings.TrimSpace(value))
	}

	return headers
}

// readLine reads up to the next LF, trimming the terminator. The final
// line of the input may be unterminated.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" {
		return "", io.EOF
	}

	return strings.TrimRight(line, "\r\n"), nil
}
