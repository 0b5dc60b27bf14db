package http

// HeaderName is a header field name in canonical form. Comparison is
// case-insensitive: every path that stores or looks up a name runs it
// through the same canonical fold first.
type HeaderName string

var wellKnown = make(map[HeaderName]struct{})

func add(s string) HeaderName {
	n := HeaderName(s)
	wellKnown[n] = struct{}{}
	return n
}

// The closed set of well-known header names. Any other name still
// canonicalizes through [CanonicalName] but reports Known() == false.
var (
	HeaderAccept           = add("Accept")
	HeaderAcceptEncoding   = add("Accept-Encoding")
	HeaderAcceptLanguage   = add("Accept-Language")
	HeaderAuthorization    = add("Authorization")
	HeaderConnection       = add("Connection")
	HeaderContentEncoding  = add("Content-Encoding")
	HeaderContentLength    = add("Content-Length")
	HeaderContentType      = add("Content-Type")
	HeaderCookie           = add("Cookie")
	HeaderDate             = add("Date")
	HeaderHost             = add("Host")
	HeaderLocation         = add("Location")
	HeaderServer           = add("Server")
	HeaderSetCookie        = add("Set-Cookie")
	HeaderTransferEncoding = add("Transfer-Encoding")
	HeaderUserAgent        = add("User-Agent")
)

// CanonicalName maps a raw field name to its [HeaderName], folding case
// into the canonical form ("content-TYPE" -> "Content-Type").
func CanonicalName(raw string) HeaderName {
	if isValidToken(raw) {
		raw = toCanonicalFieldName(raw)
	}
	return HeaderName(raw)
}

// Known reports whether the name belongs to the closed set of
// well-known header names.
func (n HeaderName) Known() bool {
	_, ok := wellKnown[CanonicalName(string(n))]
	return ok
}

func (n HeaderName) String() string { return string(n) }

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func isValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		// ALPHA
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			continue
		}
		// DIGIT
		if '0' <= c && c <= '9' {
			continue
		}

		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+',
			'-', '.', '^', '_', '`', '|', '~':
			continue
		}

		return false
	}

	return true
}

// This only works for valid token.
func toCanonicalFieldName(s string) string {
	const capitalDiff = 'a' - 'A'
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			c -= capitalDiff
		} else if !upper && 'A' <= c && c <= 'Z' {
			c += capitalDiff
		}
		b[i] = c
		upper = c == '-'
	}
	return string(b)
}

// Headers is a single-valued header mapping keyed by canonical name.
// Setting an already-present name overwrites its value.
type Headers struct{ underlying map[HeaderName]string }

func NewHeaders(initial map[string]string) Headers {
	clone := make(map[HeaderName]string, len(initial))
	for k, v := range initial {
		clone[CanonicalName(k)] = v
	}

	return Headers{underlying: clone}
}

func (h *Headers) Get(key string) (value string, ok bool) {
	value, ok = h.underlying[CanonicalName(key)]
	return
}

func (h *Headers) Set(key, value string) {
	if h.underlying == nil {
		h.underlying = make(map[HeaderName]string, 1)
	}
	h.underlying[CanonicalName(key)] = value
}

func (h *Headers) Del(key string) {
	delete(h.underlying, CanonicalName(key))
}

func (h *Headers) Len() int { return len(h.underlying) }

// Fields returns a snapshot of the mapping as [name, value] pairs.
// Iteration order is not stable across entries.
func (h *Headers) Fields() (fields [][2]string) {
	fields = make([][2]string, 0, len(h.underlying))
	for k, v := range h.underlying {
		fields = append(fields, [2]string{string(k), v})
	}

	return fields
}
