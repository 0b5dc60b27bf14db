package http

import (
	"strings"

	"github.com/pkg/errors"
)

// Version is a protocol version label. It is recognized on the request
// line but carries no version-specific framing behavior.
type Version string

const (
	VersionHTTP11 Version = "HTTP/1.1"
	VersionHTTP2  Version = "HTTP/2"
	VersionHTTP3  Version = "HTTP/3"
)

var ErrUnsupportedVersion = errors.New("unsupported http version")

// ParseVersion matches the version token case-insensitively after
// trimming surrounding whitespace.
func ParseVersion(s string) (Version, error) {
	switch v := Version(strings.ToUpper(strings.TrimSpace(s))); v {
	case VersionHTTP11, VersionHTTP2, VersionHTTP3:
		return v, nil
	}

	return "", errors.Wrapf(ErrUnsupportedVersion, "%q", s)
}

func (v Version) String() string { return string(v) }
