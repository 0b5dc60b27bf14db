package http

import (
	"strings"

	"github.com/pkg/errors"
)

// Method is a request method. Only the methods below are recognized;
// anything else is a parse error, not a fallback value.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

var ErrUnsupportedMethod = errors.New("unsupported http method")

// ParseMethod folds the token to upper case before matching,
// so "get" parses as [MethodGet].
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(s)); m {
	case MethodGet, MethodPost, MethodPatch, MethodDelete:
		return m, nil
	}

	return "", errors.Wrapf(ErrUnsupportedMethod, "%q", s)
}

func (m Method) String() string { return string(m) }
