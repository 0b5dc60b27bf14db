package router

import "strings"

// Params holds path parameters captured from placeholder segments.
type Params map[string]string

// Match compares a route pattern against a request path. Both sides
// are stripped of leading and trailing slashes and split on "/"; the
// segment counts must be equal. A "{name}" segment captures the
// corresponding path segment verbatim; a literal segment must be
// byte-equal. Root matches root with an empty, non-nil Params.
func Match(pattern, path string) (Params, bool) {
	patSegs := splitSegments(pattern)
	pathSegs := splitSegments(path)

	if len(patSegs) != len(pathSegs) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range patSegs {
		if name, ok := placeholder(seg); ok {
			if pathSegs[i] == "" {
				return nil, false
			}
			params[name] = pathSegs[i]
			continue
		}

		if seg != pathSegs[i] {
			return nil, false
		}
	}

	return params, true
}

func splitSegments(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

func placeholder(seg string) (name string, ok bool) {
	if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// SplitTarget splits a request target into its path and the raw query
// after the first "?", if any.
func SplitTarget(target string) (path, rawQuery string) {
	path, rawQuery, _ = strings.Cut(target, "?")
	return
}

// ParseQuery parses the query portion of a request target. Pieces
// without "=" are dropped; on duplicate keys the later one wins.
func ParseQuery(target string) map[string]string {
	query := make(map[string]string)

	_, raw := SplitTarget(target)
	for _, piece := range strings.Split(raw, "&") {
		key, value, found := strings.Cut(piece, "=")
		if !found {
			continue
		}
		query[key] = value
	}

	return query
}

// PathParams re-derives the path parameters of a target from the
// pattern it matched, ignoring any query portion.
func PathParams(pattern, target string) (Params, bool) {
	path, _ := SplitTarget(target)
	return Match(pattern, path)
}
