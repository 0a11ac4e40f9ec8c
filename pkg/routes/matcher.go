package routes

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CompileMatcher compiles a path pattern into an anchored regular expression.
//
// Supported segment forms:
//
//	literal      matched exactly
//	{name}       one segment
//	:name        one segment
//	{name...}    the remainder of the path; last segment only
//	*            the remainder of the path; last segment only
//
// Placeholders compile to named groups. A single trailing slash on the
// request path is tolerated.
func CompileMatcher(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("matcher %q must start with '/'", pattern)
	}

	trimmed := strings.TrimSuffix(pattern, "/")
	if trimmed == "" {
		return regexp.Compile(`^/$`)
	}

	segments := strings.Split(trimmed[1:], "/")
	parts := make([]string, len(segments))

	for i, seg := range segments {
		last := i == len(segments)-1

		switch {
		case seg == "":
			return nil, fmt.Errorf("matcher %q has an empty segment", pattern)

		case seg == "*":
			if !last {
				return nil, fmt.Errorf("matcher %q: wildcard must be the last segment", pattern)
			}
			parts[i] = `(.*)`

		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "...}"):
			if !last {
				return nil, fmt.Errorf("matcher %q: wildcard must be the last segment", pattern)
			}
			name := seg[1 : len(seg)-4]
			if !placeholderName.MatchString(name) {
				return nil, fmt.Errorf("matcher %q: invalid placeholder %q", pattern, seg)
			}
			parts[i] = `(?P<` + name + `>.*)`

		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			name := seg[1 : len(seg)-1]
			if !placeholderName.MatchString(name) {
				return nil, fmt.Errorf("matcher %q: invalid placeholder %q", pattern, seg)
			}
			parts[i] = `(?P<` + name + `>[^/]+)`

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if !placeholderName.MatchString(name) {
				return nil, fmt.Errorf("matcher %q: invalid placeholder %q", pattern, seg)
			}
			parts[i] = `(?P<` + name + `>[^/]+)`

		case strings.ContainsAny(seg, "{}"):
			return nil, fmt.Errorf("matcher %q: malformed segment %q", pattern, seg)

		default:
			parts[i] = regexp.QuoteMeta(seg)
		}
	}

	return regexp.Compile(`^/` + strings.Join(parts, "/") + `/?$`)
}
