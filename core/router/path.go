package router

import (
	"fmt"
	"net/url"
	"strings"
)

// CleanPath turns the raw remainder captured by a trailing wildcard into a
// relative, slash-separated path that is safe to join under a root directory.
//
// Every segment is percent-decoded. Empty and "." segments are dropped and ".."
// removes the previous segment without ever climbing above the start. Segments
// that decode to a hidden name (leading '.'), or that contain '/', '\' or NUL,
// are rejected.
func CleanPath(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	parts := strings.Split(raw, "/")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		seg, err := url.PathUnescape(part)
		if err != nil {
			return "", fmt.Errorf("%w: malformed segment %q", ErrInvalidParam, part)
		}

		switch {
		case seg == "" || seg == ".":
			continue
		case seg == "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		case seg[0] == '.':
			return "", fmt.Errorf("%w: hidden segment %q", ErrInvalidParam, seg)
		case strings.ContainsAny(seg, "/\\\x00"):
			return "", fmt.Errorf("%w: forbidden character in segment %q", ErrInvalidParam, part)
		}

		out = append(out, seg)
	}

	return strings.Join(out, "/"), nil
}

// splitPath splits an escaped request path into raw segments.
// "/" yields no segments.
func splitPath(escaped string) []string {
	escaped = strings.TrimPrefix(escaped, "/")
	if escaped == "" {
		return nil
	}
	return strings.Split(escaped, "/")
}
