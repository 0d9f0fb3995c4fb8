package router

import (
	"fmt"
	"slices"
	"strings"
)

type segKind uint8

const (
	segLiteral  segKind = iota // /earth
	segParam                   // /{continent}, /{id:uint}
	segWildcard                // /{path...}
)

type paramType uint8

const (
	typeString paramType = iota
	typeInt
	typeUint
	typePath
)

var paramTypes = map[string]paramType{
	"":       typeString,
	"string": typeString,
	"int":    typeInt,
	"uint":   typeUint,
}

type segment struct {
	kind  segKind
	value string // literal text or parameter key
	typ   paramType
}

type queryParam struct {
	key string
	typ paramType
}

// pattern is a compiled route pattern.
type pattern struct {
	raw      string
	segments []segment
	query    []queryParam // sorted by key
}

// parsePattern compiles a route pattern such as
//
//	/earth/{continent}
//	/page/{path...}
//	/{id:uint}
//	/auth?{username}&{password}
func parsePattern(raw string) (*pattern, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("%w: '%s' must start with '/'", ErrInvalidPattern, raw)
	}

	path, query, hasQuery := strings.Cut(raw, "?")
	p := &pattern{raw: raw}
	seen := map[string]bool{}

	if path != "/" {
		parts := strings.Split(path[1:], "/")
		for i, part := range parts {
			seg, err := parseSegment(raw, part)
			if err != nil {
				return nil, err
			}
			if seg.kind == segWildcard && i != len(parts)-1 {
				return nil, fmt.Errorf("%w: '%s'", ErrWildcardPosition, raw)
			}
			if seg.kind != segLiteral {
				if seen[seg.value] {
					return nil, fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, raw, seg.value)
				}
				seen[seg.value] = true
			}
			p.segments = append(p.segments, seg)
		}
	}

	if hasQuery {
		for part := range strings.SplitSeq(query, "&") {
			seg, err := parseSegment(raw, part)
			if err != nil {
				return nil, err
			}
			if seg.kind != segParam {
				return nil, fmt.Errorf("%w: '%s' query part '%s' must be a named parameter", ErrInvalidPattern, raw, part)
			}
			if seen[seg.value] {
				return nil, fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, raw, seg.value)
			}
			seen[seg.value] = true
			p.query = append(p.query, queryParam{key: seg.value, typ: seg.typ})
		}
		slices.SortFunc(p.query, func(a, b queryParam) int { return strings.Compare(a.key, b.key) })
	}

	return p, nil
}

func parseSegment(raw, part string) (segment, error) {
	if part == "" {
		return segment{}, fmt.Errorf("%w: '%s' has an empty segment", ErrInvalidPattern, raw)
	}

	if part[0] != '{' || part[len(part)-1] != '}' {
		if strings.ContainsAny(part, "{}") {
			return segment{}, fmt.Errorf("%w: '%s' mixes literal text and parameters in '%s'", ErrInvalidPattern, raw, part)
		}
		return segment{kind: segLiteral, value: part}, nil
	}

	inner := part[1 : len(part)-1]
	if key, ok := strings.CutSuffix(inner, "..."); ok {
		if !validKey(key) {
			return segment{}, fmt.Errorf("%w: '%s' has invalid parameter name '%s'", ErrInvalidPattern, raw, key)
		}
		return segment{kind: segWildcard, value: key, typ: typePath}, nil
	}

	key, typName, _ := strings.Cut(inner, ":")
	if !validKey(key) {
		return segment{}, fmt.Errorf("%w: '%s' has invalid parameter name '%s'", ErrInvalidPattern, raw, key)
	}
	typ, ok := paramTypes[typName]
	if !ok {
		return segment{}, fmt.Errorf("%w: '%s' in '%s'", ErrInvalidParamType, typName, raw)
	}
	return segment{kind: segParam, value: key, typ: typ}, nil
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		if c != '_' && c != '-' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// conflicts reports whether p and o accept exactly the same requests.
// Routes that merely overlap are ordered by specificity instead.
func (p *pattern) conflicts(o *pattern) bool {
	if len(p.segments) != len(o.segments) || len(p.query) != len(o.query) {
		return false
	}
	for i, s := range p.segments {
		t := o.segments[i]
		if s.kind != t.kind || (s.kind == segLiteral && s.value != t.value) {
			return false
		}
	}
	for i, q := range p.query {
		if q.key != o.query[i].key {
			return false
		}
	}
	return true
}

// compare orders patterns from most to least specific: position by position a
// literal beats a parameter and a parameter beats a wildcard, shorter patterns
// come first on a tie, and then routes declaring more query keys.
func (p *pattern) compare(o *pattern) int {
	n := min(len(p.segments), len(o.segments))
	for i := range n {
		if d := int(p.segments[i].kind) - int(o.segments[i].kind); d != 0 {
			return d
		}
	}
	if d := len(p.segments) - len(o.segments); d != 0 {
		return d
	}
	return len(o.query) - len(p.query)
}
