package router

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/landing/core/handler"
)

type route[C handler.Context] struct {
	method  string
	pattern *pattern
	handler handler.HandlerFunc[C]
}

// table holds the registered routes grouped by method, each group kept in
// specificity order so the first match is the only match.
type table[C handler.Context] struct {
	routes map[string][]*route[C]
	order  []*route[C] // registration order, for introspection
}

func newTable[C handler.Context]() *table[C] {
	return &table[C]{routes: make(map[string][]*route[C])}
}

func (t *table[C]) insert(method string, p *pattern, h handler.HandlerFunc[C]) error {
	list := t.routes[method]
	for _, rt := range list {
		if rt.pattern.conflicts(p) {
			return fmt.Errorf("%w: %s '%s' conflicts with '%s'", ErrAmbiguousRoute, method, p.raw, rt.pattern.raw)
		}
	}

	rt := &route[C]{method: method, pattern: p, handler: h}
	list = append(list, rt)
	slices.SortStableFunc(list, func(a, b *route[C]) int { return a.pattern.compare(b.pattern) })
	t.routes[method] = list
	t.order = append(t.order, rt)
	return nil
}

// find selects the route for a request and binds its parameters.
// Matching happens on raw segments; decoding runs only for the selected route.
func (t *table[C]) find(method string, segs []string, rawQuery string) (*route[C], Params, error) {
	query, _ := url.ParseQuery(rawQuery)

	queryMiss := false
	for _, rt := range t.routes[method] {
		if !rt.pattern.matchPath(segs) {
			continue
		}
		if !rt.pattern.matchQuery(query) {
			queryMiss = true
			continue
		}
		params, err := rt.pattern.bind(segs, rawQuery, query)
		return rt, params, err
	}

	if queryMiss {
		return nil, Params{}, ErrMissingQuery
	}
	return nil, Params{}, ErrNotFound
}

// allowed lists the methods that have a route matching the path.
func (t *table[C]) allowed(segs []string) []string {
	var methods []string
	for method, list := range t.routes {
		for _, rt := range list {
			if rt.pattern.matchPath(segs) {
				methods = append(methods, method)
				break
			}
		}
	}
	slices.Sort(methods)
	return methods
}

func (t *table[C]) list() []Route {
	rts := make([]Route, 0, len(t.order))
	for _, rt := range t.order {
		rts = append(rts, Route{Method: rt.method, Pattern: rt.pattern.raw})
	}
	return rts
}

func (p *pattern) matchPath(segs []string) bool {
	for i, s := range p.segments {
		if s.kind == segWildcard {
			return true
		}
		if i >= len(segs) {
			return false
		}
		switch s.kind {
		case segLiteral:
			if segs[i] != s.value {
				decoded, err := url.PathUnescape(segs[i])
				if err != nil || decoded != s.value {
					return false
				}
			}
		case segParam:
			if segs[i] == "" {
				return false
			}
		}
	}
	return len(segs) == len(p.segments)
}

func (p *pattern) matchQuery(query url.Values) bool {
	for _, q := range p.query {
		if _, ok := query[q.key]; !ok {
			return false
		}
	}
	return true
}

func (p *pattern) bind(segs []string, rawQuery string, query url.Values) (Params, error) {
	var params Params

	for i, s := range p.segments {
		switch s.kind {
		case segParam:
			value, err := url.PathUnescape(segs[i])
			if err != nil {
				return Params{}, fmt.Errorf("%w: %s: malformed escape sequence", ErrInvalidParam, s.value)
			}
			if err := checkType(s.typ, value); err != nil {
				return Params{}, fmt.Errorf("%w: %s: %v", ErrInvalidParam, s.value, err)
			}
			params.add(s.value, value, segs[i])

		case segWildcard:
			raw := ""
			if i < len(segs) {
				raw = strings.Join(segs[i:], "/")
			}
			value, err := CleanPath(raw)
			if err != nil {
				return Params{}, fmt.Errorf("%s: %w", s.value, err)
			}
			params.add(s.value, value, raw)
		}
	}

	for _, q := range p.query {
		value := query.Get(q.key)
		raw, ok := rawQueryValue(rawQuery, q.key)
		if !ok {
			return Params{}, fmt.Errorf("%w: %s: malformed escape sequence", ErrInvalidParam, q.key)
		}
		if err := checkType(q.typ, value); err != nil {
			return Params{}, fmt.Errorf("%w: %s: %v", ErrInvalidParam, q.key, err)
		}
		params.add(q.key, value, raw)
	}

	return params, nil
}

func checkType(typ paramType, value string) error {
	switch typ {
	case typeInt:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
	case typeUint:
		if _, err := strconv.ParseUint(value, 10, 64); err != nil {
			return fmt.Errorf("%q is not an unsigned integer", value)
		}
	}
	return nil
}

// rawQueryValue returns the first undecoded value for key. The boolean is false
// when the value exists only in a form url.ParseQuery rejected.
func rawQueryValue(rawQuery, key string) (string, bool) {
	for pair := range strings.SplitSeq(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		dk, err := url.QueryUnescape(k)
		if err != nil || dk != key {
			continue
		}
		if _, err := url.QueryUnescape(v); err != nil {
			return "", false
		}
		return v, true
	}
	return "", false
}
