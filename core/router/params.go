package router

// Params holds the parameters bound by a matched route, in declaration order.
// Values are decoded; raw values are kept as they appeared in the URL.
type Params struct {
	keys   []string
	values []string
	raw    []string
}

// Get returns the decoded value for key, or "" when the route declares no such parameter.
func (p Params) Get(key string) string {
	for i, k := range p.keys {
		if k == key {
			return p.values[i]
		}
	}
	return ""
}

// Raw returns the undecoded value for key.
func (p Params) Raw(key string) string {
	for i, k := range p.keys {
		if k == key {
			return p.raw[i]
		}
	}
	return ""
}

// Keys returns parameter names in declaration order.
func (p Params) Keys() []string {
	return p.keys
}

// Len returns the number of bound parameters.
func (p Params) Len() int {
	return len(p.keys)
}

func (p *Params) add(key, value, raw string) {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	p.raw = append(p.raw, raw)
}
