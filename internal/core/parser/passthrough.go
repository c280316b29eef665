package parser

import (
	"strconv"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Passthrough is the node built for a tag the registry does not know.
// It keeps the raw fields for callers that only need structural presence, and
// still builds child nodes for fields holding discriminated objects so that
// index queries see through it.
type Passthrough struct {
	Base
	fields   Raw
	keys     []string
	byKey    map[string][]Node
	children []Node
}

// passthrough visits keys in sorted order because decoded JSON objects do not
// keep their key order.
func (b *Builder) passthrough(tag string, body Raw) (Node, error) {
	p := &Passthrough{
		fields: body,
		keys:   body.Keys(),
		byKey:  make(map[string][]Node),
	}
	for _, k := range p.keys {
		nodes, err := b.discriminatedIn(body[k])
		if err != nil {
			return nil, domain.WithPathPrefix(err, k)
		}
		if len(nodes) > 0 {
			p.byKey[k] = nodes
			p.children = append(p.children, nodes...)
		}
	}
	if err := stamp(p, tag, b.origin); err != nil {
		return nil, err
	}
	return p, nil
}

// discriminatedIn builds v when it is a discriminated object, or its
// discriminated elements when it is an array. Anything else is left raw.
func (b *Builder) discriminatedIn(v any) ([]Node, error) {
	switch t := v.(type) {
	case []any:
		var out []Node
		for i, item := range t {
			if !b.Discriminated(item) {
				continue
			}
			n, err := b.BuildValue(item)
			if err != nil {
				return nil, domain.WithPathPrefix(err, "["+strconv.Itoa(i)+"]")
			}
			out = append(out, n)
		}
		return out, nil
	default:
		if !b.Discriminated(v) {
			return nil, nil
		}
		n, err := b.BuildValue(v)
		if err != nil {
			return nil, err
		}
		return []Node{n}, nil
	}
}

// Children returns the nodes built from discriminated fields, by key order.
func (p *Passthrough) Children() []Node {
	return p.children
}

// Keys returns the raw field names in sorted order.
func (p *Passthrough) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Has reports whether the raw field key is present.
func (p *Passthrough) Has(key string) bool {
	return p.fields.Has(key)
}

// Get returns the raw value of key. The value must not be modified.
func (p *Passthrough) Get(key string) any {
	return p.fields.Get(key)
}

// String returns the raw field key as a string.
func (p *Passthrough) String(key string) string {
	return p.fields.String(key)
}

// Raw returns the raw body. It must not be modified.
func (p *Passthrough) Raw() Raw {
	return p.fields
}

// Child returns the first node built from field key.
func (p *Passthrough) Child(key string) (Node, bool) {
	nodes := p.byKey[key]
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// Field returns every node built from field key.
func (p *Passthrough) Field(key string) Sequence {
	return sequenceOf(p.byKey[key])
}

// IsPassthrough reports whether n was built without a registered schema.
func IsPassthrough(n Node) bool {
	_, ok := n.(*Passthrough)
	return ok
}
