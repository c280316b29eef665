package parser

import (
	"fmt"
	"sort"
	"strings"
)

// BuildFunc maps a raw node body onto a typed node.
// It may recurse through the builder for nested fields.
type BuildFunc func(b *Builder, body Raw) (Node, error)

// Schema describes how one variant is built.
type Schema struct {
	// Type is the variant tag stamped on every node the schema builds.
	Type string

	// Build performs the field projection.
	Build BuildFunc
}

// ShapeHint picks between schemas that share a discriminator tag.
type ShapeHint func(body Raw) bool

// HasKey returns a hint matching bodies that carry every one of keys.
func HasKey(keys ...string) ShapeHint {
	return func(body Raw) bool {
		for _, k := range keys {
			if !body.Has(k) {
				return false
			}
		}
		return true
	}
}

type shapedSchema struct {
	hint   ShapeHint
	schema Schema
}

// Registry maps discriminator tags to schemas.
// It is populated once at startup and only read afterwards.
type Registry struct {
	schemas map[string]Schema
	shaped  map[string][]shapedSchema
	aliases map[string]string
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]Schema),
		shaped:  make(map[string][]shapedSchema),
		aliases: make(map[string]string),
	}
}

func (r *Registry) mustBeOpen(tag string) {
	if r.frozen {
		panic(fmt.Sprintf("parser: registry is frozen, cannot register %q", tag))
	}
	if strings.TrimSpace(tag) == "" {
		panic("parser: empty discriminator tag")
	}
}

// Register adds a schema under its own Type. Registering a tag twice panics.
func (r *Registry) Register(s Schema) {
	r.mustBeOpen(s.Type)
	if s.Build == nil {
		panic(fmt.Sprintf("parser: schema %q has no build function", s.Type))
	}
	if _, dup := r.schemas[s.Type]; dup {
		panic(fmt.Sprintf("parser: schema %q registered twice", s.Type))
	}
	r.schemas[s.Type] = s
}

// RegisterShaped adds a schema that applies to tag only when hint matches the body.
// Shaped schemas are tried in registration order before the plain schema for tag.
func (r *Registry) RegisterShaped(tag string, hint ShapeHint, s Schema) {
	r.mustBeOpen(tag)
	if hint == nil || s.Build == nil {
		panic(fmt.Sprintf("parser: shaped schema for %q needs a hint and a build function", tag))
	}
	r.shaped[tag] = append(r.shaped[tag], shapedSchema{hint: hint, schema: s})
}

// Alias resolves tag exactly as target.
func (r *Registry) Alias(tag, target string) {
	r.mustBeOpen(tag)
	r.aliases[tag] = target
}

// Freeze rejects further registrations.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Resolve returns the schema for tag, consulting shape hints against body.
// A false result is not an error: the builder falls back to a passthrough node.
func (r *Registry) Resolve(tag string, body Raw) (Schema, bool) {
	if target, ok := r.aliases[tag]; ok {
		tag = target
	}
	for _, c := range r.shaped[tag] {
		if c.hint(body) {
			return c.schema, true
		}
	}
	s, ok := r.schemas[tag]
	return s, ok
}

// Known reports whether tag resolves to a schema for at least one body shape.
func (r *Registry) Known(tag string) bool {
	if target, ok := r.aliases[tag]; ok {
		tag = target
	}
	_, plain := r.schemas[tag]
	return plain || len(r.shaped[tag]) > 0
}

// Types returns every registered tag in sorted order.
func (r *Registry) Types() []string {
	seen := make(map[string]struct{}, len(r.schemas))
	for t := range r.schemas {
		seen[t] = struct{}{}
	}
	for _, list := range r.shaped {
		for _, c := range list {
			seen[c.schema.Type] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
