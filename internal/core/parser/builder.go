package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/logger"
)

var log = logger.Component("parser")

// Builder turns raw documents into typed node graphs.
// It holds no state besides its registry and options, so one builder may be
// shared by any number of goroutines.
type Builder struct {
	registry *Registry
	disc     Discriminator
	origin   PageRef
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDiscriminator sets how variant tags are read off raw objects.
func WithDiscriminator(d Discriminator) BuilderOption {
	return func(b *Builder) {
		b.disc = d
	}
}

// WithOrigin stamps every built node with ref.
func WithOrigin(ref PageRef) BuilderOption {
	return func(b *Builder) {
		b.origin = ref
	}
}

// NewBuilder creates a builder over registry.
func NewBuilder(registry *Registry, opts ...BuilderOption) *Builder {
	b := &Builder{
		registry: registry,
		disc:     DefaultDiscriminator,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ForPage returns a copy of the builder that stamps nodes with ref.
func (b *Builder) ForPage(ref PageRef) *Builder {
	c := *b
	c.origin = ref
	return &c
}

// Registry returns the registry the builder resolves tags against.
func (b *Builder) Registry() *Registry {
	return b.registry
}

// Discriminator returns the tag reading strategy.
func (b *Builder) Discriminator() Discriminator {
	return b.disc
}

// Origin returns the page ref stamped on built nodes.
func (b *Builder) Origin() PageRef {
	return b.origin
}

// Discriminated reports whether v is an object carrying a variant tag.
func (b *Builder) Discriminated(v any) bool {
	raw, ok := AsRaw(v)
	if !ok {
		return false
	}
	_, _, ok = b.disc.Discriminate(raw)
	return ok
}

// Build constructs the node for one raw compound object, recursing into every
// declared child field. Unknown tags produce a Passthrough node.
func (b *Builder) Build(raw Raw) (Node, error) {
	if raw == nil {
		return nil, domain.Malformed("expected an object, got nothing")
	}
	tag, body, ok := b.disc.Discriminate(raw)
	if !ok {
		return nil, domain.Malformed("object has no discriminator")
	}

	schema, ok := b.registry.Resolve(tag, body)
	if !ok {
		log.Debug("unknown node type %s", tag)
		return b.passthrough(tag, body)
	}

	n, err := schema.Build(b, body)
	if err != nil {
		return nil, err
	}
	if IsNil(n) {
		return nil, fmt.Errorf("schema %s returned no node", schema.Type)
	}
	if err := stamp(n, schema.Type, b.origin); err != nil {
		return nil, err
	}
	return n, nil
}

// BuildValue builds v, which must be an object.
func (b *Builder) BuildValue(v any) (Node, error) {
	raw, ok := AsRaw(v)
	if !ok {
		return nil, domain.Malformed("expected an object, got %s", kindOf(v))
	}
	return b.Build(raw)
}

// BuildSequence builds an ordered sequence from an array, a single object or nothing.
// When hints are given every element must carry one of them.
func (b *Builder) BuildSequence(v any, hints ...string) (Sequence, error) {
	var items []any
	switch t := v.(type) {
	case nil:
		return Sequence{}, nil
	case []any:
		items = t
	case Raw, map[string]any:
		items = []any{t}
	default:
		return Sequence{}, domain.Malformed("expected an array, got %s", kindOf(v))
	}

	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := b.BuildValue(item)
		if err != nil {
			return Sequence{}, domain.WithPathPrefix(err, "["+strconv.Itoa(i)+"]")
		}
		if len(hints) > 0 && !Is(n, hints...) {
			return Sequence{}, &domain.VariantMismatchError{Index: i, Got: n.Type(), Expected: hints}
		}
		nodes = append(nodes, n)
	}
	return sequenceOf(nodes), nil
}

// Child builds the optional object under key. A missing or null field yields nil.
func (b *Builder) Child(body Raw, key string, hints ...string) (Node, error) {
	v, ok := body[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := b.BuildValue(v)
	if err != nil {
		return nil, domain.WithPathPrefix(err, key)
	}
	if len(hints) > 0 && !Is(n, hints...) {
		return nil, fmt.Errorf("%s: %w", key,
			&domain.VariantMismatchError{Index: -1, Got: n.Type(), Expected: hints})
	}
	return n, nil
}

// RequiredChild is Child for a structurally required field.
func (b *Builder) RequiredChild(body Raw, key string, hints ...string) (Node, error) {
	n, err := b.Child(body, key, hints...)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &domain.MalformedDocumentError{Path: []string{key}, Reason: "required field is missing"}
	}
	return n, nil
}

// Children builds the sequence under key. A missing field yields an empty sequence.
func (b *Builder) Children(body Raw, key string, hints ...string) (Sequence, error) {
	s, err := b.BuildSequence(body[key], hints...)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedDocument) {
			return Sequence{}, domain.WithPathPrefix(err, key)
		}
		return Sequence{}, fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// Fields returns an accumulator for building the child fields of body.
// The first error wins; later calls become no-ops.
func (b *Builder) Fields(body Raw) *Fields {
	return &Fields{b: b, body: body}
}

// Fields collects child nodes of one body and remembers the first failure,
// so schema build functions read as a flat list of field projections.
type Fields struct {
	b    *Builder
	body Raw
	err  error
}

// Node builds the optional child under key.
func (f *Fields) Node(key string, hints ...string) Node {
	if f.err != nil {
		return nil
	}
	n, err := f.b.Child(f.body, key, hints...)
	f.err = err
	return n
}

// Required builds the child under key and fails when it is absent.
func (f *Fields) Required(key string, hints ...string) Node {
	if f.err != nil {
		return nil
	}
	n, err := f.b.RequiredChild(f.body, key, hints...)
	f.err = err
	return n
}

// Sequence builds the children under key.
func (f *Fields) Sequence(key string, hints ...string) Sequence {
	if f.err != nil {
		return Sequence{}
	}
	s, err := f.b.Children(f.body, key, hints...)
	f.err = err
	return s
}

// Err returns the first failure.
func (f *Fields) Err() error {
	return f.err
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case Raw, map[string]any:
		return "object"
	default:
		return "number"
	}
}
