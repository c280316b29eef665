package parser

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// PageRef identifies the page a node was built from. It is a weak
// back-reference used for diagnostics only; it never keeps a page alive.
type PageRef uint64

// NoPage is the origin of nodes built outside a page.
const NoPage PageRef = 0

var pageRefs atomic.Uint64

func nextPageRef() PageRef {
	return PageRef(pageRefs.Add(1))
}

// Node is one typed unit of a parsed response graph.
// Nodes are immutable once the builder returns them.
type Node interface {
	// Type returns the variant tag of the schema that produced the node.
	Type() string

	// Origin returns the page the node was built from.
	Origin() PageRef

	// Children returns the direct child nodes in document order.
	Children() []Node
}

// Base carries the variant tag and origin of a node.
// Every schema type embeds it; the builder fills it in.
type Base struct {
	typ    string
	origin PageRef
}

// Type returns the variant tag.
func (b *Base) Type() string {
	return b.typ
}

// Origin returns the page the node was built from.
func (b *Base) Origin() PageRef {
	return b.origin
}

func (b *Base) base() *Base {
	return b
}

type based interface {
	base() *Base
}

func stamp(n Node, tag string, origin PageRef) error {
	b, ok := n.(based)
	if !ok {
		return fmt.Errorf("node %T for %s does not embed parser.Base", n, tag)
	}
	bb := b.base()
	bb.typ = tag
	bb.origin = origin
	return nil
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Collect flattens nodes, sequences and node slices into one ordered child list.
// Nil nodes are skipped. It is the usual body of a schema's Children method.
func Collect(items ...any) []Node {
	var out []Node
	for _, it := range items {
		switch v := it.(type) {
		case nil:
		case Sequence:
			out = append(out, v.nodes...)
		case []Node:
			for _, n := range v {
				if !IsNil(n) {
					out = append(out, n)
				}
			}
		case Node:
			if !IsNil(v) {
				out = append(out, v)
			}
		default:
			panic(fmt.Sprintf("parser.Collect: unsupported child %T", it))
		}
	}
	return out
}

// As asserts that n is of type T. A nil node yields the zero value and no error.
func As[T Node](n Node) (T, error) {
	var zero T
	if IsNil(n) {
		return zero, nil
	}
	t, ok := n.(T)
	if !ok {
		return zero, &domain.VariantMismatchError{
			Index:    -1,
			Got:      n.Type(),
			Expected: []string{typeName(zero)},
		}
	}
	return t, nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// Is reports whether n is non-nil and has one of the given tags.
func Is(n Node, tags ...string) bool {
	if IsNil(n) {
		return false
	}
	for _, t := range tags {
		if n.Type() == t {
			return true
		}
	}
	return false
}
