package parser

import (
	"iter"
	"slices"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

// Sequence is an ordered, immutable collection of nodes.
// Order is the order the nodes appeared in the document.
type Sequence struct {
	nodes []Node
}

// NewSequence returns a sequence holding a copy of nodes. Nil nodes are dropped.
func NewSequence(nodes ...Node) Sequence {
	return Sequence{nodes: Collect(nodes)}
}

// sequenceOf wraps nodes without copying. Callers must not keep a reference.
func sequenceOf(nodes []Node) Sequence {
	return Sequence{nodes: nodes}
}

// Len returns the number of nodes.
func (s Sequence) Len() int {
	return len(s.nodes)
}

// Empty reports whether the sequence has no nodes.
func (s Sequence) Empty() bool {
	return len(s.nodes) == 0
}

// At returns the node at index i. It panics if i is out of range.
func (s Sequence) At(i int) Node {
	return s.nodes[i]
}

// Nodes returns a copy of the nodes.
func (s Sequence) Nodes() []Node {
	return slices.Clone(s.nodes)
}

// All iterates over index and node pairs.
func (s Sequence) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range s.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// First returns the first node.
func (s Sequence) First() (Node, bool) {
	if len(s.nodes) == 0 {
		return nil, false
	}
	return s.nodes[0], true
}

// Find returns the first node matching pred.
func (s Sequence) Find(pred func(Node) bool) (Node, bool) {
	for _, n := range s.nodes {
		if pred(n) {
			return n, true
		}
	}
	return nil, false
}

// Filter returns the nodes matching pred, in order.
func (s Sequence) Filter(pred func(Node) bool) Sequence {
	var out []Node
	for _, n := range s.nodes {
		if pred(n) {
			out = append(out, n)
		}
	}
	return sequenceOf(out)
}

// FirstOfType returns the first node with the given tag that also satisfies every predicate.
func (s Sequence) FirstOfType(tag string, preds ...func(Node) bool) (Node, bool) {
	return s.Find(func(n Node) bool {
		if n.Type() != tag {
			return false
		}
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	})
}

// OfType keeps the nodes whose tag is one of tags.
func (s Sequence) OfType(tags ...string) Sequence {
	return s.Filter(func(n Node) bool { return Is(n, tags...) })
}

// Has reports whether any node carries tag.
func (s Sequence) Has(tag string) bool {
	_, ok := s.FirstOfType(tag)
	return ok
}

// As asserts that every node carries one of tags and returns the sequence unchanged.
// The first offending node is reported as a VariantMismatchError.
func (s Sequence) As(tags ...string) (Sequence, error) {
	for i, n := range s.nodes {
		if !Is(n, tags...) {
			return Sequence{}, &domain.VariantMismatchError{Index: i, Got: n.Type(), Expected: tags}
		}
	}
	return s, nil
}

// Types returns the tag of every node, in order.
func (s Sequence) Types() []string {
	out := make([]string, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.Type()
	}
	return out
}

// First returns the first node of Go type T satisfying every predicate.
func First[T Node](s Sequence, preds ...func(T) bool) (T, bool) {
	for _, n := range s.nodes {
		t, ok := n.(T)
		if !ok {
			continue
		}
		match := true
		for _, p := range preds {
			if !p(t) {
				match = false
				break
			}
		}
		if match {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// OfType returns the nodes of Go type T, in order.
func OfType[T Node](s Sequence) []T {
	var out []T
	for _, n := range s.nodes {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Cast converts every node to T, failing on the first node that is not a T.
func Cast[T Node](s Sequence) ([]T, error) {
	out := make([]T, 0, len(s.nodes))
	for i, n := range s.nodes {
		t, ok := n.(T)
		if !ok {
			var zero T
			return nil, &domain.VariantMismatchError{
				Index:    i,
				Got:      n.Type(),
				Expected: []string{typeName(zero)},
			}
		}
		out = append(out, t)
	}
	return out, nil
}
