package parser

import "sync"

// Index buckets every node of one subtree by variant tag.
// It is built by a single pre-order, left-to-right walk; queries afterwards are
// map lookups and return the same backing sequences every time.
type Index struct {
	buckets map[string][]Node
	order   []string
	all     []Node
}

// NewIndex walks roots in order and indexes every node reachable from them.
func NewIndex(roots ...Node) *Index {
	ix := &Index{buckets: make(map[string][]Node)}

	stack := make([]Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		if !IsNil(roots[i]) {
			stack = append(stack, roots[i])
		}
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tag := n.Type()
		if _, seen := ix.buckets[tag]; !seen {
			ix.order = append(ix.order, tag)
		}
		ix.buckets[tag] = append(ix.buckets[tag], n)
		ix.all = append(ix.all, n)

		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if !IsNil(children[i]) {
				stack = append(stack, children[i])
			}
		}
	}
	return ix
}

// AllOf returns every node carrying tag, in document order.
// A tag never seen yields an empty sequence.
func (ix *Index) AllOf(tag string) Sequence {
	return sequenceOf(ix.buckets[tag])
}

// AnyOf returns the nodes carrying any of tags, in document order.
func (ix *Index) AnyOf(tags ...string) Sequence {
	if len(tags) == 1 {
		return ix.AllOf(tags[0])
	}
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	var out []Node
	for _, n := range ix.all {
		if _, ok := want[n.Type()]; ok {
			out = append(out, n)
		}
	}
	return sequenceOf(out)
}

// FirstOf returns the first node carrying tag.
func (ix *Index) FirstOf(tag string) (Node, bool) {
	b := ix.buckets[tag]
	if len(b) == 0 {
		return nil, false
	}
	return b[0], true
}

// Has reports whether any node carries tag.
func (ix *Index) Has(tag string) bool {
	return len(ix.buckets[tag]) > 0
}

// Types returns the tags seen, in order of first encounter.
func (ix *Index) Types() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Size returns the number of indexed nodes.
func (ix *Index) Size() int {
	return len(ix.all)
}

// Nodes returns every indexed node in walk order.
func (ix *Index) Nodes() Sequence {
	return sequenceOf(ix.all)
}

// IndexCache memoises one Index per subtree root.
// The zero value is ready to use and safe for concurrent use.
type IndexCache struct {
	indexes sync.Map
}

// ForSubtree returns the index for the subtree rooted at n, building it on first use.
// Nodes are keyed by identity, so every schema node must be a pointer.
func (c *IndexCache) ForSubtree(n Node) *Index {
	if IsNil(n) {
		return NewIndex()
	}
	if v, ok := c.indexes.Load(n); ok {
		return v.(*Index)
	}
	v, _ := c.indexes.LoadOrStore(n, NewIndex(n))
	return v.(*Index)
}
