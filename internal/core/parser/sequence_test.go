package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

func testSequence() Sequence {
	return NewSequence(
		&item{Base: Base{typ: "Item"}, ID: "a"},
		&badge{Base: Base{typ: "Badge"}, Label: "hot"},
		&item{Base: Base{typ: "Item"}, ID: "b"},
		nil,
	)
}

func TestSequence_Basics(t *testing.T) {
	s := testSequence()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"Item", "Badge", "Item"}, s.Types())
	assert.True(t, s.Has("Badge"))
	assert.False(t, s.Has("Shelf"))

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, "a", first.(*item).ID)

	_, ok = Sequence{}.First()
	assert.False(t, ok)
}

func TestSequence_NodesIsACopy(t *testing.T) {
	s := testSequence()
	nodes := s.Nodes()
	nodes[0] = nil
	assert.NotNil(t, s.At(0))
}

func TestSequence_Find(t *testing.T) {
	s := testSequence()

	n, ok := s.FirstOfType("Item", func(n Node) bool { return n.(*item).ID == "b" })
	require.True(t, ok)
	assert.Equal(t, "b", n.(*item).ID)

	_, ok = s.FirstOfType("Item", func(n Node) bool { return n.(*item).ID == "zzz" })
	assert.False(t, ok)

	it, ok := First(s, func(i *item) bool { return i.ID == "b" })
	require.True(t, ok)
	assert.Equal(t, "b", it.ID)

	assert.Len(t, OfType[*item](s), 2)
	assert.Equal(t, 2, s.OfType("Item").Len())
	assert.Equal(t, 1, s.Filter(func(n Node) bool { return Is(n, "Badge") }).Len())
}

func TestSequence_As(t *testing.T) {
	s := testSequence()

	_, err := s.As("Item", "Badge")
	require.NoError(t, err)

	_, err = s.As("Item")
	require.Error(t, err)
	var vm *domain.VariantMismatchError
	require.True(t, errors.As(err, &vm))
	assert.Equal(t, 1, vm.Index)
	assert.Equal(t, "Badge", vm.Got)

	_, err = Cast[*item](s)
	assert.True(t, errors.Is(err, domain.ErrVariantMismatch))

	items, err := Cast[*item](s.OfType("Item"))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSequence_All(t *testing.T) {
	s := testSequence()
	var seen []int
	for i := range s.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestAs(t *testing.T) {
	var n Node = &badge{Base: Base{typ: "Badge"}}

	b, err := As[*badge](n)
	require.NoError(t, err)
	assert.NotNil(t, b)

	_, err = As[*item](n)
	var vm *domain.VariantMismatchError
	require.True(t, errors.As(err, &vm))
	assert.Equal(t, -1, vm.Index)

	zero, err := As[*item](nil)
	require.NoError(t, err)
	assert.Nil(t, zero)
}
