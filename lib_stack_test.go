package ttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyGeneratives(t *testing.T) {
	ev := newSession(t)
	require.Nil(t, ev.EvalBatch([]string{"|Eb", "|Ev"}))
	require.Equal(t, 2, ev.Stack().Size())

	top, _ := ev.Stack().Peek()
	leaf := top.(*Leaf)
	assert.True(t, leaf.IsEmpty())

	below, _ := ev.Stack().PeekAt(1)
	br := below.(*Branch)
	assert.Empty(t, br.Children)
	assert.Equal(t, 1, br.Depth())
}

func TestCopyTop(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, b(l("a")))

	require.Nil(t, opCopyTop(ev))
	require.Equal(t, 2, ev.Stack().Size())

	top, _ := ev.Stack().Peek()
	below, _ := ev.Stack().PeekAt(1)

	// The duplicate is independent of the original.
	top.(*Branch).Children[0].(*Leaf).Text = "mutated"
	assert.Equal(t, "a", below.(*Branch).Children[0].(*Leaf).Text)
}

func TestDuplicate(t *testing.T) {
	tests := []struct {
		count    string
		wantSize int
	}{
		{"0", 1}, // counts 0 and 1 are observably identical
		{"1", 1},
		{"2", 2},
		{"4", 4},
	}
	for _, tt := range tests {
		t.Run("count "+tt.count, func(t *testing.T) {
			ev := newSession(t)
			require.Nil(t, ev.EvalBatch([]string{"item", tt.count, "|c"}))
			assert.Equal(t, tt.wantSize, ev.Stack().Size())
			for i := 0; i < tt.wantSize; i++ {
				n, _ := ev.Stack().PeekAt(i)
				assert.Equal(t, "item", n.(*Leaf).Text)
			}
		})
	}
}

func TestDrop(t *testing.T) {
	ev := newSession(t)
	require.Nil(t, ev.EvalBatch([]string{"a", "b", "#"}))
	require.Equal(t, 1, ev.Stack().Size())
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "a", top.(*Leaf).Text)
}

func TestDropEmpty(t *testing.T) {
	ev := newSession(t)
	fault := opDrop(ev)
	require.NotNil(t, fault)
	assert.ErrorIs(t, fault, ErrStackUnderflow)
}

func TestDeepRemove(t *testing.T) {
	ev := newSession(t)
	// Remove the item 2 positions below the top: "b".
	require.Nil(t, ev.EvalBatch([]string{"a", "b", "c", "d", "2", "#d"}))

	require.Equal(t, 3, ev.Stack().Size())
	for i, want := range []string{"d", "c", "a"} {
		n, _ := ev.Stack().PeekAt(i)
		assert.Equal(t, want, n.(*Leaf).Text, "position %d below top", i)
	}
}

func TestDeepRemoveZero(t *testing.T) {
	ev := newSession(t)
	require.Nil(t, ev.EvalBatch([]string{"a", "b", "0", "#d"}))
	require.Equal(t, 1, ev.Stack().Size())
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "a", top.(*Leaf).Text)
}

func TestDeepRemoveTooShallow(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, l("a"), l("3"))

	fault := opDeepRemove(ev)
	require.NotNil(t, fault)
	assert.ErrorIs(t, fault, ErrStackUnderflow)
}
