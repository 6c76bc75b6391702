package ttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tree-building shorthand shared by the package tests.
func l(text string) *Leaf { return NewLeaf(text) }

func b(children ...Node) *Branch { return &Branch{Children: children} }

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want int
	}{
		{"leaf", l("a"), 0},
		{"empty leaf", l(""), 0},
		{"empty branch", b(), 1},
		{"flat branch", b(l("a"), l("b")), 1},
		{"nested", b(l("a"), b(l("b"))), 2},
		{"deep chain", b(b(b(l("x")))), 3},
		{"max of siblings", b(b(l("a")), b(b(l("b"))), l("c")), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Depth())
		})
	}
}

func TestCopyIndependence(t *testing.T) {
	src := b(l("a"), b(l("b"), l("c")))
	dup := src.Copy().(*Branch)

	// Mutate the copy; the source must not change.
	dup.Children[0].(*Leaf).Text = "changed"
	dup.Children[1].(*Branch).Children = append(dup.Children[1].(*Branch).Children, l("d"))

	assert.Equal(t, "a", src.Children[0].(*Leaf).Text)
	assert.Len(t, src.Children[1].(*Branch).Children, 2)

	// And the other way around.
	src.Children[1].(*Branch).Children[0].(*Leaf).Text = "also changed"
	assert.Equal(t, "b", dup.Children[1].(*Branch).Children[0].(*Leaf).Text)
}

func TestCopyLeaf(t *testing.T) {
	src := l("text")
	dup := src.Copy().(*Leaf)
	require.Equal(t, "text", dup.Text)
	dup.Text = "other"
	assert.Equal(t, "text", src.Text)
}

func TestVariantPredicates(t *testing.T) {
	assert.True(t, IsLeaf(l("x")))
	assert.False(t, IsBranch(l("x")))
	assert.True(t, IsBranch(b()))
	assert.False(t, IsLeaf(b()))
}
