package ttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".section", "section"},
		{"..twice", ".twice"}, // exactly one dot is stripped
		{"plain", "plain"},
		{"", ""},
		{".", ""},
	}
	for _, tt := range tests {
		ev := newSession(t)
		pushAll(ev, l(tt.in))
		require.Nil(t, opUndot(ev))
		top, _ := ev.Stack().Peek()
		assert.Equal(t, tt.want, top.(*Leaf).Text, "input %q", tt.in)
	}
}

func TestUndotRequiresLeaf(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, b())
	fault := opUndot(ev)
	require.NotNil(t, fault)
	assert.ErrorIs(t, fault, ErrShapeMismatch)
}

// Scenario: "a,b,,c" split on "," gives [a b "" c].
func TestSplitRow(t *testing.T) {
	ev := newSession(t)
	require.Nil(t, ev.EvalBatch([]string{"a,b,,c", ",", "$_"}))

	require.Equal(t, 1, ev.Stack().Size())
	top, _ := ev.Stack().Peek()
	out := top.(*Branch)
	require.Len(t, out.Children, 4)
	for i, want := range []string{"a", "b", "", "c"} {
		assert.Equal(t, want, out.Children[i].(*Leaf).Text)
	}
}

func TestSplitRowBoundaries(t *testing.T) {
	ev := newSession(t)
	require.Nil(t, ev.EvalBatch([]string{"--x--", "--", "$_"}))

	top, _ := ev.Stack().Peek()
	out := top.(*Branch)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "", out.Children[0].(*Leaf).Text)
	assert.Equal(t, "x", out.Children[1].(*Leaf).Text)
	assert.Equal(t, "", out.Children[2].(*Leaf).Text)
}

func TestSplitRowEmptyDelimiter(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, l("subject"), l(""))

	fault := opSplitRow(ev)
	require.NotNil(t, fault)
	assert.Equal(t, SeverityCritical, fault.Level)
	// Nothing was consumed.
	assert.Equal(t, 2, ev.Stack().Size())
}

// Scenario: joining [x [z] y] with "-" gives "x-y"; the nested branch is
// skipped, not an error.
func TestConcatRow(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, b(l("x"), b(l("z")), l("y")), l("-"))

	require.Nil(t, opConcatRow(ev))
	require.Equal(t, 1, ev.Stack().Size())
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "x-y", top.(*Leaf).Text)
}

func TestConcatRowEmptyBranch(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, b(), l(","))
	require.Nil(t, opConcatRow(ev))
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "", top.(*Leaf).Text)
}

// Splitting and re-joining with the same delimiter reproduces the
// subject exactly.
func TestSplitConcatInverse(t *testing.T) {
	subjects := []string{"a,b,,c", ",,", "plain", "", "x,"}
	for _, subject := range subjects {
		ev := newSession(t)
		pushAll(ev, l(subject), l(","))
		require.Nil(t, opSplitRow(ev))
		pushAll(ev, l(","))
		require.Nil(t, opConcatRow(ev))

		top, _ := ev.Stack().Peek()
		assert.Equal(t, subject, top.(*Leaf).Text, "subject %q", subject)
	}
}

// Scenario: reversing a leaf flips its text; reversing a branch flips
// child order only.
func TestReverse(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, l("abc"))
	require.Nil(t, opReverse(ev))
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "cba", top.(*Leaf).Text)

	ev = newSession(t)
	pushAll(ev, b(l("1"), l("2"), l("3")))
	require.Nil(t, opReverse(ev))
	top, _ = ev.Stack().Peek()
	out := top.(*Branch)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "3", out.Children[0].(*Leaf).Text)
	assert.Equal(t, "2", out.Children[1].(*Leaf).Text)
	assert.Equal(t, "1", out.Children[2].(*Leaf).Text)
}

func TestReverseRunes(t *testing.T) {
	ev := newSession(t)
	pushAll(ev, l("héllo"))
	require.Nil(t, opReverse(ev))
	top, _ := ev.Stack().Peek()
	assert.Equal(t, "olléh", top.(*Leaf).Text)
}

func TestReverseEmptyStack(t *testing.T) {
	ev := newSession(t)
	fault := opReverse(ev)
	require.NotNil(t, fault)
	assert.ErrorIs(t, fault, ErrStackUnderflow)
}
