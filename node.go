package ttree

// Node is the single value type the engine rewrites: a finite, acyclic
// tree of text leaves and ordered branches. Every node reachable from the
// operand stack is exclusively owned along its path; Copy is the only
// sanctioned way to duplicate one.
type Node interface {
	// Depth is 0 for a Leaf and 1 + the maximum child depth for a
	// Branch (1 when the branch is empty).
	Depth() int
	// Copy returns a deep clone that shares no structure with the
	// receiver and may be mutated independently.
	Copy() Node

	isNode()
}

// Leaf is a terminal node holding raw text. The text may be empty.
type Leaf struct {
	Text string
}

// NewLeaf creates a leaf holding the given text.
func NewLeaf(text string) *Leaf {
	return &Leaf{Text: text}
}

func (l *Leaf) Depth() int { return 0 }

func (l *Leaf) Copy() Node {
	return &Leaf{Text: l.Text}
}

// IsEmpty reports whether the leaf holds no text.
func (l *Leaf) IsEmpty() bool {
	return len(l.Text) == 0
}

func (*Leaf) isNode() {}

// Branch is an internal node holding an ordered, index-addressable
// sequence of children. Order is significant and preserved by every
// operation unless that operation documents reordering.
type Branch struct {
	Children []Node
}

// NewBranch creates an empty branch.
func NewBranch() *Branch {
	return &Branch{}
}

func (b *Branch) Depth() int {
	max := 0
	for _, child := range b.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

func (b *Branch) Copy() Node {
	res := &Branch{Children: make([]Node, len(b.Children))}
	for i, child := range b.Children {
		res.Children[i] = child.Copy()
	}
	return res
}

func (*Branch) isNode() {}

// IsLeaf reports whether n is a leaf node.
func IsLeaf(n Node) bool {
	_, ok := n.(*Leaf)
	return ok
}

// IsBranch reports whether n is a branch node.
func IsBranch(n Node) bool {
	_, ok := n.(*Branch)
	return ok
}
