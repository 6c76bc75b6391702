package ttree

import "strings"

// registerRowLib installs the row (text) operations.
func registerRowLib(ev *Evaluator) {
	ev.bind("$", opUndot)
	ev.bind("$^", opConcatRow)
	ev.bind("$_", opSplitRow)
	ev.bind("_", opReverse)
}

// opUndot strips exactly one leading '.' from the top leaf's text, in
// place. Leaves without a leading dot are left alone.
func opUndot(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	if fault := requireLeaf(top); fault != nil {
		return fault
	}
	leaf := top.(*Leaf)
	if strings.HasPrefix(leaf.Text, ".") {
		leaf.Text = leaf.Text[1:]
	}
	return nil
}

// opConcatRow pops a separator leaf and a branch, then joins the text of
// the branch's direct leaf children with the separator and pushes the
// result as a new leaf. Nested branches are silently skipped, not an
// error.
func opConcatRow(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	if fault := requireLeaf(top); fault != nil {
		return fault
	}
	under, fault := ev.stack.PeekAt(1)
	if fault != nil {
		return fault
	}
	if fault := requireBranch(under); fault != nil {
		return fault
	}
	sep, _ := ev.popLeaf()
	br, _ := ev.popBranch()
	var sb strings.Builder
	first := true
	for _, child := range br.Children {
		leaf, ok := child.(*Leaf)
		if !ok {
			continue
		}
		if !first {
			sb.WriteString(sep.Text)
		}
		first = false
		sb.WriteString(leaf.Text)
	}
	ev.stack.Push(NewLeaf(sb.String()))
	return nil
}

// opSplitRow pops a delimiter leaf and a subject leaf, splits the
// subject on every occurrence of the delimiter (adjacent and boundary
// delimiters produce empty segments), and pushes a branch of leaf
// segments in left-to-right order.
func opSplitRow(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	if fault := requireLeaf(top); fault != nil {
		return fault
	}
	if top.(*Leaf).IsEmpty() {
		return newFault(SeverityCritical, "empty passed as split delimiter")
	}
	under, fault := ev.stack.PeekAt(1)
	if fault != nil {
		return fault
	}
	if fault := requireLeaf(under); fault != nil {
		return fault
	}
	delim, _ := ev.popLeaf()
	subject, _ := ev.popLeaf()
	segments := strings.Split(subject.Text, delim.Text)
	br := &Branch{Children: make([]Node, len(segments))}
	for i, seg := range segments {
		br.Children[i] = NewLeaf(seg)
	}
	ev.stack.Push(br)
	return nil
}

// opReverse reverses the top node in place: a leaf's text rune-by-rune,
// a branch's child order.
func opReverse(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	switch v := top.(type) {
	case *Leaf:
		runes := []rune(v.Text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		v.Text = string(runes)
	case *Branch:
		for i, j := 0, len(v.Children)-1; i < j; i, j = i+1, j-1 {
			v.Children[i], v.Children[j] = v.Children[j], v.Children[i]
		}
	}
	return nil
}
