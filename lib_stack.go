package ttree

// registerStackLib installs the generative and removal operations.
func registerStackLib(ev *Evaluator) {
	ev.bind("|Eb", opEmptyBranch)
	ev.bind("|Ev", opEmptyLeaf)
	ev.bind("|", opCopyTop)
	ev.bind("|c", opDuplicate)
	ev.bind("#", opDrop)
	ev.bind("#d", opDeepRemove)
}

// opEmptyBranch pushes a new empty branch.
func opEmptyBranch(ev *Evaluator) *Fault {
	ev.stack.Push(NewBranch())
	return nil
}

// opEmptyLeaf pushes a new empty-text leaf.
func opEmptyLeaf(ev *Evaluator) *Fault {
	ev.stack.Push(NewLeaf(""))
	return nil
}

// opCopyTop pushes a deep copy of the top node; the original stays
// below it.
func opCopyTop(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	ev.stack.Push(top.Copy())
	return nil
}

// opDuplicate pops an integer count C and pushes C-1 additional deep
// copies of the new top, so that node is present C times in total.
// Counts 0 and 1 are observably identical: neither adds a copy.
func opDuplicate(ev *Evaluator) *Fault {
	count, fault := ev.popInt()
	if fault != nil {
		return fault
	}
	if count < 2 {
		return nil
	}
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	for i := 1; i < count; i++ {
		ev.stack.Push(top.Copy())
	}
	return nil
}

// opDrop pops and discards the top node.
func opDrop(ev *Evaluator) *Fault {
	_, fault := ev.stack.Pop()
	return fault
}

// opDeepRemove pops an integer count C and removes the node C positions
// below the top, leaving the C nodes above it in their original relative
// order.
func opDeepRemove(ev *Evaluator) *Fault {
	count, fault := ev.popInt()
	if fault != nil {
		return fault
	}
	if fault := ev.stack.Require(count + 1); fault != nil {
		return fault
	}
	kept := make([]Node, count)
	for i := count - 1; i >= 0; i-- {
		kept[i], _ = ev.stack.Pop()
	}
	ev.stack.Pop()
	for _, n := range kept {
		ev.stack.Push(n)
	}
	return nil
}
