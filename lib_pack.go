package ttree

// registerPackLib installs the pack/unpack family.
//
// Token mnemonics, shared across the builtin library:
//
//	^ - pack operation
//	t - top only
//	c - count argument
//	d - depth argument
//	i - index argument
//	g - grouped variant
//	_ - reverse
//	| - generative operation
//	# - remove operation
//	$ - row operation
func registerPackLib(ev *Evaluator) {
	ev.bind("^t", opPackTop)
	ev.bind("^", opPackRun)
	ev.bind("^_t", opUnpackTop)
	ev.bind("^tc", opPackCount)
}

// opPackTop pops the top node and pushes a single-child branch holding
// it.
func opPackTop(ev *Evaluator) *Fault {
	n, fault := ev.stack.Pop()
	if fault != nil {
		return fault
	}
	ev.stack.Push(&Branch{Children: []Node{n}})
	return nil
}

// opPackRun moves the run of stack items sharing the top item's depth
// into one new branch, preserving their original (bottom-up) relative
// order.
func opPackRun(ev *Evaluator) *Fault {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	d := top.Depth()

	var run []Node
	for ev.stack.Size() > 0 {
		n, _ := ev.stack.Peek()
		if n.Depth() != d {
			break
		}
		ev.stack.Pop()
		run = append(run, n)
	}
	// run was collected top-first; restore push order.
	br := &Branch{Children: make([]Node, len(run))}
	for i, n := range run {
		br.Children[len(run)-1-i] = n
	}
	ev.stack.Push(br)
	return nil
}

// opUnpackTop pops a branch and pushes each of its children in original
// order, leaving the last child on top. The branch's child list is
// consumed.
func opUnpackTop(ev *Evaluator) *Fault {
	br, fault := ev.popBranch()
	if fault != nil {
		return fault
	}
	for _, child := range br.Children {
		ev.stack.Push(child)
	}
	br.Children = nil
	return nil
}

// opPackCount pops an integer count C, then pops exactly C items into a
// new branch preserving their original order (not stack order), and
// pushes the branch.
func opPackCount(ev *Evaluator) *Fault {
	count, fault := ev.popInt()
	if fault != nil {
		return fault
	}
	if ev.stack.Size() < count {
		return criticalf(ErrStackUnderflow, "too few arguments to pack: need %d, stack holds %d", count, ev.stack.Size())
	}
	br := &Branch{Children: make([]Node, count)}
	for i := count - 1; i >= 0; i-- {
		n, _ := ev.stack.Pop()
		br.Children[i] = n
	}
	ev.stack.Push(br)
	return nil
}
