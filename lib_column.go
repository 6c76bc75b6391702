package ttree

// registerColumnLib installs indexed copying and the column-extraction
// family. `|[` and `|]` are aliases kept for compatibility with the
// historical spellings `|i` and `|id`.
func registerColumnLib(ev *Evaluator) {
	ev.bind("|i", opCopyFromIndex)
	ev.bind("|[", opCopyFromIndex)
	ev.bind("|id", opExtractColumn)
	ev.bind("|]", opExtractColumn)
	ev.bind("|]g", opExtractColumnGrouped)
}

// opCopyFromIndex pops an integer index and pushes a deep copy of the
// remaining top branch's child at that index. The source branch stays on
// the stack.
//
// Unlike column extraction, an out-of-range index here is a fault, not a
// silent skip; the two bounds policies are deliberately different.
func opCopyFromIndex(ev *Evaluator) *Fault {
	index, fault := ev.popInt()
	if fault != nil {
		return fault
	}
	top, fault := ev.stack.Peek()
	if fault != nil {
		return fault
	}
	if fault := requireBranch(top); fault != nil {
		return fault
	}
	br := top.(*Branch)
	if index >= len(br.Children) {
		return criticalf(ErrShapeMismatch, "index %d out of range for branch of %d", index, len(br.Children))
	}
	ev.stack.Push(br.Children[index].Copy())
	return nil
}

// columnFrame is one level of the iterative extraction traversal: a
// branch and the index of the next child to visit. Traversal depth is
// caller-controlled, so the frame stack is explicit rather than the call
// stack.
type columnFrame struct {
	branch *Branch
	next   int
}

// popColumnArgs pops the index and depth arguments shared by both
// extraction variants and validates the remaining top as the source
// branch, which stays on the stack.
func popColumnArgs(ev *Evaluator) (index, depth int, root *Branch, fault *Fault) {
	index, fault = ev.popInt()
	if fault != nil {
		return
	}
	depth, fault = ev.popInt()
	if fault != nil {
		return
	}
	if depth < 1 {
		fault = newFault(SeverityCritical, "cannot extract from zero depth")
		return
	}
	top, f := ev.stack.Peek()
	if f != nil {
		fault = f
		return
	}
	if f := requireBranch(top); f != nil {
		fault = f
		return
	}
	root = top.(*Branch)
	return
}

// opExtractColumn projects the child at a fixed index out of every
// branch found at a fixed nesting depth, flattening the copies into one
// output branch in traversal order. Out-of-range indices at a matching
// branch are silently skipped.
func opExtractColumn(ev *Evaluator) *Fault {
	index, depth, root, fault := popColumnArgs(ev)
	if fault != nil {
		return fault
	}

	out := NewBranch()
	frames := []columnFrame{{branch: root}}
	for len(frames) > 0 {
		top := &frames[len(frames)-1]
		if top.next >= len(top.branch.Children) {
			frames = frames[:len(frames)-1]
			continue
		}
		if len(frames) == depth {
			if index < len(top.branch.Children) {
				out.Children = append(out.Children, top.branch.Children[index].Copy())
			}
			frames = frames[:len(frames)-1]
			continue
		}
		child := top.branch.Children[top.next]
		top.next++
		if IsBranch(child) {
			frames = append(frames, columnFrame{branch: child.(*Branch)})
		}
	}
	ev.stack.Push(out)
	return nil
}

// opExtractColumnGrouped performs the same traversal and selection as
// opExtractColumn but mirrors the input's branching structure above the
// target depth instead of flattening: every branch descended into gets a
// corresponding empty branch in the output, and each extracted copy
// lands in the mirror of its target-depth branch.
func opExtractColumnGrouped(ev *Evaluator) *Fault {
	index, depth, root, fault := popColumnArgs(ev)
	if fault != nil {
		return fault
	}

	out := NewBranch()
	frames := []columnFrame{{branch: root}}
	mirrors := []*Branch{out}
	for len(frames) > 0 {
		top := &frames[len(frames)-1]
		if top.next >= len(top.branch.Children) {
			frames = frames[:len(frames)-1]
			mirrors = mirrors[:len(mirrors)-1]
			continue
		}
		if len(frames) == depth {
			if index < len(top.branch.Children) {
				m := mirrors[len(mirrors)-1]
				m.Children = append(m.Children, top.branch.Children[index].Copy())
			}
			frames = frames[:len(frames)-1]
			mirrors = mirrors[:len(mirrors)-1]
			continue
		}
		child := top.branch.Children[top.next]
		top.next++
		if IsBranch(child) {
			frames = append(frames, columnFrame{branch: child.(*Branch)})
			mirror := NewBranch()
			m := mirrors[len(mirrors)-1]
			m.Children = append(m.Children, mirror)
			mirrors = append(mirrors, mirror)
		}
	}
	ev.stack.Push(out)
	return nil
}
