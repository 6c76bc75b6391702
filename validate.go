package ttree

import "strconv"

// maxIntegerDigits bounds the width of integer leaves accepted as
// operation arguments.
const maxIntegerDigits = 8

// requireLeaf faults unless n is a leaf.
func requireLeaf(n Node) *Fault {
	if !IsLeaf(n) {
		return criticalf(ErrShapeMismatch, "branch passed as value argument")
	}
	return nil
}

// requireBranch faults unless n is a branch.
func requireBranch(n Node) *Fault {
	if !IsBranch(n) {
		return criticalf(ErrShapeMismatch, "value passed as branch argument")
	}
	return nil
}

// requireInteger faults unless n is a leaf holding 1 to 8 ASCII decimal
// digits.
func requireInteger(n Node) *Fault {
	if fault := requireLeaf(n); fault != nil {
		return fault
	}
	leaf := n.(*Leaf)
	if leaf.IsEmpty() {
		return criticalf(ErrBadInteger, "empty passed as number")
	}
	if len(leaf.Text) > maxIntegerDigits {
		return criticalf(ErrBadInteger, "number larger than integer")
	}
	for i := 0; i < len(leaf.Text); i++ {
		if leaf.Text[i] < '0' || leaf.Text[i] > '9' {
			return criticalf(ErrBadInteger, "not a number passed as an integer")
		}
	}
	return nil
}

// leafInt validates n with requireInteger and returns its numeric value.
func leafInt(n Node) (int, *Fault) {
	if fault := requireInteger(n); fault != nil {
		return 0, fault
	}
	// 8 digits fit comfortably; Atoi cannot fail after requireInteger.
	v, _ := strconv.Atoi(n.(*Leaf).Text)
	return v, nil
}

// shapeFrame is one level of the validator's cursor: a branch and the
// index of the next child to examine.
type shapeFrame struct {
	branch *Branch
	next   int
}

// CheckShape interprets a directive string against the children of a
// branch, letting operations declare compact operand-shape contracts
// instead of repeating manual checks. Directives:
//
//	b  require a branch at the cursor and descend into it
//	v  require a leaf at the cursor
//	i  require a bounded integer leaf at the cursor
//	e  skip the node at the cursor, no shape requirement
//	.  ascend back to the parent frame
//
// Any other character is a Critical directive-syntax fault; any failed
// check is a Critical shape fault.
func CheckShape(directives string, n Node) *Fault {
	if fault := requireBranch(n); fault != nil {
		return fault
	}
	frames := []shapeFrame{{branch: n.(*Branch)}}

	for i := 0; i < len(directives); i++ {
		d := directives[i]
		if d == '.' {
			if len(frames) <= 1 {
				return criticalf(ErrValidatorSyntax, "directive %q ascends past the root", directives)
			}
			frames = frames[:len(frames)-1]
			continue
		}

		top := &frames[len(frames)-1]
		switch d {
		case 'b', 'v', 'i', 'e':
			if top.next >= len(top.branch.Children) {
				return criticalf(ErrShapeMismatch, "directive %q: no child at position %d", directives, top.next)
			}
		default:
			return criticalf(ErrValidatorSyntax, "unknown directive %q in %q", string(d), directives)
		}

		child := top.branch.Children[top.next]
		top.next++
		switch d {
		case 'b':
			if fault := requireBranch(child); fault != nil {
				return fault
			}
			frames = append(frames, shapeFrame{branch: child.(*Branch)})
		case 'v':
			if fault := requireLeaf(child); fault != nil {
				return fault
			}
		case 'i':
			if fault := requireInteger(child); fault != nil {
				return fault
			}
		case 'e':
			// Skipped with no requirement.
		}
	}
	return nil
}
