package ttree

// Stack is the operand stack: a single mutable last-in-first-out
// sequence of nodes shared by every operation in one evaluation session.
// The top is the most recently pushed node.
type Stack struct {
	items []Node
}

// NewStack creates an empty operand stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push places n on top of the stack.
func (s *Stack) Push(n Node) {
	s.items = append(s.items, n)
}

// Pop removes and returns the top node. Popping an empty stack is a
// Critical stack-underflow fault.
func (s *Stack) Pop() (Node, *Fault) {
	if len(s.items) == 0 {
		return nil, criticalf(ErrStackUnderflow, "required an operand, but none passed")
	}
	n := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return n, nil
}

// Peek returns the top node without removing it.
func (s *Stack) Peek() (Node, *Fault) {
	if len(s.items) == 0 {
		return nil, criticalf(ErrStackUnderflow, "required an operand, but none passed")
	}
	return s.items[len(s.items)-1], nil
}

// PeekAt returns the node n positions below the top (PeekAt(0) is the
// top itself).
func (s *Stack) PeekAt(n int) (Node, *Fault) {
	if n < 0 || n >= len(s.items) {
		return nil, criticalf(ErrStackUnderflow, "required operand %d below top, stack holds %d", n, len(s.items))
	}
	return s.items[len(s.items)-1-n], nil
}

// Size returns the number of nodes on the stack.
func (s *Stack) Size() int {
	return len(s.items)
}

// Require faults with a Critical stack underflow unless the stack holds
// at least n nodes.
func (s *Stack) Require(n int) *Fault {
	if len(s.items) < n {
		return criticalf(ErrStackUnderflow, "required %d operands, stack holds %d", n, len(s.items))
	}
	return nil
}
