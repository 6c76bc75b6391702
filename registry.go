package ttree

import "sort"

// Handler applies one named operation to the evaluation session. A nil
// return means success; a non-nil fault is recorded by the dispatch loop
// and escalated when its severity exceeds the session's approved ceiling.
type Handler func(ev *Evaluator) *Fault

// Registry maps a unique token string to its operation. Builtins and
// host-registered commands share the one namespace; lookup is by exact
// string equality.
type Registry struct {
	entries map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Handler)}
}

// Register inserts an entry. Entries are immutable once inserted for a
// session; registering a token twice is a fault.
func (r *Registry) Register(token string, h Handler) *Fault {
	if _, exists := r.entries[token]; exists {
		return &Fault{
			Message: "token " + token + " already registered",
			Level:   SeverityFatal,
			Cause:   ErrDuplicateToken,
		}
	}
	r.entries[token] = h
	return nil
}

// Lookup returns the operation registered for token, if any.
func (r *Registry) Lookup(token string) (Handler, bool) {
	h, ok := r.entries[token]
	return h, ok
}

// Tokens returns all registered tokens in sorted order.
func (r *Registry) Tokens() []string {
	tokens := make([]string, 0, len(r.entries))
	for tok := range r.entries {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}
