package ttree

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Evaluator is one evaluation session: it owns exactly one operand
// stack, one registry, and one diagnostic log. Tokens are evaluated one
// at a time; a token that is not a registered operation is pushed as a
// literal leaf, so literals and operators share a single namespace.
type Evaluator struct {
	config    *Config
	logger    *Logger
	stack     *Stack
	registry  *Registry
	diag      *DiagnosticLog
	approved  Severity
	sessionID string
}

// New creates an evaluation session with the builtin operation library
// registered. A nil config uses DefaultConfig.
func New(config *Config) *Evaluator {
	if config == nil {
		config = DefaultConfig()
	}

	ev := &Evaluator{
		config:    config,
		logger:    NewLogger(config.Debug),
		stack:     NewStack(),
		registry:  NewRegistry(),
		diag:      &DiagnosticLog{},
		approved:  config.Approved,
		sessionID: uuid.NewString(),
	}

	registerPackLib(ev)
	registerStackLib(ev)
	registerColumnLib(ev)
	registerRowLib(ev)

	ev.logger.DebugCat(CatEval, "session %s created", ev.sessionID)
	return ev
}

// Stack returns the session's operand stack.
func (ev *Evaluator) Stack() *Stack {
	return ev.stack
}

// Diagnostics returns the session's diagnostic log.
func (ev *Evaluator) Diagnostics() *DiagnosticLog {
	return ev.diag
}

// Logger returns the session logger.
func (ev *Evaluator) Logger() *Logger {
	return ev.logger
}

// SessionID returns the unique identifier of this session.
func (ev *Evaluator) SessionID() string {
	return ev.sessionID
}

// ApprovedSeverity returns the session's escalation ceiling.
func (ev *Evaluator) ApprovedSeverity() Severity {
	return ev.approved
}

// SetApprovedSeverity changes the escalation ceiling: faults at or below
// it are logged and evaluation continues; anything strictly above aborts
// the current batch.
func (ev *Evaluator) SetApprovedSeverity(level Severity) {
	ev.approved = level
}

// RegisterCommand registers a host-provided operation under token. The
// engine places no restriction on host token spelling beyond uniqueness.
func (ev *Evaluator) RegisterCommand(token string, h Handler) *Fault {
	return ev.registry.Register(token, h)
}

// Tokens returns every registered token, builtins and host commands
// alike, in sorted order.
func (ev *Evaluator) Tokens() []string {
	return ev.registry.Tokens()
}

// bind installs a builtin. Builtin tokens are distinct by construction,
// so this skips the duplicate check that guards host registration.
func (ev *Evaluator) bind(token string, h Handler) {
	ev.registry.entries[token] = h
}

// evalOne resolves and applies a single token without touching the
// diagnostic log. Empty tokens are ignored; unrecognized tokens are
// data, not an error.
func (ev *Evaluator) evalOne(token string) *Fault {
	if len(token) == 0 {
		return nil
	}
	h, ok := ev.registry.Lookup(token)
	if !ok {
		ev.stack.Push(NewLeaf(token))
		ev.logger.DebugCat(CatEval, "pushed literal %q", token)
		return nil
	}
	ev.logger.TraceCat(CatEval, "invoking %q", token)
	return h(ev)
}

// EvalToken evaluates one token. A fault is appended to the diagnostic
// log together with the triggering token; the fault is returned only
// when its severity exceeds the approved ceiling, otherwise it is
// swallowed and EvalToken returns nil.
func (ev *Evaluator) EvalToken(token string) *Fault {
	fault := ev.evalOne(token)
	if fault == nil {
		return nil
	}

	ev.diag.Push(fmt.Sprintf("%s\ncaused during invoking: %s", fault.Error(), token))
	if fault.Level > ev.approved {
		ev.logger.ErrorCat(CatEval, "session %s: %s (token %q)", ev.sessionID, fault.Error(), token)
		return fault
	}
	ev.logger.DebugCat(CatEval, "swallowed %s (token %q)", fault.Error(), token)
	return nil
}

// EvalBatch evaluates tokens in order. When a fault escalates, the
// diagnostic record additionally carries a trace of every token
// attempted so far in the batch, the remaining tokens are not evaluated,
// and the fault is returned to the caller.
func (ev *Evaluator) EvalBatch(tokens []string) *Fault {
	for i, token := range tokens {
		fault := ev.evalOne(token)
		if fault == nil {
			continue
		}

		record := fmt.Sprintf("%s\ncaused during invoking: %s", fault.Error(), token)
		if fault.Level > ev.approved {
			var trace strings.Builder
			trace.WriteString("\ntoken trace:")
			for _, t := range tokens[:i+1] {
				trace.WriteString("\n\t")
				trace.WriteString(t)
			}
			ev.diag.Push(record + trace.String())
			ev.logger.ErrorCat(CatEval, "session %s: batch aborted at token %d: %s", ev.sessionID, i, fault.Error())
			return fault
		}
		ev.diag.Push(record)
		ev.logger.DebugCat(CatEval, "swallowed %s (token %q)", fault.Error(), token)
	}
	return nil
}

// PrintStack renders the stack to w, top of stack first, using the
// session's serializer settings. The stack is not mutated.
func (ev *Evaluator) PrintStack(w io.Writer) error {
	tw := NewTreeWriter(w)
	tw.Indent = ev.config.Indent
	tw.Marker = ev.config.SectionMarker
	tw.LineEnd = ev.config.LineEnd
	for i := 0; i < ev.stack.Size(); i++ {
		n, fault := ev.stack.PeekAt(i)
		if fault != nil {
			return fault
		}
		if err := tw.WriteNode(n); err != nil {
			return err
		}
	}
	return nil
}

// popLeaf validates that the top of the stack is a leaf, then pops it.
// On failure the stack is left unchanged.
func (ev *Evaluator) popLeaf() (*Leaf, *Fault) {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return nil, fault
	}
	if fault := requireLeaf(top); fault != nil {
		return nil, fault
	}
	n, _ := ev.stack.Pop()
	return n.(*Leaf), nil
}

// popBranch validates that the top of the stack is a branch, then pops
// it.
func (ev *Evaluator) popBranch() (*Branch, *Fault) {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return nil, fault
	}
	if fault := requireBranch(top); fault != nil {
		return nil, fault
	}
	n, _ := ev.stack.Pop()
	return n.(*Branch), nil
}

// popInt validates that the top of the stack is a bounded integer leaf,
// then pops it and returns its value.
func (ev *Evaluator) popInt() (int, *Fault) {
	top, fault := ev.stack.Peek()
	if fault != nil {
		return 0, fault
	}
	v, fault := leafInt(top)
	if fault != nil {
		return 0, fault
	}
	ev.stack.Pop()
	return v, nil
}
