package ttree

import (
	"errors"
	"strings"
	"testing"
)

func TestLiteralPush(t *testing.T) {
	ev := New(nil)

	if fault := ev.EvalToken("not-a-command"); fault != nil {
		t.Fatalf("unexpected fault: %v", fault)
	}

	if ev.Stack().Size() != 1 {
		t.Fatalf("expected stack size 1, got %d", ev.Stack().Size())
	}
	top, _ := ev.Stack().Peek()
	leaf, ok := top.(*Leaf)
	if !ok {
		t.Fatal("expected a leaf on top")
	}
	if leaf.Text != "not-a-command" {
		t.Errorf("expected token text verbatim, got %q", leaf.Text)
	}
}

func TestEmptyTokenIgnored(t *testing.T) {
	ev := New(nil)
	if fault := ev.EvalToken(""); fault != nil {
		t.Fatalf("unexpected fault: %v", fault)
	}
	if ev.Stack().Size() != 0 {
		t.Errorf("empty token must not push, stack size %d", ev.Stack().Size())
	}
}

func TestEscalation(t *testing.T) {
	config := DefaultConfig()
	config.Approved = SeverityMinor
	ev := New(config)

	// "#" on an empty stack raises Critical, which exceeds Minor: the
	// batch stops there and the trailing token is never evaluated.
	fault := ev.EvalBatch([]string{"#", "never-pushed"})
	if fault == nil {
		t.Fatal("expected an escalated fault")
	}
	if !errors.Is(fault, ErrStackUnderflow) {
		t.Errorf("expected stack underflow, got %v", fault)
	}
	if ev.Stack().Size() != 0 {
		t.Errorf("trailing token was evaluated, stack size %d", ev.Stack().Size())
	}
	if ev.Diagnostics().Len() != 1 {
		t.Errorf("expected exactly 1 diagnostic record, got %d", ev.Diagnostics().Len())
	}
}

func TestSwallowedFault(t *testing.T) {
	config := DefaultConfig()
	config.Approved = SeverityCritical
	ev := New(config)

	// Critical is at the ceiling, so evaluation continues.
	fault := ev.EvalBatch([]string{"#", "survivor"})
	if fault != nil {
		t.Fatalf("fault at the approved ceiling must be swallowed, got %v", fault)
	}
	if ev.Stack().Size() != 1 {
		t.Fatalf("expected the trailing token pushed, stack size %d", ev.Stack().Size())
	}
	if ev.Diagnostics().Len() != 1 {
		t.Errorf("swallowed fault must still be logged, got %d records", ev.Diagnostics().Len())
	}
}

func TestDiagnosticRecordNamesToken(t *testing.T) {
	config := DefaultConfig()
	config.Approved = SeverityFatal
	ev := New(config)

	ev.EvalToken("^_t") // leaf on top of nothing: underflow

	records := ev.Diagnostics().Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !strings.Contains(records[0], "^_t") {
		t.Errorf("record must name the triggering token, got %q", records[0])
	}
	if !strings.Contains(records[0], "[Critical]") {
		t.Errorf("record must carry the severity tag, got %q", records[0])
	}
}

func TestBatchTraceOnEscalation(t *testing.T) {
	config := DefaultConfig()
	config.Approved = SeverityWarning
	ev := New(config)

	ev.EvalBatch([]string{"one", "two", "#d"})

	records := ev.Diagnostics().Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !strings.Contains(records[0], "token trace:") {
		t.Fatalf("escalation record must carry the token trace, got %q", records[0])
	}
	for _, tok := range []string{"one", "two", "#d"} {
		if !strings.Contains(records[0], tok) {
			t.Errorf("trace must list attempted token %q", tok)
		}
	}
}

func TestDiagnosticsMostRecentFirst(t *testing.T) {
	config := DefaultConfig()
	config.Approved = SeverityFatal
	ev := New(config)

	ev.EvalToken("#")   // underflow
	ev.EvalToken("^_t") // underflow again

	records := ev.Diagnostics().Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !strings.Contains(records[0], "^_t") {
		t.Errorf("most recent record must come first, got %q", records[0])
	}
}

func TestHostCommandRegistration(t *testing.T) {
	ev := New(nil)

	called := false
	if fault := ev.RegisterCommand("host-op", func(ev *Evaluator) *Fault {
		called = true
		return nil
	}); fault != nil {
		t.Fatalf("registration failed: %v", fault)
	}

	ev.EvalToken("host-op")
	if !called {
		t.Error("host command was not invoked")
	}
	if ev.Stack().Size() != 0 {
		t.Error("registered token must not be pushed as a literal")
	}
}

func TestDuplicateTokenRejected(t *testing.T) {
	ev := New(nil)

	noop := func(ev *Evaluator) *Fault { return nil }
	if fault := ev.RegisterCommand("twice", noop); fault != nil {
		t.Fatalf("first registration failed: %v", fault)
	}
	fault := ev.RegisterCommand("twice", noop)
	if fault == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !errors.Is(fault, ErrDuplicateToken) {
		t.Errorf("expected ErrDuplicateToken, got %v", fault)
	}

	// Builtins are taken too.
	if fault := ev.RegisterCommand("^t", noop); fault == nil {
		t.Error("expected builtin token to be reserved")
	}
}

func TestSessionIdentity(t *testing.T) {
	a := New(nil)
	b := New(nil)
	if a.SessionID() == "" {
		t.Fatal("session id must not be empty")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("sessions must have distinct ids")
	}
}

func TestTokensListsBuiltins(t *testing.T) {
	ev := New(nil)
	tokens := ev.Tokens()

	want := []string{
		"^t", "^", "^_t", "^tc",
		"|Eb", "|Ev", "|i", "|[", "|id", "|]", "|]g", "|", "|c",
		"#", "#d", "$", "$^", "$_", "_",
	}
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	for _, tok := range want {
		if !set[tok] {
			t.Errorf("builtin token %q is not registered", tok)
		}
	}
	if len(tokens) != len(want) {
		t.Errorf("expected %d builtin tokens, got %d", len(want), len(tokens))
	}
}
