package ttree

import (
	"errors"
	"fmt"
	"strings"
)

// Severity ranks a fault. The order is total: Warning < Minor <
// Critical < Fatal. A session's approved severity is the ceiling below
// which faults are logged and evaluation continues; anything strictly
// above it aborts the current batch.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityMinor
	SeverityCritical
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityMinor:
		return "Minor"
	case SeverityCritical:
		return "Critical"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts a configuration string (case-insensitive) to a
// Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return SeverityWarning, nil
	case "minor":
		return SeverityMinor, nil
	case "critical":
		return SeverityCritical, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return SeverityFatal, fmt.Errorf("unknown severity %q", s)
	}
}

// Sentinel causes wrapped by faults, usable with errors.Is.
var (
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrDuplicateToken  = errors.New("duplicate token")
	ErrShapeMismatch   = errors.New("operand shape mismatch")
	ErrValidatorSyntax = errors.New("shape directive syntax error")
	ErrBadInteger      = errors.New("not a bounded integer leaf")
)

// Fault is the explicit error value returned from operations. It carries
// a severity and an optional wrapped cause for diagnostic chaining; the
// dispatch loop inspects the severity to decide continue-vs-abort.
type Fault struct {
	Message string
	Level   Severity
	Cause   error
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s [%s]", f.Message, f.Level)
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// newFault creates a fault with the given severity and no cause.
func newFault(level Severity, format string, args ...interface{}) *Fault {
	return &Fault{Message: fmt.Sprintf(format, args...), Level: level}
}

// criticalf creates a Critical fault wrapping cause. Nearly every
// builtin validation failure is Critical.
func criticalf(cause error, format string, args ...interface{}) *Fault {
	return &Fault{
		Message: fmt.Sprintf(format, args...),
		Level:   SeverityCritical,
		Cause:   cause,
	}
}
