package fault

import (
	"errors"
	"fmt"
	"time"
)

// Escalation is the propagatable form of a fault whose category is in the
// Thrown mask. It is an ordinary error value carrying the fault's category,
// location, scope, and captured trace, so it can travel through normal Go
// error returns to a catch site.
//
// An Escalation is deliberately not logged when it is created: the catch site
// (via Handler.Resolve) or the shutdown path logs it exactly once.
type Escalation struct {
	// Category is the severity category of the escalated fault.
	Category Category

	// Message is the fault message.
	Message string

	// File and Line identify the source location of the original fault.
	File string
	Line int

	// Trace is the call stack captured when the escalation was created, if
	// tracing was enabled for the category. It is reused by the deferred log
	// instead of being recaptured.
	Trace Trace

	scope       map[string]any
	traceOffset int
}

// Error returns the string representation of the escalation.
// Format: "[category] message (file:line)".
func (e *Escalation) Error() string {
	return fmt.Sprintf("[%s] %s (%s:%d)", e.Category, e.Message, e.File, e.Line)
}

// Fault reconstructs the fault the escalation was created from, carrying the
// trace and scope captured at escalation time.
func (e *Escalation) Fault() *Fault {
	return &Fault{
		Category:  e.Category,
		Message:   e.Message,
		File:      e.File,
		Line:      e.Line,
		Scope:     e.scope,
		Trace:     e.Trace,
		Timestamp: time.Now(),
	}
}

// IsEscalation reports whether any error in err's chain is an Escalation.
func IsEscalation(err error) bool {
	var esc *Escalation
	return errors.As(err, &esc)
}

// GetCategory extracts the fault category from an error. Returns CategoryFatal
// if the error is not an Escalation: an unrecognized error escaping into fault
// handling has, by definition, no declared severity of its own.
func GetCategory(err error) Category {
	var esc *Escalation
	if errors.As(err, &esc) {
		return esc.Category
	}
	return CategoryFatal
}

// Resolve performs the deferred log for an escalated fault at its catch site.
// The escalation's own trace is reused rather than recaptured, the Thrown mask
// is cleared for the duration so resolution cannot re-escalate, and the dedup
// fingerprint is recorded only now, when the deferred log actually happens.
//
// Returns true if the escalation was logged. Returns false when err is nil,
// when no Escalation is present in err's chain, or when the current policy
// filters the fault entirely.
//
// Example:
//
//	if err := risky(); err != nil {
//	    if fault.IsEscalation(err) {
//	        handler.Resolve(err)
//	    } else {
//	        return err
//	    }
//	}
func (h *Handler) Resolve(err error) bool {
	var esc *Escalation
	if err == nil || !errors.As(err, &esc) {
		return false
	}

	prev := h.SetLevel(Levels{Thrown: MaskNone.Ptr()})
	defer h.Restore(prev)

	logged, _ := h.Dispatch(esc.Fault(), esc.traceOffset)
	return logged
}
