package fault

import (
	"fmt"
	"runtime"
	"time"
)

// Fault is a single reportable error event with context. A Fault is created at
// the moment a runtime fault occurs (or when an uncaught error is converted to
// one), consumed exactly once by Handler.Dispatch, and never mutated after
// creation except for trace and scope attachment immediately before delivery.
type Fault struct {
	// Category is the fault's severity category.
	Category Category

	// Message is the human-readable fault message.
	Message string

	// File and Line identify the source location where the fault occurred.
	File string
	Line int

	// Scope optionally snapshots the local variables in effect at the fault
	// site. It is attached to the log entry only when the handler's Scoped
	// mask includes the fault's category.
	Scope map[string]any

	// Trace is the captured call stack, populated by the dispatch pipeline
	// when tracing is enabled for the category, or carried over from an
	// Escalation whose trace already exists.
	Trace Trace

	// Timestamp records when the fault was created.
	Timestamp time.Time
}

// New creates a Fault with the given category and message, locating it at the
// caller's file and line.
//
// Example:
//
//	f := fault.New(fault.CategoryWarning, "connection pool exhausted")
func New(category Category, message string) *Fault {
	file, line := callerLocation(2)
	return &Fault{
		Category:  category,
		Message:   message,
		File:      file,
		Line:      line,
		Timestamp: time.Now(),
	}
}

// Newf creates a Fault with a formatted message, locating it at the caller's
// file and line.
//
// Example:
//
//	f := fault.Newf(fault.CategoryRecoverable, "lookup for %q failed", key)
func Newf(category Category, format string, args ...any) *Fault {
	file, line := callerLocation(2)
	return &Fault{
		Category:  category,
		Message:   fmt.Sprintf(format, args...),
		File:      file,
		Line:      line,
		Timestamp: time.Now(),
	}
}

// At creates a Fault located at an explicit source position, for hosts that
// report fault locations themselves rather than relying on the Go call stack.
func At(category Category, message, file string, line int) *Fault {
	return &Fault{
		Category:  category,
		Message:   message,
		File:      file,
		Line:      line,
		Timestamp: time.Now(),
	}
}

// WithScope returns the fault with a local-scope snapshot attached. The map is
// stored by reference; the host must not mutate it after handing the fault off.
func (f *Fault) WithScope(scope map[string]any) *Fault {
	f.Scope = scope
	return f
}

// String returns a compact one-line description of the fault.
// Format: "[category] message (file:line)".
func (f *Fault) String() string {
	return fmt.Sprintf("[%s] %s (%s:%d)", f.Category, f.Message, f.File, f.Line)
}

// callerLocation resolves the file and line of the caller at the given skip
// depth, or ("unknown", 0) when the stack cannot be resolved.
func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0
	}
	return file, line
}
