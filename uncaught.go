package fault

import (
	"errors"
	"fmt"
	"time"
)

// HandleUncaught translates an already-thrown-but-uncaught value into a fault
// and dispatches it. The category is the value's own declared category when it
// is (or wraps) an Escalation, else CategoryFatal; the message is prefixed
// with "Uncaught: ".
//
// Trace capture is disabled for this pass because an Escalation already owns
// the trace captured when it was created, which is reused directly. For the
// duration of the dispatch the Thrown mask is zeroed, so translation can never
// re-escalate, and the Scoped mask is forced on for the value's category, so
// its context is captured; both are restored unconditionally afterwards.
func (h *Handler) HandleUncaught(v any) {
	f := uncaughtFault(v)

	prev := h.SetLevel(Levels{
		Thrown: MaskNone.Ptr(),
		Scoped: h.policy.Scoped.Union(Mask(f.Category)).Ptr(),
	})
	defer h.Restore(prev)

	h.Dispatch(f, TraceDisabled)
}

// Recover is intended for use in a deferred call at the outermost frame the
// handler is responsible for. If the goroutine is panicking, the recovered
// value is routed through HandleUncaught and the panic is swallowed.
//
// Example:
//
//	func serve(handler *fault.Handler) {
//	    defer handler.Recover()
//	    run()
//	}
func (h *Handler) Recover() {
	if v := recover(); v != nil {
		h.HandleUncaught(v)
	}
}

// uncaughtFault maps an arbitrary recovered value onto a Fault.
func uncaughtFault(v any) *Fault {
	var esc *Escalation
	if err, ok := v.(error); ok && errors.As(err, &esc) {
		return &Fault{
			Category:  esc.Category,
			Message:   "Uncaught: " + esc.Message,
			File:      esc.File,
			Line:      esc.Line,
			Scope:     esc.scope,
			Trace:     esc.Trace,
			Timestamp: time.Now(),
		}
	}

	message := "Uncaught: " + describe(v)
	file, line := callerLocation(3)
	return &Fault{
		Category:  CategoryFatal,
		Message:   message,
		File:      file,
		Line:      line,
		Timestamp: time.Now(),
	}
}

// describe renders a recovered value for the uncaught-fault message.
func describe(v any) string {
	switch val := v.(type) {
	case error:
		return val.Error()
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
