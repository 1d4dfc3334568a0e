package fault

import "runtime"

// maxStackDepth bounds the number of frames captured per trace.
const maxStackDepth = 64

// GoRuntime is the default HostRuntime, backed by the Go runtime. It keeps
// the ambient reporting mask as plain settable state, captures call stacks
// with runtime.Callers, and exposes a recordable last-fatal slot so hosts can
// park a fault they cannot deliver through the installed hooks (for example,
// one detected after the hooks were torn down).
//
// Go cannot snapshot local variables of arbitrary frames, so the includeScope
// flag of CaptureStack is accepted and ignored.
type GoRuntime struct {
	reporting Mask
	hooks     Hooks
	installed bool
	lastFatal *Fault
}

// NewGoRuntime creates a GoRuntime with every category enabled in the
// reporting mask.
func NewGoRuntime() *GoRuntime {
	return &GoRuntime{reporting: MaskAll}
}

// ReportingMask returns the ambient reporting mask.
func (r *GoRuntime) ReportingMask() Mask {
	return r.reporting
}

// SetReportingMask replaces the ambient reporting mask. The mask is ambient
// state: changing it immediately affects classification of later faults.
func (r *GoRuntime) SetReportingMask(m Mask) {
	r.reporting = m
}

// Install binds hooks. Installing over hooks already in place returns
// ErrHooksInstalled.
func (r *GoRuntime) Install(hooks Hooks) error {
	if r.installed {
		return ErrHooksInstalled
	}
	r.hooks = hooks
	r.installed = true
	return nil
}

// Uninstall removes the installed hooks.
func (r *GoRuntime) Uninstall() error {
	if !r.installed {
		return ErrNoHooks
	}
	r.hooks = Hooks{}
	r.installed = false
	return nil
}

// Report forwards a fault to the installed OnFault hook. It is the entry
// point for host code that detects faults itself. Returns false, nil when no
// hooks are installed.
func (r *GoRuntime) Report(f *Fault, traceOffset int) (bool, error) {
	if !r.installed || r.hooks.OnFault == nil {
		return false, nil
	}
	return r.hooks.OnFault(f, traceOffset)
}

// ReportUncaught forwards a recovered value to the installed OnUncaught hook.
func (r *GoRuntime) ReportUncaught(v any) {
	if r.installed && r.hooks.OnUncaught != nil {
		r.hooks.OnUncaught(v)
	}
}

// RecordFatal parks a fault in the last-fatal slot for shutdown-time
// recovery. A later record replaces an earlier one.
func (r *GoRuntime) RecordFatal(f *Fault) {
	r.lastFatal = f
}

// LastUnreportedFatal returns the parked fatal fault, if any.
func (r *GoRuntime) LastUnreportedFatal() (*Fault, bool) {
	if r.lastFatal == nil {
		return nil, false
	}
	return r.lastFatal, true
}

// ClearLastUnreportedFatal discards the parked fatal fault.
func (r *GoRuntime) ClearLastUnreportedFatal() {
	r.lastFatal = nil
}

// CaptureStack captures the current goroutine's call stack, innermost frame
// first, skipping the given number of frames beyond CaptureStack itself.
func (r *GoRuntime) CaptureStack(skip int, includeScope bool) Trace {
	_ = includeScope // local-variable capture is not available in Go

	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	trace := make(Trace, 0, n)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		trace = append(trace, Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return trace
}
