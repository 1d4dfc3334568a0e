// Package faulttest provides scriptable doubles for testing code that uses
// the fault package: a Runtime with settable ambient state and a Logger that
// records every delivery.
package faulttest

import (
	"github.com/jmgilman/go/fault"
)

// Runtime is a scriptable fault.HostRuntime. The zero value reports every
// category and captures Stack (a fixed scripted trace) on demand.
type Runtime struct {
	// Reporting is the ambient reporting mask returned by ReportingMask.
	// The zero value is treated as fault.MaskAll so unconfigured doubles do
	// not silently filter everything.
	Reporting fault.Mask

	// ReportingSet marks Reporting as explicitly configured, allowing an
	// intentionally empty mask.
	ReportingSet bool

	// Stack is returned by every CaptureStack call.
	Stack fault.Trace

	// LastFatal is the record returned by LastUnreportedFatal.
	LastFatal *fault.Fault

	// Installed reports whether hooks are currently installed.
	Installed bool

	// Captures counts CaptureStack calls, for asserting dedup behavior.
	Captures int

	hooks fault.Hooks
}

// SetReporting configures the ambient reporting mask.
func (r *Runtime) SetReporting(m fault.Mask) {
	r.Reporting = m
	r.ReportingSet = true
}

// ReportingMask implements fault.HostRuntime.
func (r *Runtime) ReportingMask() fault.Mask {
	if !r.ReportingSet && r.Reporting == fault.MaskNone {
		return fault.MaskAll
	}
	return r.Reporting
}

// Install implements fault.HostRuntime.
func (r *Runtime) Install(hooks fault.Hooks) error {
	if r.Installed {
		return fault.ErrHooksInstalled
	}
	r.hooks = hooks
	r.Installed = true
	return nil
}

// Uninstall implements fault.HostRuntime.
func (r *Runtime) Uninstall() error {
	if !r.Installed {
		return fault.ErrNoHooks
	}
	r.hooks = fault.Hooks{}
	r.Installed = false
	return nil
}

// Hooks returns the currently installed hooks.
func (r *Runtime) Hooks() fault.Hooks {
	return r.hooks
}

// LastUnreportedFatal implements fault.HostRuntime.
func (r *Runtime) LastUnreportedFatal() (*fault.Fault, bool) {
	if r.LastFatal == nil {
		return nil, false
	}
	return r.LastFatal, true
}

// ClearLastUnreportedFatal implements fault.HostRuntime.
func (r *Runtime) ClearLastUnreportedFatal() {
	r.LastFatal = nil
}

// CaptureStack implements fault.HostRuntime, returning the scripted Stack.
func (r *Runtime) CaptureStack(skip int, includeScope bool) fault.Trace {
	r.Captures++
	return r.Stack
}

// Entry records one Logger delivery.
type Entry struct {
	Fault        *fault.Fault
	TraceOffset  int
	IncludeScope bool
}

// Logger is a fault.Logger that records every delivery.
type Logger struct {
	// Entries holds every delivered fault in order.
	Entries []Entry

	// Err, when non-nil, is returned from LogFault to simulate a failing
	// sink. Deliveries are still recorded.
	Err error
}

// LogFault implements fault.Logger.
func (l *Logger) LogFault(f *fault.Fault, traceOffset int, includeScope bool) error {
	l.Entries = append(l.Entries, Entry{
		Fault:        f,
		TraceOffset:  traceOffset,
		IncludeScope: includeScope,
	})
	return l.Err
}

// Last returns the most recent delivery, or nil when none happened.
func (l *Logger) Last() *Entry {
	if len(l.Entries) == 0 {
		return nil
	}
	return &l.Entries[len(l.Entries)-1]
}

// Reset clears the recorded deliveries.
func (l *Logger) Reset() {
	l.Entries = nil
}
