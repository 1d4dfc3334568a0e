package fault

// Trace is a captured call stack, innermost frame first.
type Trace []Frame

// Frame is a single call-stack entry.
type Frame struct {
	// Function is the fully qualified function name.
	Function string

	// File and Line identify the call site.
	File string
	Line int
}

// Hooks carries the callbacks a handler installs into the host runtime.
type Hooks struct {
	// OnFault receives ordinary faults as the host reports them. The trace
	// offset follows the Handler.Dispatch convention: -1 disables trace
	// capture, values >= 0 skip that many internal frames.
	OnFault func(f *Fault, traceOffset int) (bool, error)

	// OnUncaught receives already-thrown-but-uncaught values, typically from
	// a recover site or the host's uncaught-exception hook.
	OnUncaught func(v any)
}

// HostRuntime is the host-side collaborator a handler operates against. It
// supplies the ambient reporting mask, hook installation, call-stack capture,
// and the record of the last fatal fault the host could not hand off normally.
//
// Implementations are consumed, not provided, by the dispatch core; GoRuntime
// is the default implementation backed by the Go runtime, and faulttest.Runtime
// is a scriptable double for tests.
type HostRuntime interface {
	// ReportingMask returns the host-wide "currently enabled" mask. It is
	// ambient state and may change between calls.
	ReportingMask() Mask

	// Install binds the handler's hooks into the host's fault-reporting
	// mechanism. Installing over already-installed hooks is an error.
	Install(hooks Hooks) error

	// Uninstall removes the currently installed hooks.
	Uninstall() error

	// LastUnreportedFatal returns the most recent fatal fault that never
	// passed through the installed hooks, if any.
	LastUnreportedFatal() (*Fault, bool)

	// ClearLastUnreportedFatal discards the last-fatal record so it cannot
	// be reported twice.
	ClearLastUnreportedFatal()

	// CaptureStack captures the current call stack, skipping the given
	// number of innermost frames. When includeScope is true and the host
	// supports it, frames carry local-scope information as well.
	CaptureStack(skip int, includeScope bool) Trace
}
