package fault

import (
	"github.com/google/uuid"
)

// TraceDisabled is the trace offset that disables trace capture entirely for a
// dispatch. Offsets >= 0 enable capture and give the number of internal frames
// to skip so dispatch machinery does not appear in logged traces.
const TraceDisabled = -1

// Handler is one installed fault-interception instance: a policy, a trace
// dedup cache, a deferred-fault queue, and the two collaborators (HostRuntime
// and Logger) the dispatch pipeline operates against.
//
// A Handler is not safe for concurrent use. The host runtime delivers faults
// on the execution context that produced them; the only concurrency-like
// hazard, a fault raised while a fault is being delivered, is resolved by a
// single-slot override rather than a lock.
type Handler struct {
	id      uuid.UUID
	runtime HostRuntime
	logger  Logger
	policy  Policy
	traces  *traceCache

	stacked  []*Fault
	shutdown bool

	dispatching      bool
	pending          *pendingFault
	reportingFailure bool
}

// pendingFault is the single-slot override for faults raised while a fault is
// already being delivered. A newer pending fault replaces an older one; this
// is deliberately not a queue.
type pendingFault struct {
	fault       *Fault
	traceOffset int
}

// NewHandler creates a handler with the default policy, a GoRuntime host, and
// a console logger on stderr. Use options to replace any of them.
//
// Example:
//
//	handler := fault.NewHandler(
//	    fault.WithLogger(fault.NewConsoleLogger(os.Stderr)),
//	    fault.WithLevels(fault.Levels{Thrown: fault.MaskOf(fault.CategoryRecoverable).Ptr()}),
//	)
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		id:      uuid.New(),
		runtime: NewGoRuntime(),
		policy:  DefaultPolicy(),
		traces:  newTraceCache(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = defaultLogger()
	}
	return h
}

// ID returns the handler's unique identity, assigned at creation. The handler
// stack uses it to report stack-discipline violations unambiguously.
func (h *Handler) ID() uuid.UUID {
	return h.id
}

// InShutdown reports whether the handler has entered the shutdown phase.
func (h *Handler) InShutdown() bool {
	return h.shutdown
}

// Dispatch runs a fault through the full pipeline: classify, gate trace
// capture through the dedup cache, attach scope and trace, deliver to the
// Logger at most once, and escalate if the category is in the Thrown mask.
//
// traceOffset controls trace capture: TraceDisabled (-1) disables it, values
// >= 0 give the number of internal frames to skip when capturing.
//
// The returned bool reports whether a Logger delivery happened. The returned
// error is non-nil only when the fault was escalated; it is always an
// *Escalation and should be propagated by the caller.
//
// A fault dispatched while another fault is being delivered (for example, the
// Logger failing while rendering a fault payload) does not recurse: it is
// placed in a single-slot override, replacing any earlier pending fault, and
// processed once the current delivery finishes.
func (h *Handler) Dispatch(f *Fault, traceOffset int) (bool, error) {
	if f == nil {
		return false, nil
	}

	if h.dispatching {
		h.pending = &pendingFault{fault: f, traceOffset: traceOffset}
		return false, nil
	}

	h.dispatching = true
	defer func() { h.dispatching = false }()

	logged, escalated := h.process(f, traceOffset)

	// Drain the override slot. Faults raised while delivering an override
	// keep replacing the slot; logger failures are not re-reported here or
	// a permanently broken logger would never terminate the drain.
	for h.pending != nil {
		next := h.pending
		h.pending = nil
		h.reportingFailure = true
		h.process(next.fault, next.traceOffset)
		h.reportingFailure = false
	}

	if escalated != nil {
		return logged, escalated
	}
	return logged, nil
}

// process implements the per-fault state machine for one fault. It must only
// be entered through Dispatch, which owns the re-entrancy guard.
func (h *Handler) process(f *Fault, traceOffset int) (bool, *Escalation) {
	d := h.classify(f.Category)
	if !d.Log && !d.Scream && !d.Throw {
		return false, nil
	}

	// Trace capture gate: only consulted when the caller allows capture at
	// all. Dedup suppresses the expensive capture for sites already traced,
	// never the log line itself.
	var key uint64
	captureTrace := false
	if traceOffset >= 0 {
		key = fingerprint(f)
		captureTrace = h.traces.shouldCapture(key, f.Category, h.policy.Traced)
	}

	var esc *Escalation
	if d.Throw {
		esc = &Escalation{
			Category:    f.Category,
			Message:     f.Message,
			File:        f.File,
			Line:        f.Line,
			Trace:       f.Trace,
			scope:       f.Scope,
			traceOffset: traceOffset,
		}
		if captureTrace && esc.Trace == nil {
			esc.Trace = h.runtime.CaptureStack(traceOffset, false)
		}
	}

	logged := false
	if d.Log || d.Scream {
		includeScope := h.policy.Scoped.Has(f.Category) && f.Scope != nil
		if traceOffset >= 0 {
			switch {
			case !captureTrace:
				f.Trace = nil
			case esc != nil:
				f.Trace = esc.Trace
			case f.Trace == nil:
				f.Trace = h.runtime.CaptureStack(traceOffset, includeScope)
			}
		}

		if err := h.logger.LogFault(f, traceOffset, includeScope); err != nil {
			h.reportLoggerFailure(err)
		} else {
			logged = true
		}

		// Only a logged capture marks the dedup key. A scream while ordinary
		// logging is suppressed must leave the site unmarked, so the first
		// real log once logging resumes still gets its trace.
		if logged && d.Log && captureTrace {
			h.traces.record(key)
		}
	}

	return logged, esc
}

// reportLoggerFailure converts a Logger error into a Notice fault and places
// it in the override slot for processing after the current delivery.
func (h *Handler) reportLoggerFailure(err error) {
	if h.reportingFailure {
		return
	}
	h.pending = &pendingFault{
		fault:       Newf(CategoryNotice, "logger failed to deliver fault: %v", err),
		traceOffset: TraceDisabled,
	}
}
