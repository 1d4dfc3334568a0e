package fault

// Shutdown runs the end-of-process recovery sequence. It is intended to be
// called once, after any last-chance reporting window the host runtime offers
// has closed; later calls are no-ops.
//
// The sequence: enter the shutdown phase (which lets scream logging co-occur
// with an otherwise log-suppressed throw, since there is no later catch
// opportunity), drain the stacked queue, then ask the host for a last fatal
// fault that never passed through the installed hooks. If one exists and the
// ambient reporting mask did not already cover it, it is dispatched with trace
// capture disabled: stack unwinding information is unreliable this late. The
// host's record is cleared either way so the fault cannot be double-reported.
func (h *Handler) Shutdown() {
	if h.shutdown {
		return
	}
	h.shutdown = true

	h.Unstack()

	last, ok := h.runtime.LastUnreportedFatal()
	if !ok {
		return
	}
	if !h.runtime.ReportingMask().Has(last.Category) {
		logged, escalated := h.Dispatch(last, TraceDisabled)
		if escalated != nil && !logged {
			h.Resolve(escalated)
		}
	}
	h.runtime.ClearLastUnreportedFatal()
}
