package fault

// Stack buffers a fault captured during an unsafe early-startup window, when
// the full dispatch pipeline cannot run. The fault is stored only if it would
// eventually log, scream, or throw under the current policy; fully filtered
// faults are dropped immediately rather than stored.
//
// Stacking never logs and never escalates. It only buffers or drops, so it is
// safe to call from code paths where triggering the Logger or constructing an
// Escalation would itself be unsafe.
func (h *Handler) Stack(f *Fault) {
	if f == nil {
		return
	}
	d := h.classify(f.Category)
	if !d.Log && !d.Scream && !d.Throw {
		return
	}
	h.stacked = append(h.stacked, f)
}

// Unstack drains every stacked fault through the full dispatch pipeline in
// original arrival order, then clears the queue. Escalations produced during
// the replay have no catch site anymore, so each one is resolved (logged)
// immediately instead of being returned.
func (h *Handler) Unstack() {
	if len(h.stacked) == 0 {
		return
	}
	pending := h.stacked
	h.stacked = nil

	for _, f := range pending {
		// The original call stack is long gone; replay with capture disabled.
		logged, escalated := h.Dispatch(f, TraceDisabled)
		if escalated != nil && !logged {
			h.Resolve(escalated)
		}
	}
}

// Stacked returns the number of faults currently buffered.
func (h *Handler) Stacked() int {
	return len(h.stacked)
}
