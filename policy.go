package fault

// Policy holds the five independent severity thresholds consulted for every
// dispatched fault. Each mask is evaluated on its own; a single category may be
// logged, screamed, and traced at once.
type Policy struct {
	// Logged contains the categories delivered to the Logger, subject to the
	// host's ambient reporting mask.
	Logged Mask

	// Screamed contains the categories logged regardless of the ambient
	// reporting mask. Scream bypasses ambient suppression entirely.
	Screamed Mask

	// Thrown contains the categories escalated into an Escalation error
	// instead of being logged at raise time.
	Thrown Mask

	// Scoped contains the categories whose local-scope snapshot is attached
	// to the log entry.
	Scoped Mask

	// Traced contains the categories eligible for call-stack capture.
	Traced Mask
}

// DefaultPolicy returns the policy a new handler starts with: everything
// logged, fatal and parse faults screamed, fatal and recoverable faults
// traced, nothing thrown, no scope capture.
func DefaultPolicy() Policy {
	return Policy{
		Logged:   MaskAll,
		Screamed: MaskOf(CategoryFatal, CategoryParse),
		Thrown:   MaskNone,
		Scoped:   MaskNone,
		Traced:   MaskOf(CategoryFatal, CategoryRecoverable),
	}
}

// Levels is a partial policy update. Nil fields leave the corresponding mask
// unchanged, so callers can adjust a single threshold without knowing the rest
// of the configuration. Use Mask.Ptr to populate fields.
type Levels struct {
	Logged   *Mask
	Screamed *Mask
	Thrown   *Mask
	Scoped   *Mask
	Traced   *Mask
}

// Decision is the outcome of classifying a single fault category against the
// current policy and the host's ambient reporting mask.
type Decision struct {
	// Log indicates delivery through the ordinary logging path.
	Log bool

	// Scream indicates delivery that ignores ambient suppression.
	Scream bool

	// Throw indicates escalation into an Escalation error.
	Throw bool
}

// SetLevel applies a partial policy update and returns the prior configuration
// as a restore point. It is safe to call from within a dispatch (for example
// while translating an uncaught error whose handling must not re-throw); the
// swap is a plain field update with no side effects.
func (h *Handler) SetLevel(levels Levels) Policy {
	prev := h.policy
	if levels.Logged != nil {
		h.policy.Logged = *levels.Logged
	}
	if levels.Screamed != nil {
		h.policy.Screamed = *levels.Screamed
	}
	if levels.Thrown != nil {
		h.policy.Thrown = *levels.Thrown
	}
	if levels.Scoped != nil {
		h.policy.Scoped = *levels.Scoped
	}
	if levels.Traced != nil {
		h.policy.Traced = *levels.Traced
	}
	return prev
}

// Restore replaces the whole policy with a snapshot previously returned by
// SetLevel or Policy.
func (h *Handler) Restore(p Policy) {
	h.policy = p
}

// Policy returns the handler's current policy.
func (h *Handler) Policy() Policy {
	return h.policy
}

// classify evaluates a category against the policy and the ambient reporting
// mask. The thrown decision supersedes logging for the current pass: the
// escalated form is logged later, once, at its catch site or at shutdown.
// During the shutdown phase there is no later catch opportunity, so scream
// logging is allowed to co-occur with a throw.
func (h *Handler) classify(c Category) Decision {
	reporting := h.runtime.ReportingMask()
	enabled := reporting.Intersect(Mask(c))

	d := Decision{
		Log:    !enabled.Intersect(h.policy.Logged).Empty(),
		Scream: h.policy.Screamed.Has(c),
		Throw:  !enabled.Intersect(h.policy.Thrown).Empty(),
	}

	if d.Throw {
		d.Log = false
		if !h.shutdown {
			d.Scream = false
		}
	}
	return d
}
