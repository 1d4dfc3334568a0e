package fault

// Option configures a Handler at creation time.
type Option func(*Handler)

// WithRuntime sets the host runtime the handler operates against.
// Defaults to a fresh GoRuntime.
func WithRuntime(r HostRuntime) Option {
	return func(h *Handler) {
		h.runtime = r
	}
}

// WithLogger sets the sink faults are delivered to.
// Defaults to a console logger on stderr.
func WithLogger(l Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithPolicy replaces the entire starting policy.
func WithPolicy(p Policy) Option {
	return func(h *Handler) {
		h.policy = p
	}
}

// WithLevels applies a partial policy update on top of the default policy,
// leaving unspecified masks at their defaults.
func WithLevels(levels Levels) Option {
	return func(h *Handler) {
		h.SetLevel(levels)
	}
}
