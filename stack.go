package fault

import (
	"fmt"
	"sync"
)

// registry is the process-wide stack of installed handlers. The top of the
// stack is the active handler. The mutex only guards install and uninstall;
// dispatch itself is single-threaded by design.
var registry struct {
	mu    sync.Mutex
	stack []*Handler
}

// Register installs a handler's hooks into its host runtime and pushes it
// onto the handler stack, making it the active handler. Nested registration
// is supported (a library may install its own handler temporarily), but
// handlers must be unregistered in reverse order of registration.
func Register(h *Handler) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for _, installed := range registry.stack {
		if installed == h {
			return ErrAlreadyRegistered
		}
	}

	hooks := Hooks{
		OnFault:    h.Dispatch,
		OnUncaught: h.HandleUncaught,
	}
	if err := h.runtime.Install(hooks); err != nil {
		return fmt.Errorf("failed to install runtime hooks: %w", err)
	}

	registry.stack = append(registry.stack, h)
	return nil
}

// Unregister removes the handler from the handler stack and uninstalls its
// runtime hooks. Handlers must be removed strictly last-installed first:
// unregistering a handler that is not on top means some other party rebound
// the host's hooks out of order, a configuration error. The stack is left
// unchanged, the condition is reported through the active handler at Notice
// severity, and ErrNotTopHandler is returned.
//
// Unregister failures are reported, never escalated: the handler chain may
// already be inconsistent, and fault handling must not fail because of it.
func Unregister(h *Handler) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	n := len(registry.stack)
	if n == 0 {
		return ErrNotRegistered
	}

	if top := registry.stack[n-1]; top != h {
		pos := -1
		for i, installed := range registry.stack {
			if installed == h {
				pos = i
				break
			}
		}
		if pos < 0 {
			return ErrNotRegistered
		}
		top.Dispatch(Newf(CategoryNotice,
			"handler %s unregistered out of order: %s is on top", h.id, top.id),
			TraceDisabled)
		return ErrNotTopHandler
	}

	registry.stack = registry.stack[:n-1]
	if err := h.runtime.Uninstall(); err != nil {
		return fmt.Errorf("failed to uninstall runtime hooks: %w", err)
	}
	return nil
}

// Active returns the handler on top of the stack, or nil when none is
// registered.
func Active() *Handler {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if n := len(registry.stack); n > 0 {
		return registry.stack[n-1]
	}
	return nil
}

// Registered returns the number of handlers currently on the stack.
func Registered() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.stack)
}
