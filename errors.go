package fault

import "errors"

var (
	// ErrAlreadyRegistered is returned when registering a handler that is
	// already on the handler stack.
	ErrAlreadyRegistered = errors.New("handler already registered")

	// ErrNotRegistered is returned when unregistering a handler that is not
	// on the handler stack at all.
	ErrNotRegistered = errors.New("handler not registered")

	// ErrNotTopHandler is returned when unregistering a handler that is
	// registered but not on top of the handler stack. The stack is left
	// unchanged; the condition is additionally reported through the active
	// handler at Notice severity.
	ErrNotTopHandler = errors.New("handler is not the most recently registered")

	// ErrHooksInstalled is returned by a HostRuntime when installing hooks
	// over hooks that are already in place.
	ErrHooksInstalled = errors.New("runtime hooks already installed")

	// ErrNoHooks is returned by a HostRuntime when uninstalling hooks that
	// were never installed.
	ErrNoHooks = errors.New("runtime hooks not installed")
)
