// Package fault provides a configurable fault interception and logging layer.
//
// This package sits between a host runtime's native fault reporting (parse errors,
// recoverable errors, uncaught exceptions, fatal failures detected only at process
// exit) and a logging sink. Every fault is classified by severity category, and the
// package decides independently whether to log it, whether to escalate it into a
// propagatable error, and whether to attach a call-stack trace, then delivers it to
// the Logger collaborator at most once.
//
// # Features
//
//   - Bit-mask severity policy with five independent thresholds (logged, screamed,
//     thrown, scoped, traced)
//   - Scream logging that bypasses the host's ambient reporting mask entirely
//   - Escalation of faults into ordinary Go errors, with deferred catch-site logging
//   - Duplicate-trace suppression keyed by fault site, bounding trace-capture cost
//     to the number of distinct sites rather than the number of occurrences
//   - Deferred fault buffering for unsafe early-startup windows
//   - Shutdown-time recovery of fatal faults the host could not hand off normally
//   - Strictly stack-disciplined nested handler installation
//
// # Quick Start
//
// Create and register a handler:
//
//	handler := fault.NewHandler(
//	    fault.WithLogger(fault.NewConsoleLogger(os.Stderr)),
//	)
//	if err := fault.Register(handler); err != nil {
//	    log.Fatal(err)
//	}
//	defer fault.Unregister(handler)
//
// Dispatch a fault:
//
//	f := fault.Newf(fault.CategoryWarning, "cache miss rate above %d%%", rate)
//	logged, escalated := handler.Dispatch(f, 0)
//	if escalated != nil {
//	    return escalated
//	}
//
// Adjust policy at runtime:
//
//	prev := handler.SetLevel(fault.Levels{
//	    Thrown: fault.MaskOf(fault.CategoryRecoverable).Ptr(),
//	})
//	defer handler.Restore(prev)
//
// # Policy Model
//
// A Policy holds five masks consulted independently for each fault:
//
//   - Logged: categories delivered to the Logger when the host's ambient reporting
//     mask also includes them
//   - Screamed: categories logged unconditionally, ignoring ambient suppression
//   - Thrown: categories escalated into an Escalation error instead of being logged
//     at raise time; the catch site or the shutdown path logs them exactly once
//   - Scoped: categories whose local-scope snapshot is attached to the log entry
//   - Traced: categories eligible for call-stack capture
//
// Trace capture is the most expensive step of the pipeline, so it is deduplicated:
// once a trace has been logged for a given (category, file, line, message) site,
// later occurrences at the same site log without one.
//
// # Escalation
//
// A fault whose category is in the Thrown mask is not logged when dispatched.
// Instead Dispatch returns an *Escalation, an ordinary error value carrying the
// fault's category, location, and captured trace. Propagate it like any other
// error; where it is finally handled, Handler.Resolve performs the single
// deferred log. Escalations that escape all the way out can be fed back through
// Handler.HandleUncaught, typically from a deferred Handler.Recover.
//
// # Handler Stack
//
// Register and Unregister maintain a process-wide stack of installed handlers so
// a library can temporarily install its own handler over the application's.
// Installation is strictly last-in, first-out: unregistering a handler that is
// not on top is a reported configuration error and leaves the stack unchanged.
//
// # Collaborators
//
// The core operates against two small interfaces. HostRuntime supplies the
// ambient reporting mask, hook installation, stack capture, and the last
// unreported fatal record; GoRuntime is the default implementation backed by
// the Go runtime. Logger receives composed faults; SlogLogger adapts any
// log/slog handler and NewConsoleLogger builds a colorized console sink.
package fault
