package fault

// Logger is the sink collaborator that receives composed faults. A handler
// invokes the Logger at most once per dispatched fault.
//
// Implementations must not raise faults back into the dispatching handler
// under normal conditions. If logging itself fails, the returned error is
// converted into a Notice-severity fault and processed once through the
// handler's single-slot override, never recursively.
type Logger interface {
	// LogFault delivers a fault. traceOffset is the number of leading trace
	// frames that belong to dispatch machinery and should be omitted from
	// output; includeScope indicates whether the fault's scope snapshot is
	// eligible for rendering.
	LogFault(f *Fault, traceOffset int, includeScope bool) error
}
