package fault_test

import (
	"testing"

	"github.com/jmgilman/go/fault"
	"github.com/jmgilman/go/fault/faulttest"
)

// nullLogger discards deliveries so benchmarks measure the pipeline, not the sink.
type nullLogger struct{}

func (nullLogger) LogFault(f *fault.Fault, traceOffset int, includeScope bool) error {
	return nil
}

func benchHandler(p fault.Policy) *fault.Handler {
	return fault.NewHandler(
		fault.WithRuntime(&faulttest.Runtime{
			Stack: fault.Trace{{Function: "bench.Site", File: "site.go", Line: 1}},
		}),
		fault.WithLogger(nullLogger{}),
		fault.WithPolicy(p),
	)
}

// BenchmarkDispatch_Filtered measures the cost of a fault below every
// threshold, the hot path under ambient suppression.
func BenchmarkDispatch_Filtered(b *testing.B) {
	h := benchHandler(fault.Policy{Logged: fault.MaskOf(fault.CategoryFatal)})
	f := fault.At(fault.CategoryNotice, "filtered", "site.go", 1)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h.Dispatch(f, fault.TraceDisabled)
	}
}

func BenchmarkDispatch_Logged(b *testing.B) {
	h := benchHandler(fault.Policy{Logged: fault.MaskAll})
	f := fault.At(fault.CategoryWarning, "logged", "site.go", 1)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h.Dispatch(f, fault.TraceDisabled)
	}
}

// BenchmarkDispatch_TracedStorm measures a tight error-producing loop hitting
// one site with tracing enabled: dedup bounds capture cost to the first pass.
func BenchmarkDispatch_TracedStorm(b *testing.B) {
	h := benchHandler(fault.Policy{
		Logged: fault.MaskAll,
		Traced: fault.MaskAll,
	})
	f := fault.At(fault.CategoryWarning, "storm", "site.go", 1)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h.Dispatch(f, 0)
	}
}

func BenchmarkMask_Membership(b *testing.B) {
	m := fault.MaskOf(fault.CategoryFatal, fault.CategoryRecoverable, fault.CategoryWarning)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.Has(fault.CategoryWarning)
	}
}
