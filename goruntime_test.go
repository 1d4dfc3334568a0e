package fault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoRuntime_ReportingMask(t *testing.T) {
	rt := NewGoRuntime()

	require.Equal(t, MaskAll, rt.ReportingMask())

	rt.SetReportingMask(MaskOf(CategoryFatal))
	require.Equal(t, MaskOf(CategoryFatal), rt.ReportingMask())
}

func TestGoRuntime_InstallUninstall(t *testing.T) {
	rt := NewGoRuntime()
	hooks := Hooks{
		OnFault:    func(f *Fault, traceOffset int) (bool, error) { return false, nil },
		OnUncaught: func(v any) {},
	}

	require.NoError(t, rt.Install(hooks))
	require.ErrorIs(t, rt.Install(hooks), ErrHooksInstalled)

	require.NoError(t, rt.Uninstall())
	require.ErrorIs(t, rt.Uninstall(), ErrNoHooks)
}

func TestGoRuntime_ReportForwardsToHook(t *testing.T) {
	rt := NewGoRuntime()
	var received *Fault
	require.NoError(t, rt.Install(Hooks{
		OnFault: func(f *Fault, traceOffset int) (bool, error) {
			received = f
			return true, nil
		},
	}))

	f := New(CategoryWarning, "through the hook")
	logged, err := rt.Report(f, 0)

	require.True(t, logged)
	require.NoError(t, err)
	require.Same(t, f, received)
}

func TestGoRuntime_ReportWithoutHooks(t *testing.T) {
	rt := NewGoRuntime()

	logged, err := rt.Report(New(CategoryWarning, "dropped"), 0)

	require.False(t, logged)
	require.NoError(t, err)
}

func TestGoRuntime_ReportUncaught(t *testing.T) {
	rt := NewGoRuntime()
	var received any
	require.NoError(t, rt.Install(Hooks{
		OnUncaught: func(v any) { received = v },
	}))

	rt.ReportUncaught("boom")

	require.Equal(t, "boom", received)
}

func TestGoRuntime_LastFatalLifecycle(t *testing.T) {
	rt := NewGoRuntime()

	_, ok := rt.LastUnreportedFatal()
	require.False(t, ok)

	first := At(CategoryFatal, "first", "a.go", 1)
	second := At(CategoryFatal, "second", "b.go", 2)
	rt.RecordFatal(first)
	rt.RecordFatal(second)

	got, ok := rt.LastUnreportedFatal()
	require.True(t, ok)
	require.Same(t, second, got, "a later record replaces an earlier one")

	rt.ClearLastUnreportedFatal()
	_, ok = rt.LastUnreportedFatal()
	require.False(t, ok)
}

func TestGoRuntime_CaptureStack(t *testing.T) {
	rt := NewGoRuntime()

	trace := rt.CaptureStack(0, false)

	require.NotEmpty(t, trace)
	require.True(t, strings.HasSuffix(trace[0].Function, "TestGoRuntime_CaptureStack"),
		"innermost visible frame should be the caller, got %s", trace[0].Function)
	require.NotEmpty(t, trace[0].File)
	require.Positive(t, trace[0].Line)
}

func TestGoRuntime_CaptureStackSkipsFrames(t *testing.T) {
	rt := NewGoRuntime()

	var inner, skipped Trace
	func() {
		inner = rt.CaptureStack(0, false)
		skipped = rt.CaptureStack(1, false)
	}()

	require.NotEmpty(t, inner)
	require.NotEmpty(t, skipped)
	require.Equal(t, inner[1].Function, skipped[0].Function)
}

func TestGoRuntime_CaptureStackExcessiveSkip(t *testing.T) {
	rt := NewGoRuntime()

	trace := rt.CaptureStack(10_000, false)

	require.Empty(t, trace)
}
