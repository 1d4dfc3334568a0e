package fault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logged: [all]
scream: [fatal, parse]
thrown: [recoverable]
traced: [fatal, recoverable]
log_file: /var/log/faults.log
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, []string{"all"}, cfg.Logged)
	require.Equal(t, []string{"fatal", "parse"}, cfg.Scream)
	require.Equal(t, []string{"recoverable"}, cfg.Thrown)
	require.Nil(t, cfg.Scoped)
	require.Equal(t, "/var/log/faults.log", cfg.LogFile)
}

func TestLoadConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("FAULT_LOG_DIR", "/tmp/logs")
	path := writeConfig(t, "log_file: ${FAULT_LOG_DIR}/faults.log\n")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, "/tmp/logs/faults.log", cfg.LogFile)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "logged: [unterminated\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
}

func TestConfig_Levels(t *testing.T) {
	cfg := &Config{
		Logged: []string{"all"},
		Thrown: []string{"recoverable"},
		Scoped: []string{"none"},
	}

	levels, err := cfg.Levels()

	require.NoError(t, err)
	require.NotNil(t, levels.Logged)
	require.Equal(t, MaskAll, *levels.Logged)
	require.NotNil(t, levels.Thrown)
	require.Equal(t, MaskOf(CategoryRecoverable), *levels.Thrown)
	require.NotNil(t, levels.Scoped)
	require.Equal(t, MaskNone, *levels.Scoped)
	require.Nil(t, levels.Screamed, "absent keys keep prior values")
	require.Nil(t, levels.Traced)
}

func TestConfig_Levels_UnknownCategory(t *testing.T) {
	cfg := &Config{Logged: []string{"critical"}}

	_, err := cfg.Levels()

	require.Error(t, err)
	require.Contains(t, err.Error(), "critical")
}

func TestConfig_Apply(t *testing.T) {
	h, _, _ := newTestHandler(Policy{
		Logged:   MaskAll,
		Screamed: MaskOf(CategoryFatal),
	})
	cfg := &Config{Thrown: []string{"recoverable"}}

	require.NoError(t, cfg.Apply(h))

	require.Equal(t, MaskOf(CategoryRecoverable), h.policy.Thrown)
	require.Equal(t, MaskAll, h.policy.Logged)
	require.Equal(t, MaskOf(CategoryFatal), h.policy.Screamed)
}

func TestConfig_Apply_InvalidMask(t *testing.T) {
	h, _, _ := newTestHandler(DefaultPolicy())
	before := h.Policy()
	cfg := &Config{Thrown: []string{"bogus"}}

	require.Error(t, cfg.Apply(h))
	require.Equal(t, before, h.Policy(), "a bad config leaves the policy untouched")
}

func TestConfig_Apply_OpensSharedSink(t *testing.T) {
	resetSink(t)
	path := filepath.Join(t.TempDir(), "faults.log")
	h, _, _ := newTestHandler(Policy{Logged: MaskAll})
	cfg := &Config{LogFile: path}

	require.NoError(t, cfg.Apply(h))

	logged, _ := h.Dispatch(New(CategoryWarning, "to the sink"), TraceDisabled)
	require.True(t, logged)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to the sink")
}

func TestOpenSink_ReusedForSamePath(t *testing.T) {
	resetSink(t)
	path := filepath.Join(t.TempDir(), "faults.log")

	first, err := openSink(path)
	require.NoError(t, err)
	second, err := openSink(path)
	require.NoError(t, err)

	require.Same(t, first, second)
}

func TestOpenSink_ConflictingPath(t *testing.T) {
	resetSink(t)
	dir := t.TempDir()

	_, err := openSink(filepath.Join(dir, "a.log"))
	require.NoError(t, err)

	_, err = openSink(filepath.Join(dir, "b.log"))
	require.Error(t, err)
}

// resetSink closes and clears the process-wide sink between tests.
func resetSink(t *testing.T) {
	t.Helper()
	closeSink := func() {
		if sharedSink.file != nil {
			sharedSink.file.Close()
			sharedSink.file = nil
			sharedSink.path = ""
		}
	}
	closeSink()
	t.Cleanup(closeSink)
}
