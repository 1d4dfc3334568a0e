package fault

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-based configuration surface. Each mask is a list of
// category names ("fatal", "parse", "recoverable", "warning", "notice",
// "deprecated", or the special names "all" and "none"). Absent keys keep the
// handler's prior values, so a config file can adjust a single threshold.
//
// Example:
//
//	logged: [all]
//	scream: [fatal, parse]
//	thrown: [recoverable]
//	traced: [fatal, recoverable]
//	log_file: ${HOME}/logs/faults.log
type Config struct {
	Logged []string `yaml:"logged"`
	Scream []string `yaml:"scream"`
	Thrown []string `yaml:"thrown"`
	Scoped []string `yaml:"scoped"`
	Traced []string `yaml:"traced"`

	// LogFile is the path of the shared log sink. Environment variables in
	// the path are expanded. Empty means keep the handler's current logger.
	LogFile string `yaml:"log_file"`
}

// LoadConfig reads a YAML configuration file. Environment variables in the
// file content are expanded before parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Levels converts the configured mask names into a partial policy update.
// Absent lists produce nil fields, which SetLevel leaves unchanged.
func (c *Config) Levels() (Levels, error) {
	var levels Levels

	fields := []struct {
		names []string
		dst   **Mask
	}{
		{c.Logged, &levels.Logged},
		{c.Scream, &levels.Screamed},
		{c.Thrown, &levels.Thrown},
		{c.Scoped, &levels.Scoped},
		{c.Traced, &levels.Traced},
	}
	for _, field := range fields {
		if field.names == nil {
			continue
		}
		m, err := ParseMask(field.names)
		if err != nil {
			return Levels{}, err
		}
		*field.dst = &m
	}
	return levels, nil
}

// Apply configures a handler from the loaded file: masks are applied as a
// partial update, and when a log file is configured the handler's logger is
// replaced with one writing to the shared sink.
func (c *Config) Apply(h *Handler) error {
	levels, err := c.Levels()
	if err != nil {
		return err
	}
	h.SetLevel(levels)

	if c.LogFile != "" {
		w, err := openSink(c.LogFile)
		if err != nil {
			return err
		}
		h.logger = NewFileLogger(w)
	}
	return nil
}

// sharedSink is the lazily opened, process-wide log file. It is opened once
// and reused by every handler configured with the same path; there is no
// concurrent access, so an initialize-once check suffices.
var sharedSink struct {
	file *os.File
	path string
}

// openSink returns the shared sink for path, opening it on first use.
func openSink(path string) (*os.File, error) {
	if sharedSink.file != nil && sharedSink.path == path {
		return sharedSink.file, nil
	}
	if sharedSink.file != nil {
		return nil, fmt.Errorf("log sink already open at %s", sharedSink.path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log sink: %w", err)
	}
	sharedSink.file = file
	sharedSink.path = path
	return file, nil
}
