// Package testutil provides shared test setup helpers: log capture/
// silencing and short-mode gating.
package testutil

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// TestConfig holds configuration for test setup.
type TestConfig struct {
	// EnableLogCapture routes log output to the test log instead of
	// discarding it.
	EnableLogCapture bool
}

// DefaultTestConfig returns the configuration suitable for most tests:
// logging silenced for cleaner output.
func DefaultTestConfig() *TestConfig {
	return &TestConfig{EnableLogCapture: false}
}

// SetupTest initializes the test environment and returns a cleanup function.
//
//	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	defer cleanup()
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	original := log.Default()
	if config.EnableLogCapture {
		logger := log.New(testWriter{t: t})
		logger.SetLevel(log.DebugLevel)
		log.SetDefault(logger)
	} else {
		log.SetDefault(log.New(io.Discard))
	}

	return func() {
		log.SetDefault(original)
	}
}

// SkipIfShort skips the test when -short is set.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skip(reason)
	}
}

// testWriter adapts testing.T to io.Writer for log output.
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}
