// Package logger provides the logging interface shared by lotbump
// components, plus the Console used for the operator-facing raise lines.
package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

// Logger is the structured logging interface used across lotbump.
type Logger interface {
	// Info logs an informational message (e.g., "Found 4 categories").
	Info(format string, args ...interface{})

	// Warning logs a recoverable problem (e.g., "raise button not found").
	Warning(format string, args ...interface{})

	// Error logs a failure (e.g., "sweep failed: connection reset").
	Error(format string, args ...interface{})

	// Close releases resources held by the logger.
	// Safe to call multiple times.
	Close() error
}

// StandardLogger wraps a stdlib *log.Logger.
type StandardLogger struct {
	logger *log.Logger
	closer io.Closer
}

// NewStandardLogger creates a logger that writes through l.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

// NewFileLogger creates a logger appending to w, closing it on Close.
func NewFileLogger(w io.WriteCloser) *StandardLogger {
	return &StandardLogger{
		logger: log.New(w, "", log.LstdFlags),
		closer: w,
	}
}

// Info logs with an [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

// Warning logs with a [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

// Error logs with an [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close closes the underlying writer when the logger owns one.
func (s *StandardLogger) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

// NopLogger discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// Console prints the operator-facing lines, one per event, stamped with
// the local wall-clock time: "[15:04:05] - message".
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (c *Console) WithClock(now func() time.Time) *Console {
	c.now = now
	return c
}

// Printf writes one stamped line.
func (c *Console) Printf(format string, args ...interface{}) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] - %s\n", c.now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// MockLogger records every call for assertions in tests.
type MockLogger struct {
	mu           sync.Mutex
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return nil
}

var _ Logger = (*MockLogger)(nil)
