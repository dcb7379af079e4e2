package logger

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

func TestStandardLogger_Prefixes(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStandardLogger(log.New(buf, "", 0))

	l.Info("found %d categories", 3)
	l.Warning("raise button missing on %s", "/lots/1/trade")
	l.Error("sweep failed: %v", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"[INFO] found 3 categories",
		"[WARNING] raise button missing on /lots/1/trade",
		"[ERROR] sweep failed: boom",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestFileLogger_CloseOnce(t *testing.T) {
	w := &closeRecorder{}
	l := NewFileLogger(w)
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("unexpected error on second close: %v", err)
	}
	if w.closed != 1 {
		t.Errorf("expected writer closed once, got %d", w.closed)
	}
	if !strings.Contains(w.String(), "[INFO] hello") {
		t.Errorf("expected message in file, got %q", w.String())
	}
}

func TestConsole_StampsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	fixed := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	c := NewConsole(buf).WithClock(func() time.Time { return fixed })

	c.Printf("Raised category (%s)", "41")

	if got := buf.String(); got != "[09:05:07] - Raised category (41)\n" {
		t.Errorf("unexpected console line: %q", got)
	}
}

func TestConsole_NilIsSilent(t *testing.T) {
	var c *Console
	c.Printf("ignored")
}

func TestTee_FansOut(t *testing.T) {
	a, b := NewMockLogger(), NewMockLogger()
	l := Tee(a, nil, b, NewNopLogger())

	l.Info("i")
	l.Warning("w")
	l.Error("e")
	if err := l.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range []*MockLogger{a, b} {
		if len(m.InfoCalls) != 1 || len(m.WarningCalls) != 1 || len(m.ErrorCalls) != 1 {
			t.Errorf("expected one call per level, got %+v", m)
		}
		if !m.CloseCalled {
			t.Error("expected Close to be forwarded")
		}
	}
}

func TestTee_Collapses(t *testing.T) {
	mock := NewMockLogger()
	if got := Tee(nil, mock); got != Logger(mock) {
		t.Errorf("Tee with one backend = %T, want the backend itself", got)
	}
	if _, ok := Tee().(*NopLogger); !ok {
		t.Errorf("Tee() = %T, want *NopLogger", Tee())
	}
}

type failingLogger struct{ *NopLogger }

func (failingLogger) Close() error { return errors.New("close failed") }

func TestTee_CloseJoinsErrors(t *testing.T) {
	mock := NewMockLogger()
	l := Tee(failingLogger{NewNopLogger()}, mock)
	if err := l.Close(); err == nil || err.Error() != "close failed" {
		t.Errorf("expected the close error, got %v", err)
	}
	if !mock.CloseCalled {
		t.Error("expected remaining loggers to be closed")
	}
}
