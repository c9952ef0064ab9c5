package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return buf
}

func TestLoggerInfo(t *testing.T) {
	buf := captureOutput(t)

	log := New("coordinator").WithSession("default")
	log.Info("ask_issued", map[string]interface{}{"turns": 3})

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Level != LevelInfo {
		t.Errorf("level = %q, want info", e.Level)
	}
	if e.Component != "coordinator" {
		t.Errorf("component = %q, want coordinator", e.Component)
	}
	if e.Session != "default" {
		t.Errorf("session = %q, want default", e.Session)
	}
	if e.Extra["turns"] != float64(3) {
		t.Errorf("extra.turns = %v, want 3", e.Extra["turns"])
	}
}

func TestLoggerError(t *testing.T) {
	buf := captureOutput(t)

	New("api").Error("request_failed", nil, errors.New("connection refused"))

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Level != LevelError {
		t.Errorf("level = %q, want error", e.Level)
	}
	if e.Error != "connection refused" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestWithRequestID(t *testing.T) {
	buf := captureOutput(t)

	base := New("api")
	base.WithRequestID("req-1").Info("request", nil)

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.RequestID != "req-1" {
		t.Errorf("request_id = %q, want req-1", e.RequestID)
	}
	if base.requestID != "" {
		t.Error("WithRequestID mutated the base logger")
	}
}

func TestTimedEvent(t *testing.T) {
	buf := captureOutput(t)

	start := time.Now().Add(-50 * time.Millisecond)
	New("api").TimedEvent("upload", start, nil)

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Duration < 50 {
		t.Errorf("duration_ms = %d, want >= 50", e.Duration)
	}
}
