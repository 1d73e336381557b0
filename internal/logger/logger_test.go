package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNilLoggerIsNoOp(t *testing.T) {
	var l *Logger
	// None of these may panic.
	l.Debug("dbg")
	l.Info("info", "k", "v")
	l.Warn("warn")
	l.Error("err")
	l = l.WithField("key", "value")
	l.Info("still fine")
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.WithField("op", "invoke").Info("action executed", "key", "ok_button")
	l.Warn("odd args are ignored", "dangling")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0]
	if first["level"] != "INFO" || first["message"] != "action executed" {
		t.Errorf("entry = %v", first)
	}
	if first["op"] != "invoke" || first["key"] != "ok_button" {
		t.Errorf("fields missing: %v", first)
	}
	if _, ok := entries[1]["dangling"]; ok {
		t.Error("dangling key should be dropped")
	}
}

func TestLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	for i := 0; i < 2; i++ {
		l, err := New(path)
		if err != nil {
			t.Fatal(err)
		}
		l.Info("entry")
		l.Close()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(splitLines(data)); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	return lines
}
