// Package logger writes structured JSON-lines diagnostics for engine
// operations: fallback-tier traces, enabled-hint mismatches, catalog load
// issues. Logging is optional; a nil *Logger is a no-op everywhere so callers
// never guard log sites.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Logger appends JSON entries to a file.
type Logger struct {
	file   *os.File
	fields map[string]any
}

// New opens (or creates) the log file at path in append mode.
func New(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{file: file, fields: map[string]any{}}, nil
}

// WithField returns a logger that adds key=value to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{file: l.file, fields: fields}
}

func (l *Logger) log(level, msg string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	entry := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"level":     level,
		"message":   msg,
	}
	for k, v := range l.fields {
		entry[k] = v
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			entry[key] = args[i+1]
		}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(l.file, `{"timestamp":%q,"level":"ERROR","message":"marshal error: %v"}`+"\n",
			time.Now().Format(time.RFC3339), err)
		return
	}
	l.file.Write(data)
	l.file.WriteString("\n")
}

// Debug logs at DEBUG level with alternating key/value args.
func (l *Logger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.log("INFO", msg, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.log("WARN", msg, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }

// Close releases the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
