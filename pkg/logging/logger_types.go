package logging

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Level orders log entries by severity
type Level int32

const (
	// DebugLevel carries per-pass and per-round algorithm detail
	DebugLevel Level = iota
	// InfoLevel is the default
	InfoLevel
	// WarnLevel marks skipped records and rejected arguments
	WarnLevel
	// ErrorLevel marks failed ingestion and failed queries
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a string to a Level, falling back to InfoLevel
func ParseLevel(s string) Level {
	level, _ := LookupLevel(s)
	return level
}

// LookupLevel converts a string to a Level and reports whether it was recognised
func LookupLevel(s string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return WarnLevel, true
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), true
		}
	}
	return InfoLevel, false
}

// Field is one key of a structured entry
type Field struct {
	Key   string
	Value any
}

// Logger writes structured entries. Children created by With share their
// parent's output and level.
type Logger interface {
	Log(level Level, msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

type output struct {
	mu     sync.Mutex
	writer io.Writer
	level  atomic.Int32
}

// JSONLogger writes one JSON object per line
type JSONLogger struct {
	out    *output
	fields []Field
}

// LogEntry is the JSON shape of one line
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Log(Level, string, ...Field) {}
func (NopLogger) Debug(string, ...Field)      {}
func (NopLogger) Info(string, ...Field)       {}
func (NopLogger) Warn(string, ...Field)       {}
func (NopLogger) Error(string, ...Field)      {}
func (n NopLogger) With(...Field) Logger      { return n }
func (NopLogger) SetLevel(Level)              {}
func (NopLogger) GetLevel() Level             { return InfoLevel }

// NewNopLogger returns a Logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}
