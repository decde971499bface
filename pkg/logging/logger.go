package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// NewJSONLogger returns a logger writing entries at or above level to w
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	out := &output{writer: w}
	out.level.Store(int32(level))
	return &JSONLogger{out: out}
}

// Log writes one entry. Call fields override preset fields with the same key.
func (l *JSONLogger) Log(level Level, msg string, fields ...Field) {
	if level < l.GetLevel() {
		return
	}

	entry := LogEntry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		entry.Fields = make(map[string]any, n)
		for _, set := range [][]Field{l.fields, fields} {
			for _, f := range set {
				entry.Fields[f.Key] = f.Value
			}
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line = fmt.Appendf(nil, `{"level":"ERROR","msg":"unencodable log entry","error":%q}`, err.Error())
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.writer.Write(append(line, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.Log(DebugLevel, msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.Log(InfoLevel, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.Log(WarnLevel, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.Log(ErrorLevel, msg, fields...) }

// With returns a child logger that adds fields to every entry
func (l *JSONLogger) With(fields ...Field) Logger {
	return &JSONLogger{out: l.out, fields: append(l.fields[:len(l.fields):len(l.fields)], fields...)}
}

// SetLevel changes the minimum level of this logger and all of its children
func (l *JSONLogger) SetLevel(level Level) {
	l.out.level.Store(int32(level))
}

func (l *JSONLogger) GetLevel() Level {
	return Level(l.out.level.Load())
}
