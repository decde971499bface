package logging

import "time"

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Uint64(key string, value uint64) Field   { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Any(key string, value any) Field         { return Field{Key: key, Value: value} }

// Duration renders d in time.Duration notation, e.g. "1.5s"
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Error records err under "error"; a nil error is logged as null
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field { return String("component", name) }
func Query(name string) Field     { return String("query", name) }
func Source(uri string) Field     { return String("source", uri) }
func RunID(id string) Field       { return String("run_id", id) }
func Count(n int) Field           { return Int("count", n) }

func Latency(d time.Duration) Field { return Duration("latency", d) }
