package logging

import "time"

// Timer logs one entry with a latency field when a query or load finishes
type Timer struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer starts timing msg. fields are added to the final entry.
func StartTimer(logger Logger, msg string, fields ...Field) *Timer {
	return &Timer{logger: logger, msg: msg, start: time.Now(), fields: fields}
}

// End logs a successful finish at debug level and returns the elapsed time
func (t *Timer) End(fields ...Field) time.Duration {
	return t.finish(DebugLevel, fields)
}

// Fail logs err at level and returns the elapsed time
func (t *Timer) Fail(level Level, err error) time.Duration {
	return t.finish(level, []Field{Error(err)})
}

func (t *Timer) finish(level Level, extra []Field) time.Duration {
	elapsed := time.Since(t.start)
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	t.logger.Log(level, t.msg, append(fields, Latency(elapsed))...)
	return elapsed
}
