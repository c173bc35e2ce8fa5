package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints wall-clock time with centiseconds, e.g. 14:32:01.45.
const logTimeFormat = "15:04:05.00"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(logTimeFormat)
	l.SetLevel(level)
	return l
}

// stopwatch starts timing a pipeline stage. The returned func logs msg at
// info level with the stage name, the elapsed time and any extra keyvals.
func stopwatch(l *log.Logger, stage string) func(msg string, keyvals ...any) {
	start := time.Now()
	return func(msg string, keyvals ...any) {
		kv := []any{"stage", stage, "took", time.Since(start).Round(time.Millisecond)}
		l.Info(msg, append(kv, keyvals...)...)
	}
}
