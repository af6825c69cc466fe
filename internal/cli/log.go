// Package cli implements the collagepack command-line interface.
//
// The CLI reads an image pool from a directory or a manifest, lays it out on
// a page with one of the collage algorithms and writes the result as JSON,
// PDF, labels, DXF or XLSX. It is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - layout: Lay out a pool and write the requested outputs
//   - compare: Run every algorithm on a pool and tabulate the results
//   - render: Re-export a saved layout
//   - papers: List the built-in paper sizes
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with short
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stage times one step of a run: loading the pool, laying it out or
// comparing algorithms.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	l.Debug("starting", "stage", name)
	return &stage{logger: l, name: name, start: time.Now()}
}

// done logs the stage's counts as key/value pairs plus the elapsed time:
//
//	INFO layout algorithm=spiral placed=42 unused=3 elapsed=1.234s
func (s *stage) done(keyvals ...any) {
	kv := append(keyvals, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(s.name, kv...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() when the
// command ran without the root's pre-run hook (as in unit tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// isVerbose reports whether --verbose was given. The page estimate and
// per-step events are only shown then.
func isVerbose(ctx context.Context) bool {
	return loggerFromContext(ctx).GetLevel() <= log.DebugLevel
}
