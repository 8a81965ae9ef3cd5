// Package cli implements the qualmap command-line interface.
//
// Commands:
//   - render: build a scene from a workbook and write SVG, interactive SVG, PNG, PDF or JSON
//   - validate: check a workbook and report every problem at once
//   - serve: serve the interactive map over HTTP
//   - view: explore the map in the terminal and export the current view
//   - cache: inspect or clear the scene cache
//
// Every command accepts --verbose (-v) for debug logging and --config to
// point at a TOML configuration file. Loggers travel through
// context.Context so pipeline stages can report progress.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamping each line
// with a centisecond clock ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key/value pairs, e.g.
// "Validated fishmarket.yaml elapsed=12ms entities=15".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by setup, or log.Default
// when a command runs without one (as in tests calling RunE directly).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
