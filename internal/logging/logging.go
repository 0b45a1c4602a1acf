// Package logging holds the process-wide structured logger shared by the
// painter packages. By default nothing is logged.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(nopHandler{}))
}

// SetLogger installs l for all packages. Pass nil to silence logging again.
//
// Levels in use:
//   - [slog.LevelDebug]: job lifecycle, merge statistics, source scans
//   - [slog.LevelWarn]: skipped sources, retired job conflicts
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	current.Store(l)
}

// Logger returns the active logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}

// For returns the active logger tagged with a component name.
func For(component string) *slog.Logger {
	return current.Load().With("component", component)
}
