// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpaint

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/ggpaint/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for ggpaint and its sub-packages.
// By default, ggpaint produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by ggpaint:
//   - [slog.LevelDebug]: internal diagnostics (chunk activation, texture uploads)
//   - [slog.LevelInfo]: important lifecycle events (GPU adapter selected, file loaded)
//   - [slog.LevelWarn]: non-fatal issues (cache overflow, pool saturation, release errors)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	ggpaint.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	ggpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// The texture tier keeps its own logger to avoid an import cycle.
	gpu.SetLogger(l)
}

// Logger returns the current logger used by ggpaint.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
