// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides package scoped loggers on top of the go-ethereum root logger.
package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Re-exported levels so callers don't import go-ethereum/log directly.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// WithContext returns a logger carrying ctx. The root logger is resolved on
// every call so package level loggers follow a later SetDefault.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// New returns a logger bound to the current root logger.
func New(ctx ...any) Logger {
	return &rootLogger{ethlog.Root().With(ctx...)}
}

// SetDefault replaces the root logger with one writing to h.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// NewTerminalHandler returns a human readable handler filtering below lvl.
// Passing a *slog.LevelVar lets the level change at runtime.
func NewTerminalHandler(w io.Writer, lvl slog.Leveler, useColor bool) slog.Handler {
	return &levelHandler{ethlog.NewTerminalHandlerWithLevel(w, LevelTrace, useColor), lvl}
}

// NewJSONHandler returns a JSON handler filtering below lvl.
func NewJSONHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return &levelHandler{ethlog.JSONHandlerWithLevel(w, LevelTrace), lvl}
}

// levelHandler consults lvl on every record, the wrapped handler accepts all levels.
type levelHandler struct {
	inner slog.Handler
	lvl   slog.Leveler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.lvl.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.lvl.Level() {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.inner.WithAttrs(attrs), h.lvl}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.inner.WithGroup(name), h.lvl}
}

// FromVerbosity maps the legacy 0 (crit) to 5 (trace) scale to a level.
func FromVerbosity(v int) slog.Level {
	return ethlog.FromLegacyLevel(v)
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) get() ethlog.Logger {
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: append(append([]any{}, l.ctx...), ctx...)}
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.get().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.get().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.get().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.get().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.get().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.get().Crit(msg, ctx...) }

type rootLogger struct {
	l ethlog.Logger
}

func (r *rootLogger) With(ctx ...any) Logger       { return &rootLogger{r.l.With(ctx...)} }
func (r *rootLogger) Trace(msg string, ctx ...any) { r.l.Trace(msg, ctx...) }
func (r *rootLogger) Debug(msg string, ctx ...any) { r.l.Debug(msg, ctx...) }
func (r *rootLogger) Info(msg string, ctx ...any)  { r.l.Info(msg, ctx...) }
func (r *rootLogger) Warn(msg string, ctx ...any)  { r.l.Warn(msg, ctx...) }
func (r *rootLogger) Error(msg string, ctx ...any) { r.l.Error(msg, ctx...) }
func (r *rootLogger) Crit(msg string, ctx ...any)  { r.l.Crit(msg, ctx...) }
