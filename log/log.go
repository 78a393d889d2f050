// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelCrit  = slog.Level(12)
)

// Logger writes key/value pairs to a handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Crit logs a critical message and exits the process.
	Crit(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Trace(msg string, ctx ...any) { l.inner.Log(context.Background(), LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.inner.Log(context.Background(), LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Log(context.Background(), LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Log(context.Background(), LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Log(context.Background(), LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.inner.Log(context.Background(), LevelCrit, msg, ctx...)
	os.Exit(1)
}

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(NewTerminalHandler(os.Stderr, LevelInfo))})
}

// SetRoot replaces the handler of the root logger.
// Package loggers created by WithContext pick up the new handler as well.
func SetRoot(h slog.Handler) {
	root.Store(&logger{slog.New(h)})
}

// Root returns the process wide root logger.
func Root() Logger {
	return root.Load()
}

// WithContext creates a logger carrying the given attributes,
// conventionally ("pkg", <package name>).
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx}
}

// ctxLogger defers root lookup to log time, so package level loggers
// honor handlers installed after package init.
type ctxLogger struct {
	ctx []any
}

func (c *ctxLogger) resolve() Logger {
	return root.Load().With(c.ctx...)
}

func (c *ctxLogger) With(ctx ...any) Logger {
	return &ctxLogger{append(append([]any{}, c.ctx...), ctx...)}
}

func (c *ctxLogger) Trace(msg string, ctx ...any) { c.resolve().Trace(msg, ctx...) }
func (c *ctxLogger) Debug(msg string, ctx ...any) { c.resolve().Debug(msg, ctx...) }
func (c *ctxLogger) Info(msg string, ctx ...any)  { c.resolve().Info(msg, ctx...) }
func (c *ctxLogger) Warn(msg string, ctx ...any)  { c.resolve().Warn(msg, ctx...) }
func (c *ctxLogger) Error(msg string, ctx ...any) { c.resolve().Error(msg, ctx...) }
func (c *ctxLogger) Crit(msg string, ctx ...any)  { c.resolve().Crit(msg, ctx...) }

// FromLegacyLevel converts a legacy verbosity (0=crit .. 5=trace) to a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return LevelError
	case 2:
		return LevelWarn
	case 3:
		return LevelInfo
	case 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}
