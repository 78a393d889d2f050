// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// TerminalHandler formats records for human readability:
//
//	[LVL] [Jan 02 15:04:05] message key=value key=value
type TerminalHandler struct {
	mu    sync.Mutex
	wr    io.Writer
	lvl   *slog.LevelVar
	attrs []slog.Attr
}

// NewTerminalHandler returns a handler writing records at or above the given level.
func NewTerminalHandler(wr io.Writer, lvl slog.Level) *TerminalHandler {
	var level slog.LevelVar
	level.Set(lvl)
	return &TerminalHandler{wr: wr, lvl: &level}
}

// SetLevel adjusts the minimum level at runtime.
func (h *TerminalHandler) SetLevel(lvl slog.Level) {
	h.lvl.Set(lvl)
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128)
	buf = append(buf, '[')
	buf = append(buf, levelTag(r.Level)...)
	buf = append(buf, "] ["...)
	buf = r.Time.AppendFormat(buf, "Jan 02 15:04:05")
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	appendAttr := func(a slog.Attr) bool {
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = fmt.Append(buf, a.Value.Resolve().Any())
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.wr.Write(buf)
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:    h.wr,
		lvl:   h.lvl,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func levelTag(lvl slog.Level) string {
	switch {
	case lvl >= LevelCrit:
		return "CRIT"
	case lvl >= LevelError:
		return "EROR"
	case lvl >= LevelWarn:
		return "WARN"
	case lvl >= LevelInfo:
		return "INFO"
	case lvl >= LevelDebug:
		return "DBUG"
	default:
		return "TRCE"
	}
}

// DiscardHandler drops every record. Useful in tests.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

type discardHandler struct{}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
