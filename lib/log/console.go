/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorGray   = "\033[90m"
	ColorRed    = "\033[91m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[94m"
	ColorCyan   = "\033[96m"
	ColorDim    = "\033[2m"
)

// ConsoleHandler writes one human readable line per record:
//
//	[060102/150405] INF pack.func: message key=value
type ConsoleHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	writer io.Writer

	useColor     bool
	useTimestamp bool
	isDebugLevel bool

	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler creates a new ConsoleHandler
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &ConsoleHandler{
		opts:         opts,
		mu:           &sync.Mutex{},
		writer:       w,
		useColor:     isTerminal(w),
		useTimestamp: true,
		isDebugLevel: opts.Level != nil && opts.Level.Level() <= slog.LevelDebug,
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetUseColor enables or disables color output
func (h *ConsoleHandler) SetUseColor(useColor bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.useColor = useColor
}

// SetUseTimestamp enables or disables the timestamp prefix
func (h *ConsoleHandler) SetUseTimestamp(useTimestamp bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.useTimestamp = useTimestamp
}

// Enabled reports whether the handler handles records at the given level
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the record
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	if h.useTimestamp {
		layout := "060102/150405"
		if h.isDebugLevel {
			layout = "060102/150405.000"
		}
		buf.WriteString(h.colorize(ColorGray, "["+r.Time.Format(layout)+"]"))
		buf.WriteByte(' ')
	}

	buf.WriteString(h.colorize(levelColor(r.Level), formatLevel(r.Level)))
	buf.WriteByte(' ')

	pack, fun := h.extractPackFunc(r)
	if pack != "" && fun != "" {
		buf.WriteString(h.colorize(ColorDim, pack+"."+fun+":"))
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	for _, attr := range h.attrs {
		h.appendAttr(&buf, "", attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, buf.String())
	return err
}

func (h *ConsoleHandler) extractPackFunc(r slog.Record) (pack, fun string) {
	for _, attr := range h.attrs {
		switch attr.Key {
		case "pack":
			pack = attr.Value.String()
		case "func":
			fun = attr.Value.String()
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "pack":
			pack = a.Value.String()
		case "func":
			fun = a.Value.String()
		}
		return true
	})
	return pack, fun
}

func (h *ConsoleHandler) appendAttr(buf *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Key == "pack" || attr.Key == "func" {
		return
	}
	if h.opts.ReplaceAttr != nil {
		attr = h.opts.ReplaceAttr(h.groups, attr)
	}
	if attr.Key == "" {
		return
	}
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		for _, sub := range attr.Value.Group() {
			h.appendAttr(buf, prefix+attr.Key+".", sub)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(attr.Key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return fmt.Sprint(v.Any())
	}
}

func formatLevel(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DBG"
	case level < slog.LevelWarn:
		return "INF"
	case level < slog.LevelError:
		return "WRN"
	default:
		return "ERR"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return ColorCyan
	case level < slog.LevelWarn:
		return ColorBlue
	case level < slog.LevelError:
		return ColorYellow
	default:
		return ColorRed
	}
}

func (h *ConsoleHandler) colorize(color, text string) string {
	if !h.useColor {
		return text
	}
	return color + text + ColorReset
}

// WithAttrs returns a new ConsoleHandler with the given attributes
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.attrs = append(clone.attrs, attrs...)
	return &clone
}

// WithGroup returns a new ConsoleHandler with the given group
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}
