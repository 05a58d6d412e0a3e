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
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: level})
	return slog.New(handler), &buf
}

func TestConsoleHandler_BasicFormat(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelDebug)

	logger.Info("test message")
	output := buf.String()

	if !strings.HasPrefix(output, "[") {
		t.Errorf("Expected timestamp in brackets, got: %s", output)
	}
	if !strings.Contains(output, " INF test message") {
		t.Errorf("Expected level and message, got: %s", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("Expected trailing newline, got: %q", output)
	}
}

func TestConsoleHandler_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler.SetUseTimestamp(false)

	slog.New(handler).Warn("careful")

	if got := buf.String(); got != "WRN careful\n" {
		t.Errorf("Unexpected output: %q", got)
	}
}

func TestConsoleHandler_PackFunc(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.With("pack", "ui", "func", "Publish").Info("published", "version", "Version 1")
	output := buf.String()

	if !strings.Contains(output, "ui.Publish: published") {
		t.Errorf("Expected pack.func prefix, got: %s", output)
	}
	if !strings.Contains(output, `version="Version 1"`) {
		t.Errorf("Expected quoted attribute, got: %s", output)
	}
	if strings.Contains(output, "pack=") || strings.Contains(output, "func=") {
		t.Errorf("pack/func must not be printed as attributes, got: %s", output)
	}
}

func TestConsoleHandler_Groups(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.WithGroup("ssh").Info("connected", "host", "sat.example.com")

	if !strings.Contains(buf.String(), "ssh.host=sat.example.com") {
		t.Errorf("Expected grouped attribute, got: %s", buf.String())
	}
}

func TestConsoleHandler_GroupAttributes(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)

	logger.Info("poll", slog.Group("check", "timeout", time.Second, "present", true))

	output := buf.String()
	if !strings.Contains(output, "check.timeout=1s") || !strings.Contains(output, "check.present=true") {
		t.Errorf("Expected flattened group attributes, got: %s", output)
	}
}

func TestConsoleHandler_Levels(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelDebug)

	for _, tc := range []struct {
		fn    func(string, ...any)
		label string
	}{
		{logger.Debug, "DBG"},
		{logger.Info, "INF"},
		{logger.Warn, "WRN"},
		{logger.Error, "ERR"},
	} {
		buf.Reset()
		tc.fn("msg")
		if !strings.Contains(buf.String(), " "+tc.label+" msg") {
			t.Errorf("Expected %s, got: %s", tc.label, buf.String())
		}
	}
}

func TestConsoleHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer
	handler := NewConsoleHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "password" {
				return slog.String("password", "***")
			}
			return a
		},
	})

	slog.New(handler).Info("login", "password", "changeme")

	if !strings.Contains(buf.String(), "password=***") {
		t.Errorf("Expected masked password, got: %s", buf.String())
	}
}

func TestConsoleHandler_Enabled(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelWarn)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info must be filtered on warn level, got: %s", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Warn must pass on warn level, got: %s", buf.String())
	}
}

func Test_initialize_rejects_bad_level(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if err := Initialize(cfg); err == nil {
		t.Fatalf("Expected error for invalid level")
	}
}

func Test_initialize_json_format(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	if err := Initialize(cfg); err != nil {
		t.Fatalf("Unable to initialize: %v", err)
	}
	t.Cleanup(func() { _ = Initialize(DefaultConfig()) })

	WithFunc("cli", "Execute").Info("done")

	if !strings.Contains(buf.String(), `"pack":"cli"`) {
		t.Errorf("Expected json output, got: %s", buf.String())
	}
	if GetLevel() != LevelInfo {
		t.Errorf("Expected info level, got: %v", GetLevel())
	}
}
