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

// Package log provides structured logging for the test automation layer
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type Level = slog.Level

const (
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

var levels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

func init() {
	_ = Initialize(DefaultConfig())
}

// Config describes the logger output
type Config struct {
	Level        string    `mapstructure:"level"`     // debug, info, warn, error
	Format       string    `mapstructure:"format"`    // console, json
	UseTimestamp bool      `mapstructure:"timestamp"` // Include timestamp in console lines
	Output       io.Writer `mapstructure:"-"`         // Defaults to stdout

	OtelEnabled  bool   `mapstructure:"otel_enabled"`  // Also export the records to the OTLP collector
	OtelEndpoint string `mapstructure:"otel_endpoint"` // host:port of the OTLP gRPC collector
}

// DefaultConfig returns default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:        "info",
		Format:       "console",
		UseTimestamp: true,
		OtelEndpoint: DefaultOtelEndpoint,
	}
}

// ParseLevel converts string level to slog.Level
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q", levelStr)
	}
}

// Initialize sets up the global logger with the given configuration
func Initialize(config *Config) error {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return err
	}

	var output io.Writer = os.Stdout
	if config.Output != nil {
		output = config.Output
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch config.Format {
	case "console", "":
		consoleHandler := NewConsoleHandler(output, opts)
		consoleHandler.SetUseTimestamp(config.UseTimestamp)
		handler = consoleHandler
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if config.OtelEnabled {
		otelHandler, err := setupOtel(context.Background(), config.OtelEndpoint)
		if err != nil {
			return fmt.Errorf("unable to setup otel for logging: %w", err)
		}
		handler = &multiHandler{level: level, handlers: []slog.Handler{handler, otelHandler}}
	}
	logger = slog.New(handler)

	return nil
}

// GetLevel returns current logging level
func GetLevel() Level {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	for _, lvl := range levels {
		if logger.Handler().Enabled(context.Background(), lvl) {
			return lvl
		}
	}
	return LevelError
}

// WithFunc provides a way to identify package and function executed
// Empty values in the params are replaced with "unknown"
func WithFunc(pack, fun string) *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if pack == "" {
		pack = "unknown"
	}
	if fun == "" {
		fun = "unknown"
	}
	return logger.With("pack", pack, "func", fun)
}
