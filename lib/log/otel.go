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
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "robottelo"

// DefaultOtelEndpoint is the OTLP gRPC collector address
const DefaultOtelEndpoint = "localhost:4317"

var (
	otelConn     *grpc.ClientConn
	otelProvider *sdklog.LoggerProvider
)

// setupOtel creates the OTLP log exporter once and returns the slog bridge
// handler on top of it. The gRPC connection is lazy, so unreachable collector
// does not block the tests, the batches are just dropped.
func setupOtel(ctx context.Context, endpoint string) (slog.Handler, error) {
	if otelProvider == nil {
		if endpoint == "" {
			endpoint = DefaultOtelEndpoint
		}
		conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("unable to create grpc client for %q: %w", endpoint, err)
		}
		exp, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("unable to create OTLP log exporter: %w", err)
		}
		res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName))

		otelConn = conn
		otelProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
			sdklog.WithResource(res),
		)
		global.SetLoggerProvider(otelProvider)
	}
	return otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(otelProvider)), nil
}

// Shutdown flushes the buffered OpenTelemetry records and closes the exporter,
// does nothing when the integration was not enabled
func Shutdown(ctx context.Context) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if otelProvider == nil {
		return nil
	}
	err := otelProvider.Shutdown(ctx)
	if cerr := otelConn.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	otelProvider, otelConn = nil, nil
	return err
}

// multiHandler sends the records of the configured level to every handler
type multiHandler struct {
	level    Level
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.level {
		return false
	}
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{level: h.level, handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{level: h.level, handlers: handlers}
}
