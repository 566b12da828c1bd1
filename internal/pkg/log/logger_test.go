/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}

func TestLogger(t *testing.T) {
	const module = "sample-module"

	t.Run("Default level", func(t *testing.T) {
		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithStdErr(stdErr))

		logger.Debug("Sample debug log")
		logger.Info("Sample info log")
		logger.Warn("Sample warn log")
		logger.Error("Sample error log")

		require.Panics(t, func() {
			logger.Panic("Sample panic log")
		})

		require.NotContains(t, stdOut.String(), "DEBUG")
		require.Contains(t, stdOut.String(), "INFO")
		require.Contains(t, stdOut.String(), "WARN")
		require.NotContains(t, stdOut.String(), "PANIC")

		require.NotContains(t, stdErr.String(), "INFO")
		require.Contains(t, stdErr.String(), "ERROR")
		require.Contains(t, stdErr.String(), "PANIC")
	})

	t.Run("DEBUG", func(t *testing.T) {
		SetLevel(module, DEBUG)
		defer SetLevel(module, INFO)

		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithStdErr(stdErr))

		logger.Debug("Sample debug log")
		logger.Info("Sample info log")

		require.Contains(t, stdOut.String(), "DEBUG")
		require.Contains(t, stdOut.String(), "INFO")
		require.Empty(t, stdErr.String())
	})

	t.Run("ERROR", func(t *testing.T) {
		SetLevel(module, ERROR)
		defer SetLevel(module, INFO)

		stdOut := newMockWriter()
		stdErr := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithStdErr(stdErr))

		logger.Debug("Sample debug log")
		logger.Info("Sample info log")
		logger.Warn("Sample warn log")
		logger.Error("Sample error log")

		require.Empty(t, stdOut.String())
		require.Contains(t, stdErr.String(), "ERROR")
	})

	t.Run("JSON encoding with fields", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := New(module, WithStdOut(stdOut), WithEncoding(JSON),
			WithFields(WithName("engine")))

		logger.Info("Sample info log", WithID("id-1"), WithDuration(time.Second),
			WithError(errors.New("boom")))

		out := stdOut.String()
		require.Contains(t, out, `"level":"info"`)
		require.Contains(t, out, `"name":"engine"`)
		require.Contains(t, out, `"id":"id-1"`)
		require.Contains(t, out, `"duration":"1s"`)
		require.Contains(t, out, `"error":"boom"`)
	})
}

func TestLogger_ContextVariants(t *testing.T) {
	const module = "context-module"

	tp := sdktrace.NewTracerProvider()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	stdOut := newMockWriter()
	stdErr := newMockWriter()

	SetLevel(module, DEBUG)
	defer SetLevel(module, INFO)

	logger := New(module, WithStdOut(stdOut), WithStdErr(stdErr), WithEncoding(JSON))

	logger.Debugc(ctx, "debug with span")
	logger.Infoc(ctx, "info with span")
	logger.Warnc(context.Background(), "warn without span")
	logger.Errorc(ctx, "error with span")

	require.Contains(t, stdOut.String(), span.SpanContext().TraceID().String())
	require.Contains(t, stdOut.String(), `"spanID"`)
	require.Contains(t, stdOut.String(), "warn without span")
	require.Contains(t, stdErr.String(), span.SpanContext().SpanID().String())
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Level
	}{
		{in: "debug", out: DEBUG},
		{in: "INFO", out: INFO},
		{in: "warning", out: WARNING},
		{in: "WARN", out: WARNING},
		{in: "error", out: ERROR},
		{in: "panic", out: PANIC},
		{in: "FATAL", out: FATAL},
	} {
		level, err := ParseLevel(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.out, level)
	}

	_, err := ParseLevel("loud")
	require.EqualError(t, err, "logger: invalid log level")

	require.Equal(t, "Level(42)", Level(42).String())
}

func TestSetSpec(t *testing.T) {
	defer func() {
		require.NoError(t, SetSpec("INFO"))
	}()

	require.NoError(t, SetSpec("module1=debug:module2=error:warning"))

	require.Equal(t, DEBUG, GetLevel("module1"))
	require.Equal(t, ERROR, GetLevel("module2"))
	require.Equal(t, WARNING, GetLevel("unknown-module"))

	spec := GetSpec()
	require.Contains(t, spec, "module1=DEBUG:")
	require.Contains(t, spec, "module2=ERROR:")
	require.True(t, len(spec) > 4 && spec[len(spec)-4:] == "WARN")

	require.EqualError(t, SetSpec("info:debug"), "multiple default values found")
	require.Error(t, SetSpec("module1=loud"))
	require.Error(t, SetSpec("loud"))

	SetDefaultLevel(ERROR)
	require.Equal(t, ERROR, GetLevel("another-module"))
}
