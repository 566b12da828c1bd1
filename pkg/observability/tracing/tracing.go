/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tracing

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/internal/pkg/log"
)

var logger = log.New("tracing")

// SpanExporterType specifies the type of span exporter used by tracer provider.
type SpanExporterType = string

const (
	None   SpanExporterType = ""
	Jaeger SpanExporterType = "JAEGER"
	Stdout SpanExporterType = "STDOUT"
)

const (
	JaegerAgentEndpointEnvKey     = "OTEL_EXPORTER_JAEGER_AGENT_HOST"
	JaegerCollectorEndpointEnvKey = "OTEL_EXPORTER_JAEGER_ENDPOINT"
	tracerName                    = "https://github.com/trustbloc/anonid"
)

// IsExportedSupported reports whether exporter names a supported span exporter.
func IsExportedSupported(exporter SpanExporterType) bool {
	return lo.Contains([]SpanExporterType{None, Jaeger, Stdout}, exporter)
}

// Initialize creates and registers globally a new tracer provider with specified span exporter.
// The returned func shuts the provider down and should run before the process exits. With no exporter
// a no-op provider is returned.
func Initialize(exporter SpanExporterType, serviceName string) (func(), trace.TracerProvider, error) {
	if exporter == None {
		return func() {}, trace.NewNoopTracerProvider(), nil
	}

	var (
		spanExporter tracesdk.SpanExporter
		err          error
	)

	switch exporter {
	case Jaeger:
		var endpoint jaeger.EndpointOption

		switch {
		case os.Getenv(JaegerAgentEndpointEnvKey) != "":
			endpoint = jaeger.WithAgentEndpoint()
		case os.Getenv(JaegerCollectorEndpointEnvKey) != "":
			endpoint = jaeger.WithCollectorEndpoint()
		default:
			return nil, nil, fmt.Errorf("neither agent nor collector endpoint is provided")
		}

		spanExporter, err = jaeger.New(endpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("create jaeger exporter: %w", err)
		}
	case Stdout:
		spanExporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported exporter type: %s", exporter)
	}

	tracerProvider := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(spanExporter),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ProcessPIDKey.Int(os.Getpid()),
		)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func() {
		if err = tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Warn("Error shutting down tracer provider", log.WithError(err))
		}
	}, tracerProvider, nil
}

// Tracer returns the anonid tracer of tp.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	return tp.Tracer(tracerName)
}
