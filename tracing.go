package main

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const serviceName = "spotify-search-bot"

func newSpanExporter(ctx context.Context, endpoint string) (trace.SpanExporter, error) {
	opts := []otlptracehttp.Option{}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithInsecure(), otlptracehttp.WithEndpoint(endpoint))
	}

	return otlptracehttp.New(ctx, opts...)
}

func newTracerProvider(spanExporter trace.SpanExporter) (*trace.TracerProvider, error) {
	// The semconv import must match the schema the sdk's detectors use, or
	// the merge fails with a schema URL conflict.
	res, err := resource.New(context.Background(),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithContainer(),
		resource.WithHost(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithSchemaURL(semconv.SchemaURL),
	)
	if errors.Is(err, resource.ErrPartialResource) && !errors.Is(err, resource.ErrSchemaURLConflict) {
		logrus.WithError(err).Warn("Some resource attributes could not be detected")
	} else if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(spanExporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.AlwaysSample())),
	), nil
}
