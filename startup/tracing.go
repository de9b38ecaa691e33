package startup

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "bnbreeze_server"

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	), nil
}

// initTracer falls back to a no-op provider when no collector address is configured.
// The returned shutdown func is never nil.
func initTracer(address string) (trace.Tracer, func() error, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if address == "" {
		return trace.NewNoopTracerProvider().Tracer(serviceName), func() error { return nil }, nil
	}

	exp, err := newExporter(address)
	if err != nil {
		return nil, nil, err
	}
	tp, err := newTraceProvider(exp)
	if err != nil {
		return nil, nil, err
	}
	otel.SetTracerProvider(tp)
	shutdown := func() error {
		ctx, cancel := shutdownContext()
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return tp.Tracer(serviceName), shutdown, nil
}
