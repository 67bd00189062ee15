package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Trace exporters selectable through OTEL_TRACES_EXPORTER.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Instruments bundles the process-wide logger, tracer provider and meter provider.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

type settings struct {
	level    slog.Level
	exporter string
	version  string
	logOut   io.Writer
}

// Option adjusts Init.
type Option func(*settings)

// WithLogLevel overrides LOG_LEVEL.
func WithLogLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithTraceExporter overrides OTEL_TRACES_EXPORTER.
func WithTraceExporter(name string) Option {
	return func(s *settings) { s.exporter = strings.ToLower(strings.TrimSpace(name)) }
}

// WithServiceVersion tags every span and metric with the build version.
func WithServiceVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// WithLogOutput sends the JSON logs somewhere other than stdout.
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.logOut = w
		}
	}
}

// Init installs the slog default logger and the global OpenTelemetry providers. The returned
// shutdown flushes pending telemetry and must be called on exit.
func Init(ctx context.Context, serviceName string, opts ...Option) (*Instruments, func(context.Context) error, error) {
	cfg := settings{
		level:    LogLevel(os.Getenv("LOG_LEVEL")),
		exporter: strings.ToLower(envOrDefault("OTEL_TRACES_EXPORTER", ExporterOTLP)),
		version:  envOrDefault("SERVICE_VERSION", "dev"),
		logOut:   os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := slog.New(slog.NewJSONHandler(cfg.logOut, &slog.HandlerOptions{Level: cfg.level, AddSource: true})).
		With(slog.String("service", serviceName))
	slog.SetDefault(logger)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", cfg.version),
			attribute.String("deployment.environment", envOrDefault("ENVIRONMENT", "local")),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build otel resource: %w", err)
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	exporter, err := spanExporter(ctx, cfg.exporter, logger)
	if err != nil {
		return nil, nil, err
	}
	if exporter != nil {
		traceOpts = append(traceOpts, sdktrace.WithBatcher(exporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return &Instruments{Logger: logger, TracerProvider: tracerProvider, MeterProvider: meterProvider}, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// LogLevel parses debug, info, warn or error. Anything else yields info.
func LogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// spanExporter returns nil for "none". An OTLP exporter that cannot be built falls back to stdout.
func spanExporter(ctx context.Context, name string, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	switch name {
	case ExporterNone:
		return nil, nil
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP, "":
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", name)
	}

	opts := []otlptracehttp.Option{}
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
