package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
)

const tracerName = "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/observability/service"

// Service decorates the designs port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// List returns the design library.
func (s *Service) List(ctx context.Context) ([]*ports.DesignProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list designs")
	}
	span.SetAttributes(attribute.Int("design.result.count", len(result)))
	s.logInfo(ctx, "listed designs", slog.Int("count", len(result)))
	return result, nil
}

// GetByID loads one design.
func (s *Service) GetByID(ctx context.Context, id int64) (*ports.DesignProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetByID", trace.WithAttributes(attribute.Int64("design.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load design", slog.Int64("design.id", id))
	}
	return result, nil
}

// Delete removes a design and counts the deletion.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "Service.Delete", trace.WithAttributes(attribute.Int64("design.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting design", slog.Int64("design.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete design", slog.Int64("design.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "design deleted", slog.Int64("design.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	designsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	designsDeleted, _ := m.Int64Counter("designs.service.deleted", metric.WithDescription("Number of designs deleted"))
	return serviceMetrics{designsDeleted: designsDeleted}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.designsDeleted == nil {
		return
	}
	m.designsDeleted.Add(ctx, 1)
}

var _ ports.Service = (*Service)(nil)
