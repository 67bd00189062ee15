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

	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/dashboard/ports"
)

const tracerName = "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/adapters/observability/service"

// Service decorates the dashboard port with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	computed metric.Int64Counter
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// WithMeter registers the stats counter on the given meter.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.computed, _ = m.Int64Counter("dashboard.service.stats_computed", metric.WithDescription("Number of dashboard stats computations"))
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Stats computes the dashboard figures.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Stats")
	defer span.End()

	stats, err := s.inner.Stats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to compute stats", slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("dashboard.total_meetings", stats.TotalMeetings),
		attribute.Int64("dashboard.total_designs", stats.TotalDesigns),
	)
	if s.computed != nil {
		s.computed.Add(ctx, 1)
	}
	return stats, nil
}

var _ ports.Service = (*Service)(nil)
