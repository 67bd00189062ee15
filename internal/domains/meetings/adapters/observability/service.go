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

	meetingtypes "github.com/Apurer/go-gin-design-library/internal/domains/meetings/application/types"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/ports"
)

const tracerName = "github.com/Apurer/go-gin-design-library/internal/domains/meetings/adapters/observability/service"

// Service decorates the meetings port with tracing, logging, and metrics.
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
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// RecordMeeting stores a meeting with its designs.
func (s *Service) RecordMeeting(ctx context.Context, input meetingtypes.RecordMeetingInput) (*meetingtypes.MeetingDetail, error) {
	ctx, span := s.tracer.Start(ctx, "Service.RecordMeeting", trace.WithAttributes(
		attribute.String("meeting.vendor", input.VendorName),
		attribute.Int("meeting.designs.requested", len(input.Designs)),
		attribute.Bool("meeting.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "recording meeting", slog.String("vendor", input.VendorName), slog.Int("designs", len(input.Designs)))
	result, err := s.inner.RecordMeeting(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record meeting", slog.String("vendor", input.VendorName))
	}
	if result != nil && result.Meeting != nil {
		span.SetAttributes(attribute.Int64("meeting.id", result.Meeting.Entity.ID))
		s.metrics.recordMeeting(ctx, len(result.Designs))
		s.logger.LogAttrs(ctx, slog.LevelInfo, "meeting recorded",
			slog.Int64("meeting.id", result.Meeting.Entity.ID),
			slog.Int("designs", len(result.Designs)),
		)
	}
	return result, nil
}

// List returns meeting summaries.
func (s *Service) List(ctx context.Context) ([]*meetingtypes.MeetingSummary, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list meetings")
	}
	span.SetAttributes(attribute.Int("meeting.result.count", len(result)))
	return result, nil
}

// GetByID loads one meeting with its designs.
func (s *Service) GetByID(ctx context.Context, id int64) (*meetingtypes.MeetingDetail, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetByID", trace.WithAttributes(attribute.Int64("meeting.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load meeting", slog.Int64("meeting.id", id))
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	meetingsRecorded metric.Int64Counter
	designsRecorded  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	meetingsRecorded, _ := m.Int64Counter("meetings.service.recorded", metric.WithDescription("Number of meetings recorded"))
	designsRecorded, _ := m.Int64Counter("designs.service.recorded", metric.WithDescription("Number of designs captured during meetings"))
	return serviceMetrics{meetingsRecorded: meetingsRecorded, designsRecorded: designsRecorded}
}

func (m serviceMetrics) recordMeeting(ctx context.Context, designs int) {
	if m.meetingsRecorded != nil {
		m.meetingsRecorded.Add(ctx, 1)
	}
	if m.designsRecorded != nil && designs > 0 {
		m.designsRecorded.Add(ctx, int64(designs))
	}
}

var _ ports.Service = (*Service)(nil)
