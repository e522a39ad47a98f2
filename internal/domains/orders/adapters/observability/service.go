package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

const tracerName = "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/observability/service"

var _ ports.Service = (*Service)(nil)

// Service decorates the orders service with tracing, logging, and
// metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) QuoteTariff(ctx context.Context, departure, arrival string) (domain.Tariff, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.QuoteTariff",
		trace.WithAttributes(attribute.String("order.departure", departure), attribute.String("order.arrival", arrival)))
	defer span.End()

	tariff, err := s.inner.QuoteTariff(ctx, departure, arrival)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "tariff quote failed",
			slog.String("departure", departure), slog.String("arrival", arrival))
	}
	s.metrics.recordQuoted(ctx)
	s.logInfo(ctx, "tariff quoted",
		slog.String("departure", departure),
		slog.String("arrival", arrival),
		slog.String("tariff", tariff.Label()),
	)
	return tariff, nil
}

func (s *Service) ConfirmDelivery(ctx context.Context, input ports.ConfirmDeliveryInput) (*ports.Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmDelivery",
		trace.WithAttributes(attribute.String("order.departure", input.DepartureAddress), attribute.String("order.arrival", input.ArrivalAddress)))
	defer span.End()

	confirmation, err := s.inner.ConfirmDelivery(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "delivery confirmation failed",
			slog.String("departure", input.DepartureAddress), slog.String("arrival", input.ArrivalAddress))
	}
	span.SetAttributes(attribute.String("order.reference", confirmation.Order.Reference))
	s.metrics.recordConfirmed(ctx)
	s.logInfo(ctx, "delivery confirmed",
		slog.String("reference", confirmation.Order.Reference),
		slog.String("client", confirmation.Order.ClientName),
		slog.String("tariff", confirmation.Order.Tariff),
	)
	return confirmation, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order listing failed")
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	tariffsQuoted      metric.Int64Counter
	ordersConfirmed    metric.Int64Counter
	completionFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	tariffsQuoted, _ := m.Int64Counter("orders.service.tariffs_quoted", metric.WithDescription("Number of tariffs quoted"))
	ordersConfirmed, _ := m.Int64Counter("orders.service.orders_confirmed", metric.WithDescription("Number of deliveries confirmed"))
	completionFailures, _ := m.Int64Counter("orders.service.completion_failures", metric.WithDescription("Best-effort completion failures by stage"))
	return serviceMetrics{tariffsQuoted: tariffsQuoted, ordersConfirmed: ordersConfirmed, completionFailures: completionFailures}
}

func (m serviceMetrics) recordQuoted(ctx context.Context) {
	if m.tariffsQuoted != nil {
		m.tariffsQuoted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordConfirmed(ctx context.Context) {
	if m.ordersConfirmed != nil {
		m.ordersConfirmed.Add(ctx, 1)
	}
}

// CompletionFailureHook returns an observer for the application service's
// best-effort completions. Persistence and notification failures never
// change the caller-visible reply, so counting them here is the only
// place they surface besides the log.
func CompletionFailureHook(m metric.Meter) func(stage string, err error) {
	metrics := newServiceMetrics(m)
	return func(stage string, _ error) {
		if metrics.completionFailures != nil {
			metrics.completionFailures.Add(context.Background(), 1,
				metric.WithAttributes(attribute.String("completion.stage", stage)))
		}
	}
}
