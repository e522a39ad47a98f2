package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

// Completion stages reported to the failure hook.
const (
	StagePersistence  = "persistence"
	StageNotification = "notification"
)

// Service orchestrates the fulfillment use cases: quoting a delivery
// tariff and confirming a delivery. Each confirmation is single-shot:
// distance lookup, order construction, and receipt rendering run in
// sequence, then persistence and the customer notification complete in
// the background without blocking the reply.
type Service struct {
	repo     ports.Repository
	distance ports.DistanceEstimator
	receipts ports.ReceiptWriter
	notifier ports.Notifier

	publicBaseURL string
	logger        *slog.Logger
	now           func() time.Time
	complete      func(func())
	onFailure     func(stage string, err error)
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger attaches the structured logger used for background
// completion outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for order dates and references.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCompletionRunner overrides how best-effort completions are
// scheduled. The default runs each one on its own goroutine; tests
// substitute a synchronous runner.
func WithCompletionRunner(run func(func())) Option {
	return func(s *Service) {
		if run != nil {
			s.complete = run
		}
	}
}

// WithCompletionFailureHook registers an observer invoked whenever a
// background completion fails. Failures never alter the caller-visible
// result; the hook exists so they are counted instead of dropped.
func WithCompletionFailureHook(fn func(stage string, err error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.onFailure = fn
		}
	}
}

// NewService wires the fulfillment workflow. publicBaseURL is the
// externally reachable prefix under which receipts are served.
func NewService(
	repo ports.Repository,
	distance ports.DistanceEstimator,
	receipts ports.ReceiptWriter,
	notifier ports.Notifier,
	publicBaseURL string,
	opts ...Option,
) *Service {
	s := &Service{
		repo:          repo,
		distance:      distance,
		receipts:      receipts,
		notifier:      notifier,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
		complete:      func(fn func()) { go fn() },
		onFailure:     func(string, error) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// QuoteTariff prices the trip between two formatted addresses. Every call
// performs a fresh distance lookup; any lookup failure is reported as a
// DistanceUnavailableError and never retried.
func (s *Service) QuoteTariff(ctx context.Context, departure, arrival string) (domain.Tariff, error) {
	meters, err := s.distance.DrivingDistance(ctx, departure, arrival)
	if err != nil {
		return 0, &DistanceUnavailableError{Departure: departure, Arrival: arrival, Err: err}
	}
	return domain.TariffForDistance(meters), nil
}

// ConfirmDelivery runs the confirmation flow: price the trip, build the
// order, render its delivery note. Once the note is on disk the order is
// handed to persistence and the customer notification as best-effort
// background completions; their outcome does not change the returned
// confirmation.
func (s *Service) ConfirmDelivery(ctx context.Context, input ports.ConfirmDeliveryInput) (*ports.Confirmation, error) {
	tariff, err := s.QuoteTariff(ctx, input.DepartureAddress, input.ArrivalAddress)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(input.DepartureAddress, input.ArrivalAddress, tariff, input.ClientName, s.now())
	if err != nil {
		return nil, err
	}

	fileName, err := s.receipts.Write(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReceiptWrite, err)
	}
	receiptURL := s.publicBaseURL + "/pdf/" + fileName

	// Detached from the request context so sending the reply does not
	// cancel the store write or the outgoing message.
	bgCtx := context.WithoutCancel(ctx)
	s.complete(func() { s.persistOrder(bgCtx, order) })
	s.complete(func() { s.notifyCustomer(bgCtx, order, receiptURL) })

	return &ports.Confirmation{Order: order, ReceiptURL: receiptURL}, nil
}

// ListOrders returns every persisted order.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) persistOrder(ctx context.Context, order *domain.Order) {
	if err := s.repo.Insert(ctx, order); err != nil {
		s.logger.Error("order persistence failed",
			slog.String("reference", order.Reference),
			slog.String("error", err.Error()),
		)
		s.onFailure(StagePersistence, err)
		return
	}
	s.logger.Info("order persisted", slog.String("reference", order.Reference))
}

func (s *Service) notifyCustomer(ctx context.Context, order *domain.Order, receiptURL string) {
	if err := s.notifier.OrderConfirmed(ctx, order, receiptURL); err != nil {
		s.logger.Error("customer notification failed",
			slog.String("reference", order.Reference),
			slog.String("error", err.Error()),
		)
		s.onFailure(StageNotification, err)
		return
	}
	s.logger.Info("customer notified", slog.String("reference", order.Reference))
}
