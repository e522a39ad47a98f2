package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

type fakeRepo struct {
	orders    []*domain.Order
	insertErr error
}

func (f *fakeRepo) Insert(_ context.Context, order *domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	clone := *order
	f.orders = append(f.orders, &clone)
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]*domain.Order, error) {
	return f.orders, nil
}

type fakeDistance struct {
	meters float64
	err    error
	calls  int
}

func (f *fakeDistance) DrivingDistance(_ context.Context, _, _ string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.meters, nil
}

type fakeReceipts struct {
	fileName string
	err      error
	calls    int
}

func (f *fakeReceipts) Write(_ context.Context, _ *domain.Order) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.fileName, nil
}

type fakeNotifier struct {
	err        error
	calls      int
	gotOrder   *domain.Order
	gotReceipt string
}

func (f *fakeNotifier) OrderConfirmed(_ context.Context, order *domain.Order, receiptURL string) error {
	f.calls++
	f.gotOrder = order
	f.gotReceipt = receiptURL
	return f.err
}

type fixture struct {
	repo     *fakeRepo
	distance *fakeDistance
	receipts *fakeReceipts
	notifier *fakeNotifier
	failures []string
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     &fakeRepo{},
		distance: &fakeDistance{meters: 12000},
		receipts: &fakeReceipts{fileName: "bon_livraison_1741948205000.pdf"},
		notifier: &fakeNotifier{},
	}
	f.service = NewService(f.repo, f.distance, f.receipts, f.notifier, "https://livraison.example.com/",
		testClock(),
		WithCompletionRunner(func(fn func()) { fn() }),
		WithCompletionFailureHook(func(stage string, _ error) { f.failures = append(f.failures, stage) }),
	)
	return f
}

func testClock() Option {
	now := time.Date(2025, 3, 14, 10, 30, 5, 0, time.UTC)
	return WithClock(func() time.Time { return now })
}

func TestQuoteTariff_PricesDistance(t *testing.T) {
	f := newFixture(t)

	tariff, err := f.service.QuoteTariff(context.Background(), "Dakar", "Thiès")
	require.NoError(t, err)
	require.Equal(t, domain.Tariff(3500), tariff)
	require.Equal(t, 1, f.distance.calls)
}

func TestQuoteTariff_DistanceUnavailable(t *testing.T) {
	f := newFixture(t)
	f.distance.err = ports.ErrNoRoute

	_, err := f.service.QuoteTariff(context.Background(), "Dakar", "Atlantide")

	var unavailable *DistanceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Equal(t, "Dakar", unavailable.Departure)
	require.Equal(t, "Atlantide", unavailable.Arrival)
	require.ErrorIs(t, err, ports.ErrNoRoute)
}

func TestConfirmDelivery_PersistsAndNotifies(t *testing.T) {
	f := newFixture(t)

	confirmation, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar, Sénégal",
		ArrivalAddress:   "Thiès, Sénégal",
		ClientName:       "Awa",
	})
	require.NoError(t, err)
	require.Equal(t, "CMD-20250314103005", confirmation.Order.Reference)
	require.Equal(t, "3500 FCFA", confirmation.Order.Tariff)
	require.Equal(t, "https://livraison.example.com/pdf/bon_livraison_1741948205000.pdf", confirmation.ReceiptURL)

	require.Len(t, f.repo.orders, 1)
	require.Equal(t, 1, f.receipts.calls)
	require.Equal(t, 1, f.notifier.calls)
	require.Equal(t, confirmation.ReceiptURL, f.notifier.gotReceipt)
	require.Empty(t, f.failures)
}

func TestConfirmDelivery_DefaultsClientName(t *testing.T) {
	f := newFixture(t)

	confirmation, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar",
		ArrivalAddress:   "Thiès",
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultClientName, confirmation.Order.ClientName)
}

func TestConfirmDelivery_DistanceUnavailable_NoSideEffects(t *testing.T) {
	f := newFixture(t)
	f.distance.err = errors.New("connection refused")

	_, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar",
		ArrivalAddress:   "Thiès",
	})

	var unavailable *DistanceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Zero(t, f.receipts.calls)
	require.Empty(t, f.repo.orders)
	require.Zero(t, f.notifier.calls)
}

func TestConfirmDelivery_ReceiptWriteFailed_StopsFlow(t *testing.T) {
	f := newFixture(t)
	f.receipts.err = errors.New("disk full")

	_, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar",
		ArrivalAddress:   "Thiès",
	})

	require.ErrorIs(t, err, ErrReceiptWrite)
	require.Empty(t, f.repo.orders)
	require.Zero(t, f.notifier.calls)
}

func TestConfirmDelivery_NotificationFailureIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("gateway timeout")

	confirmation, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar",
		ArrivalAddress:   "Thiès",
		ClientName:       "Awa",
	})

	require.NoError(t, err)
	require.Equal(t, "Awa", confirmation.Order.ClientName)
	require.Len(t, f.repo.orders, 1)
	require.Equal(t, []string{StageNotification}, f.failures)
}

func TestConfirmDelivery_PersistenceFailureIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.repo.insertErr = errors.New("write concern error")

	_, err := f.service.ConfirmDelivery(context.Background(), ports.ConfirmDeliveryInput{
		DepartureAddress: "Dakar",
		ArrivalAddress:   "Thiès",
	})

	require.NoError(t, err)
	require.Equal(t, 1, f.notifier.calls)
	require.Equal(t, []string{StagePersistence}, f.failures)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	f.repo.orders = []*domain.Order{{Reference: "CMD-20250314103005"}}

	orders, err := f.service.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
