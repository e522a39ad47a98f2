package ports

import (
	"context"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

// ConfirmDeliveryInput carries everything the confirmation flow needs.
// Addresses arrive already formatted.
type ConfirmDeliveryInput struct {
	DepartureAddress string
	ArrivalAddress   string
	ClientName       string
}

// Confirmation reports a confirmed delivery back to the transport layer.
type Confirmation struct {
	Order      *domain.Order
	ReceiptURL string
}

// Service exposes the fulfillment use cases consumed by the HTTP
// transport.
type Service interface {
	QuoteTariff(ctx context.Context, departure, arrival string) (domain.Tariff, error)
	ConfirmDelivery(ctx context.Context, input ConfirmDeliveryInput) (*Confirmation, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
