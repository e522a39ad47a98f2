package ports

import (
	"context"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

// Notifier delivers the confirmation message to the customer, pointing at
// the public receipt URL.
type Notifier interface {
	OrderConfirmed(ctx context.Context, order *domain.Order, receiptURL string) error
}
