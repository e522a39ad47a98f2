package ports

import (
	"context"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

// ReceiptWriter renders the delivery note for an order into durable
// storage and returns the generated file name. Names are unique per call,
// so an existing artifact is never overwritten.
type ReceiptWriter interface {
	Write(ctx context.Context, order *domain.Order) (string, error)
}
