package ports

import (
	"context"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

// Repository persists confirmed orders. Inserts are independent of each
// other; there is no cross-request invariant to protect, and orders are
// never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]*domain.Order, error)
}
