package order

import (
	"context"

	"bakeshop/internal/domain"
)

// CreateInput carries everything needed to commit an order. Items are
// snapshotted by the repository; later mutations of the source cart never
// reach a committed order.
type CreateInput struct {
	UserID         string
	Items          []domain.CartItem
	Totals         domain.OrderTotals
	Address        string
	Phone          string
	Notes          string
	IdempotencyKey string
}

// Repository is the durable order log. Create must assign the next
// sequence number atomically: N concurrent creations yield N distinct
// identifiers, never a repeat, and an identifier collision aborts with
// domain.ErrOrderExists rather than overwriting. When CreateInput carries
// an already-registered idempotency key, Create returns the previously
// committed order instead of writing a duplicate.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, target domain.OrderStatus, actorID string) (*domain.Order, error)
}
