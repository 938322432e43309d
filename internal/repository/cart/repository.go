package cart

import (
	"context"

	"bakeshop/internal/domain"
)

// Repository is the per-owner cart document store. Get on a missing
// document returns an empty cart; Set overwrites the whole document
// (two concurrent writers to one owner are last-write-wins at the
// document level, an accepted weakness of the cart store).
type Repository interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	Set(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, ownerID string) error
}
