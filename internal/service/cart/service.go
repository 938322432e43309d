package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bakeshop/internal/domain"
)

// Service owns every server-side cart operation for authenticated owners,
// including the one-shot merge of an anonymous cart at login.
type Service struct {
	repo cartRepo

	mu      sync.Mutex
	merging map[string]struct{}
}

type cartRepo interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	Set(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Delete(ctx context.Context, ownerID string) error
}

// New builds a cart service over the given repository.
func New(repo cartRepo) *Service {
	return &Service{repo: repo, merging: make(map[string]struct{})}
}

// Get returns the owner's cart; a missing cart is empty, never an error.
func (s *Service) Get(ctx context.Context, ownerID string) (*domain.Cart, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner required")
	}
	return s.repo.Get(ctx, ownerID)
}

// AddItem admits a validated item into the owner's cart. Adding a product
// already in the cart increments its quantity instead of duplicating the
// entry. The resulting full cart is returned so callers can replace local
// view state without a second read.
func (s *Service) AddItem(ctx context.Context, ownerID string, item domain.CartItem) (*domain.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	cart, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(item)
	return s.repo.Set(ctx, cart)
}

// UpdateQuantity sets a product's quantity; qty <= 0 removes the item,
// mirroring the local store's setQuantity.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID, productID string, qty int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
	}
	cart, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cart.SetQuantity(productID, qty)
	return s.repo.Set(ctx, cart)
}

// RemoveItem drops a product from the owner's cart.
func (s *Service) RemoveItem(ctx context.Context, ownerID, productID string) (*domain.Cart, error) {
	return s.UpdateQuantity(ctx, ownerID, productID, 0)
}

// Clear empties the owner's cart.
func (s *Service) Clear(ctx context.Context, ownerID string) (*domain.Cart, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner required")
	}
	if err := s.repo.Delete(ctx, ownerID); err != nil {
		return nil, err
	}
	return &domain.Cart{OwnerID: ownerID}, nil
}

// Merge folds an anonymous local cart into the owner's server cart: for
// each local item, a product already present server-side gets its
// quantity incremented by the local quantity, otherwise the item is
// appended. The merged collection is written back in a single call; the
// caller clears its local copy only after this returns successfully, so a
// failed merge loses nothing and can be retried.
//
// The merge must run exactly once per anonymous-to-authenticated
// transition. A per-owner in-flight guard rejects a concurrent duplicate
// with domain.ErrMergeInProgress instead of double-counting quantities;
// the guard is released only when this attempt finishes.
func (s *Service) Merge(ctx context.Context, ownerID string, local []domain.CartItem) (*domain.Cart, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner required")
	}
	// Empty local input: nothing to fold in, the server cart is returned
	// unchanged. Re-running a completed merge is therefore a no-op.
	if len(local) == 0 {
		return s.repo.Get(ctx, ownerID)
	}
	for _, it := range local {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}

	if !s.beginMerge(ownerID) {
		return nil, domain.ErrMergeInProgress
	}
	defer s.endMerge(ownerID)

	server, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, it := range local {
		server.AddItem(it)
	}
	return s.repo.Set(ctx, server)
}

func (s *Service) beginMerge(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.merging[ownerID]; busy {
		return false
	}
	s.merging[ownerID] = struct{}{}
	return true
}

// mergeInFlight reports whether a merge currently holds the owner's guard.
func (s *Service) mergeInFlight(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.merging[ownerID]
	return busy
}

func (s *Service) endMerge(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.merging, ownerID)
}
