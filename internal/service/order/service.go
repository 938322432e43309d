package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"bakeshop/internal/domain"
	orderrepo "bakeshop/internal/repository/order"
)

// Service converts a confirmed cart into a committed order, answers order
// queries, and applies admin status transitions.
type Service struct {
	orders   orderRepo
	carts    cartStore
	notifier Notifier
	pricing  domain.Pricing
	logger   *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, target domain.OrderStatus, actorID string) (*domain.Order, error)
}

type cartStore interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	Delete(ctx context.Context, ownerID string) error
}

// Notifier delivers order event mail. Implementations are fire-and-forget
// collaborators; a failure must never fail the owning operation.
type Notifier interface {
	OrderConfirmation(ctx context.Context, to string, o *domain.Order) error
}

// New builds an order service. notifier may be nil.
func New(orders orderRepo, carts cartStore, notifier Notifier, pricing domain.Pricing, logger *log.Logger) *Service {
	return &Service{orders: orders, carts: carts, notifier: notifier, pricing: pricing, logger: logger}
}

// CreateInput is a checkout submission. IdempotencyKey is optional and
// client-generated; a retried submission with the same key returns the
// original order instead of committing a duplicate.
type CreateInput struct {
	UserID         string
	Email          string
	Address        string
	Phone          string
	Notes          string
	IdempotencyKey string
}

// Create reads the owner's server cart, computes totals, commits the
// order with an atomically assigned identifier, and only then clears the
// cart. The committed order embeds a snapshot of the items; later cart
// mutations never touch it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	uid := strings.TrimSpace(in.UserID)
	if uid == "" {
		return nil, errors.New("owner required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, fmt.Errorf("%w: address required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, fmt.Errorf("%w: phone required", domain.ErrInvalidInput)
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" {
		if _, err := uuid.Parse(key); err != nil {
			return nil, fmt.Errorf("%w: idempotency key must be a UUID", domain.ErrInvalidInput)
		}
	}

	cart, err := s.carts.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	// With an idempotency key the empty-cart check is left to the
	// repository: a retried checkout finds the cart already cleared by
	// the committed first attempt, and must reach the key registry
	// instead of being rejected here.
	if len(cart.Items) == 0 && key == "" {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}

	order, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:         uid,
		Items:          domain.CloneItems(cart.Items),
		Totals:         s.pricing.Totals(cart.Items),
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		Notes:          strings.TrimSpace(in.Notes),
		IdempotencyKey: key,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderExists) {
			// Never mask a collision: the order that is already there
			// must not be overwritten.
			s.logger.Printf("DATA INTEGRITY: order identifier collision for user %s: %v", uid, err)
		}
		return nil, err
	}

	// The cart is cleared only after the commit is acknowledged. A failed
	// clear leaves a stale cart behind, which is recoverable; a cleared
	// cart without a committed order would not be.
	if err := s.carts.Delete(ctx, uid); err != nil {
		s.logger.Printf("order %s committed but cart clear failed for user %s: %v", order.ID, uid, err)
	}

	s.notifyConfirmation(in.Email, order)
	return order, nil
}

// notifyConfirmation fires the confirmation mail without blocking or
// failing checkout.
func (s *Service) notifyConfirmation(email string, o *domain.Order) {
	if s.notifier == nil || strings.TrimSpace(email) == "" {
		return
	}
	go func(to string, snapshot domain.Order) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.OrderConfirmation(ctx, to, &snapshot); err != nil {
			s.logger.Printf("order %s confirmation mail failed: %v", snapshot.ID, err)
		}
	}(email, *o)
}

// Get returns one order. Non-admin callers only see their own.
func (s *Service) Get(ctx context.Context, id, userID string, admin bool) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListByUser returns the caller's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("owner required")
	}
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin only; the route layer
// enforces that.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus applies an admin-initiated transition. Every applied
// transition records the acting admin and a timestamp; cancelling an
// already-cancelled or delivered order is a no-op, not an error.
func (s *Service) UpdateStatus(ctx context.Context, id, statusRaw, actorID string) (*domain.Order, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, errors.New("actor required")
	}
	target, err := domain.ParseOrderStatus(statusRaw)
	if err != nil {
		return nil, err
	}
	return s.orders.UpdateStatus(ctx, id, target, actorID)
}
