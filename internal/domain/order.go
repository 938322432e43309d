package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of a committed order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a status string coming off the wire.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

// Terminal reports whether no further transitions may leave the state.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// FormatOrderID renders the human-readable order identifier for a
// sequence number, e.g. 7 -> "order-00007".
func FormatOrderID(n int) string {
	return fmt.Sprintf("order-%05d", n)
}

// OrderTotals are the computed monetary components of an order.
type OrderTotals struct {
	SubtotalCents    int64 `json:"subtotalCents"`
	TaxCents         int64 `json:"taxCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents"`
	TotalCents       int64 `json:"totalCents"`
}

// Pricing computes order totals from cart items. TaxRateBps is the tax
// rate in basis points; the delivery fee is flat and waived at or above
// FreeDeliveryAtCents (0 disables the waiver).
type Pricing struct {
	TaxRateBps          int64
	DeliveryFeeCents    int64
	FreeDeliveryAtCents int64
}

// Totals computes subtotal, tax (rounded half up), delivery fee and the
// final total for the given items.
func (p Pricing) Totals(items []CartItem) OrderTotals {
	cart := Cart{Items: items}
	subtotal := cart.SubtotalCents()
	tax := (subtotal*p.TaxRateBps + 5000) / 10000
	fee := p.DeliveryFeeCents
	if p.FreeDeliveryAtCents > 0 && subtotal >= p.FreeDeliveryAtCents {
		fee = 0
	}
	return OrderTotals{
		SubtotalCents:    subtotal,
		TaxCents:         tax,
		DeliveryFeeCents: fee,
		TotalCents:       subtotal + tax + fee,
	}
}

// Order is a committed checkout. ID, Number, Items and the totals are
// immutable once created; only Status, UpdatedAt and StatusUpdatedBy
// change afterwards.
type Order struct {
	ID              string      `json:"orderId"`
	Number          int         `json:"orderNumber"`
	UserID          string      `json:"userId"`
	Items           []CartItem  `json:"items"`
	Totals          OrderTotals `json:"totals"`
	Address         string      `json:"address"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	Status          OrderStatus `json:"status"`
	IdempotencyKey  string      `json:"-"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	StatusUpdatedBy string      `json:"statusUpdatedBy,omitempty"`
}

// PlanTransition decides what an admin-requested status change means for
// the order's current state. It returns noop=true when the change must be
// silently ignored (cancelling an already-cancelled or delivered order,
// or re-applying the current status). Any other transition out of a
// terminal state is rejected; the machine does not otherwise enforce
// forward-only order, an admin may set any target directly.
func (o *Order) PlanTransition(target OrderStatus) (noop bool, err error) {
	if o.Status == target {
		return true, nil
	}
	if o.Status.Terminal() {
		if target == StatusCancelled {
			return true, nil
		}
		return false, fmt.Errorf("%w: order %s is %s", ErrInvalidInput, o.ID, o.Status)
	}
	return false, nil
}
