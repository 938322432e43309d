package domain

import (
	"errors"
	"testing"
)

func TestFormatOrderID(t *testing.T) {
	cases := map[int]string{
		1:      "order-00001",
		42:     "order-00042",
		99999:  "order-99999",
		100000: "order-100000",
	}
	for n, want := range cases {
		if got := FormatOrderID(n); got != want {
			t.Fatalf("FormatOrderID(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if st, err := ParseOrderStatus(" Confirmed "); err != nil || st != StatusConfirmed {
		t.Fatalf("got %q, %v", st, err)
	}
	if _, err := ParseOrderStatus("shipped"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		noop    bool
		wantErr bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, false, false},
		{"pending straight to ready", StatusPending, StatusReady, false, false},
		{"cancel from pending", StatusPending, StatusCancelled, false, false},
		{"cancel from confirmed", StatusConfirmed, StatusCancelled, false, false},
		{"cancel from preparing", StatusPreparing, StatusCancelled, false, false},
		{"cancel from ready", StatusReady, StatusCancelled, false, false},
		{"cancel when cancelled is noop", StatusCancelled, StatusCancelled, true, false},
		{"cancel when delivered is noop", StatusDelivered, StatusCancelled, true, false},
		{"same state is noop", StatusPreparing, StatusPreparing, true, false},
		{"leave delivered rejected", StatusDelivered, StatusPending, false, true},
		{"leave cancelled rejected", StatusCancelled, StatusConfirmed, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &Order{ID: "order-00001", Status: tc.from}
			noop, err := o.PlanTransition(tc.to)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if noop != tc.noop {
				t.Fatalf("noop = %v, want %v", noop, tc.noop)
			}
		})
	}
}

func TestPricingTotals(t *testing.T) {
	p := Pricing{TaxRateBps: 800, DeliveryFeeCents: 500, FreeDeliveryAtCents: 5000}

	items := []CartItem{{ProductID: "cupcake", Name: "cupcake", PriceCents: 250, Quantity: 3}}
	got := p.Totals(items)
	if got.SubtotalCents != 750 {
		t.Fatalf("subtotal = %d, want 750", got.SubtotalCents)
	}
	if got.TaxCents != 60 {
		t.Fatalf("tax = %d, want 60", got.TaxCents)
	}
	if got.DeliveryFeeCents != 500 {
		t.Fatalf("fee = %d, want 500", got.DeliveryFeeCents)
	}
	if got.TotalCents != 1310 {
		t.Fatalf("total = %d, want 1310", got.TotalCents)
	}
}

func TestPricingFreeDeliveryThreshold(t *testing.T) {
	p := Pricing{TaxRateBps: 0, DeliveryFeeCents: 500, FreeDeliveryAtCents: 5000}
	items := []CartItem{{ProductID: "cake", Name: "cake", PriceCents: 5000, Quantity: 1}}
	if got := p.Totals(items); got.DeliveryFeeCents != 0 || got.TotalCents != 5000 {
		t.Fatalf("expected waived fee, got %+v", got)
	}
}

func TestPricingTaxRoundsHalfUp(t *testing.T) {
	p := Pricing{TaxRateBps: 800}
	// 131 * 8% = 10.48 -> 10; 132 * 8% = 10.56 -> 11
	low := p.Totals([]CartItem{{ProductID: "x", Name: "x", PriceCents: 131, Quantity: 1}})
	high := p.Totals([]CartItem{{ProductID: "x", Name: "x", PriceCents: 132, Quantity: 1}})
	if low.TaxCents != 10 || high.TaxCents != 11 {
		t.Fatalf("tax rounding: got %d and %d, want 10 and 11", low.TaxCents, high.TaxCents)
	}
}
