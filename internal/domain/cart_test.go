package domain

import "testing"

func item(id string, price int64, qty int) CartItem {
	return CartItem{ProductID: id, Name: id, PriceCents: price, Quantity: qty}
}

func TestCartSubtotalTracksOperations(t *testing.T) {
	cart := &Cart{}

	cart.AddItem(item("croissant", 350, 2))
	cart.AddItem(item("baguette", 400, 1))
	if got := cart.SubtotalCents(); got != 1100 {
		t.Fatalf("subtotal after adds = %d, want 1100", got)
	}

	// Adding an existing product increments quantity, never duplicates.
	cart.AddItem(item("croissant", 350, 1))
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cart.Items))
	}
	if got := cart.SubtotalCents(); got != 1450 {
		t.Fatalf("subtotal after increment = %d, want 1450", got)
	}

	cart.SetQuantity("baguette", 3)
	if got := cart.SubtotalCents(); got != 2250 {
		t.Fatalf("subtotal after set = %d, want 2250", got)
	}

	cart.RemoveItem("croissant")
	if got := cart.SubtotalCents(); got != 1200 {
		t.Fatalf("subtotal after remove = %d, want 1200", got)
	}

	cart.Clear()
	if got := cart.SubtotalCents(); got != 0 || len(cart.Items) != 0 {
		t.Fatalf("cleared cart: subtotal=%d items=%d", got, len(cart.Items))
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	a := &Cart{}
	b := &Cart{}
	for _, c := range []*Cart{a, b} {
		c.AddItem(item("cupcake", 250, 3))
		c.AddItem(item("scone", 300, 1))
	}

	a.SetQuantity("cupcake", 0)
	b.RemoveItem("cupcake")

	if len(a.Items) != len(b.Items) || a.SubtotalCents() != b.SubtotalCents() {
		t.Fatalf("setQuantity(0) and remove diverged: %v vs %v", a.Items, b.Items)
	}
	if len(a.Items) != 1 || a.Items[0].ProductID != "scone" {
		t.Fatalf("unexpected remaining items: %v", a.Items)
	}
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(item("pie", 900, 1))
	cart.SetQuantity("pie", -2)
	if len(cart.Items) != 0 {
		t.Fatalf("negative quantity should remove the item, got %v", cart.Items)
	}
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(item("a", 100, 1))
	cart.AddItem(item("b", 100, 1))
	cart.AddItem(item("c", 100, 1))
	cart.AddItem(item("a", 100, 1)) // increment must not reorder

	want := []string{"a", "b", "c"}
	for i, id := range want {
		if cart.Items[i].ProductID != id {
			t.Fatalf("position %d = %s, want %s", i, cart.Items[i].ProductID, id)
		}
	}
}

func TestCartItemValidate(t *testing.T) {
	cases := []struct {
		name    string
		item    CartItem
		wantErr bool
	}{
		{"valid", item("tart", 500, 1), false},
		{"missing id", CartItem{Name: "tart", PriceCents: 500, Quantity: 1}, true},
		{"missing name", CartItem{ProductID: "tart", PriceCents: 500, Quantity: 1}, true},
		{"negative price", CartItem{ProductID: "tart", Name: "tart", PriceCents: -1, Quantity: 1}, true},
		{"zero quantity", CartItem{ProductID: "tart", Name: "tart", PriceCents: 500}, true},
		{"free item ok", CartItem{ProductID: "sample", Name: "sample", Quantity: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCloneItemsIsDeep(t *testing.T) {
	src := []CartItem{{ProductID: "cake", Name: "cake", PriceCents: 2000, Quantity: 1, Options: map[string]string{"size": "large"}}}
	cloned := CloneItems(src)

	src[0].Quantity = 9
	src[0].Options["size"] = "tiny"

	if cloned[0].Quantity != 1 {
		t.Fatalf("clone shares quantity with source")
	}
	if cloned[0].Options["size"] != "large" {
		t.Fatalf("clone shares options map with source")
	}
}
