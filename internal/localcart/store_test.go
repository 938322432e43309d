package localcart

import (
	"os"
	"path/filepath"
	"testing"

	"bakeshop/internal/domain"
)

func item(id string, price int64, qty int) domain.CartItem {
	return domain.CartItem{ProductID: id, Name: id, PriceCents: price, Quantity: qty}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	s := Open(path)
	if err := s.Add(item("croissant", 350, 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(item("baguette", 400, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened := Open(path)
	items := reopened.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after reopen, got %d", len(items))
	}
	if got := reopened.SubtotalCents(); got != 1100 {
		t.Fatalf("subtotal after reopen = %d, want 1100", got)
	}
}

func TestMalformedFileLoadsAsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := Open(path)
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("malformed file should load as empty cart, got %v", items)
	}

	// The store must stay usable afterwards.
	if err := s.Add(item("scone", 300, 1)); err != nil {
		t.Fatalf("add after malformed load: %v", err)
	}
	if got := Open(path).SubtotalCents(); got != 300 {
		t.Fatalf("subtotal = %d, want 300", got)
	}
}

func TestMissingFileLoadsAsEmptyCart(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "never-written.json"))
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}
}

func TestInvalidEntriesDroppedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	raw := `{"items":[
		{"productId":"good","name":"good","priceCents":100,"quantity":1},
		{"productId":"","name":"no id","priceCents":100,"quantity":1},
		{"productId":"zeroqty","name":"zeroqty","priceCents":100,"quantity":0}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	items := Open(path).Items()
	if len(items) != 1 || items[0].ProductID != "good" {
		t.Fatalf("expected only the valid entry, got %v", items)
	}
}

func TestAddIncrementsExisting(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "cart.json"))
	_ = s.Add(item("cupcake", 250, 2))
	_ = s.Add(item("cupcake", 250, 3))

	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected one entry with qty 5, got %v", items)
	}
}

func TestSetQuantityZeroRemovesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s := Open(path)
	_ = s.Add(item("pie", 900, 1))
	_ = s.Add(item("tart", 500, 2))

	if err := s.SetQuantity("pie", 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	items := Open(path).Items()
	if len(items) != 1 || items[0].ProductID != "tart" {
		t.Fatalf("expected only tart to survive, got %v", items)
	}
}

func TestClearPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s := Open(path)
	_ = s.Add(item("bread", 400, 1))
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if items := Open(path).Items(); len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %v", items)
	}
}

func TestAddRejectsInvalidItem(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "cart.json"))
	if err := s.Add(domain.CartItem{ProductID: "x", Name: "x", Quantity: 0}); err == nil {
		t.Fatalf("expected validation error")
	}
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("invalid item must not be stored, got %v", items)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "cart.json"))
	_ = s.Add(item("donut", 150, 1))

	items := s.Items()
	items[0].Quantity = 99

	if got := s.Items()[0].Quantity; got != 1 {
		t.Fatalf("external mutation leaked into store: qty=%d", got)
	}
}
