// Package localcart is the anonymous, client-resident cart store. It is
// fully synchronous and never touches the network; every mutation is
// persisted to a local JSON file so the cart survives a restart.
package localcart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bakeshop/internal/domain"
)

type fileCart struct {
	Items     []domain.CartItem `json:"items"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store owns the durable copy of the anonymous cart. Mutations go through
// the shared domain.Cart reducer so local and server semantics match.
type Store struct {
	mu   sync.Mutex
	path string
	cart domain.Cart
}

// Open loads the cart at path. Malformed or unreadable durable data is
// treated as an empty cart: the session must never fail on a bad file.
func Open(path string) *Store {
	s := &Store{path: path}
	s.cart.Items = load(path)
	return s
}

func load(path string) []domain.CartItem {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var fc fileCart
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil
	}
	// Drop entries a hand-edited or corrupted file could carry.
	cart := domain.Cart{}
	for _, it := range fc.Items {
		if it.Validate() != nil {
			continue
		}
		cart.AddItem(it)
	}
	return cart.Items
}

// Add inserts the item, incrementing quantity when the product is already
// present, and persists.
func (s *Store) Add(item domain.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(item)
	return s.persist()
}

// SetQuantity updates a product's quantity and persists; qty <= 0 removes
// the item.
func (s *Store) SetQuantity(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, qty)
	return s.persist()
}

// Remove drops the product and persists.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	return s.persist()
}

// Clear empties the cart and persists.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.persist()
}

// Items returns a copy of the current items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.cart.Items)
}

// SubtotalCents returns the current cart subtotal.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SubtotalCents()
}

// persist writes the full cart through a temp-file rename so a crash
// mid-write cannot leave a truncated file. Callers hold s.mu.
func (s *Store) persist() error {
	s.cart.UpdatedAt = time.Now().UTC()
	raw, err := json.MarshalIndent(fileCart{Items: s.cart.Items, UpdatedAt: s.cart.UpdatedAt}, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
