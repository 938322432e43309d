package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bakeshop/internal/domain"
	"bakeshop/internal/repository/fscodec"
)

const collection = "carts"

// Firestore implements Repository with one document per owner, keyed by
// the owner id (docId is the source of truth for ownership).
type Firestore struct {
	client *firestore.Client
}

// NewFirestore builds a Firestore-backed cart repository.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (r *Firestore) col() *firestore.CollectionRef {
	return r.client.Collection(collection)
}

// Get returns the owner's cart; a missing document is an empty cart, not
// an error.
func (r *Firestore) Get(ctx context.Context, ownerID string) (*domain.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, errors.New("cart repository: ownerID is empty")
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &domain.Cart{OwnerID: oid}, nil
		}
		return nil, err
	}

	cart := decodeCart(snap.Data())
	cart.OwnerID = oid
	return cart, nil
}

// Set overwrites the owner's cart document with the full item collection
// and returns the stored state.
func (r *Firestore) Set(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart repository: cart is nil")
	}
	oid := strings.TrimSpace(cart.OwnerID)
	if oid == "" {
		return nil, errors.New("cart repository: ownerID is empty")
	}

	now := time.Now().UTC()
	doc := cartDoc{
		Items:     make([]itemDoc, 0, len(cart.Items)),
		UpdatedAt: now,
	}
	for _, it := range cart.Items {
		if it.Quantity <= 0 {
			continue
		}
		doc.Items = append(doc.Items, itemDoc{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			ImageURL:   it.ImageURL,
			Options:    it.Options,
		})
	}

	if _, err := r.col().Doc(oid).Set(ctx, doc); err != nil {
		return nil, err
	}

	stored := &domain.Cart{OwnerID: oid, Items: domain.CloneItems(cart.Items), UpdatedAt: now}
	return stored, nil
}

// Delete removes the owner's cart document. Deleting a missing document
// succeeds.
func (r *Firestore) Delete(ctx context.Context, ownerID string) error {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return errors.New("cart repository: ownerID is empty")
	}
	_, err := r.col().Doc(oid).Delete(ctx)
	return err
}

type cartDoc struct {
	Items     []itemDoc `firestore:"items"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type itemDoc struct {
	ProductID  string            `firestore:"productId"`
	Name       string            `firestore:"name"`
	PriceCents int64             `firestore:"priceCents"`
	Quantity   int               `firestore:"quantity"`
	ImageURL   string            `firestore:"imageUrl,omitempty"`
	Options    map[string]string `firestore:"options,omitempty"`
}

// decodeCart parses raw document data instead of DataTo so documents
// written with older field shapes cannot fail the whole request.
func decodeCart(raw map[string]any) *domain.Cart {
	cart := &domain.Cart{}
	if raw == nil {
		return cart
	}
	if t, ok := fscodec.AsTime(raw["updatedAt"]); ok {
		cart.UpdatedAt = t
	}

	itemsAny, ok := raw["items"].([]any)
	if !ok {
		return cart
	}
	for _, v := range itemsAny {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := domain.CartItem{
			ProductID:  strings.TrimSpace(fscodec.AsString(m["productId"])),
			Name:       fscodec.AsString(m["name"]),
			PriceCents: fscodec.AsInt64(m["priceCents"]),
			Quantity:   fscodec.AsInt(m["quantity"]),
			ImageURL:   fscodec.AsString(m["imageUrl"]),
			Options:    fscodec.AsStringMap(m["options"]),
		}
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		cart.AddItem(item)
	}
	return cart
}
