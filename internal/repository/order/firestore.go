package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bakeshop/internal/domain"
	"bakeshop/internal/repository/fscodec"
)

const (
	ordersCollection   = "orders"
	countersCollection = "counters"
	keysCollection     = "orderKeys"
	counterDocID       = "orders"
)

// Firestore implements Repository. Sequencing runs inside a single
// transaction over the counter document and the new order document, so
// the read-and-increment is atomic under concurrent checkouts.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore builds a Firestore-backed order repository.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (r *Firestore) col() *firestore.CollectionRef {
	return r.client.Collection(ordersCollection)
}

func (r *Firestore) counterRef() *firestore.DocumentRef {
	return r.client.Collection(countersCollection).Doc(counterDocID)
}

func (r *Firestore) keyRef(key string) *firestore.DocumentRef {
	return r.client.Collection(keysCollection).Doc(key)
}

// Create commits a new order with the next sequence number. The counter
// read, the order Create and the counter write share one transaction;
// Create (never Set) on the order document turns a residual identifier
// collision into an aborted transaction instead of an overwrite.
func (r *Firestore) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	uid := strings.TrimSpace(in.UserID)
	if uid == "" {
		return nil, errors.New("order repository: userID is empty")
	}
	var created *domain.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = nil

		// All reads precede writes inside a Firestore transaction.
		replayID := ""
		if in.IdempotencyKey != "" {
			snap, err := tx.Get(r.keyRef(in.IdempotencyKey))
			switch {
			case err == nil:
				replayID = fscodec.AsString(snap.Data()["orderId"])
			case status.Code(err) != codes.NotFound:
				return err
			}
		}

		current := 0
		csnap, err := tx.Get(r.counterRef())
		switch {
		case err == nil:
			current = fscodec.AsInt(csnap.Data()["value"])
		case status.Code(err) != codes.NotFound:
			return err
		}

		if replayID != "" {
			snap, err := tx.Get(r.col().Doc(replayID))
			if err != nil {
				return fmt.Errorf("idempotency key points at missing order %s: %w", replayID, err)
			}
			created = decodeOrder(snap.Ref.ID, snap.Data())
			return nil
		}
		if len(in.Items) == 0 {
			return fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
		}

		next := current + 1
		id := domain.FormatOrderID(next)
		now := time.Now().UTC()

		doc := orderDoc{
			Number:         next,
			UserID:         uid,
			Items:          encodeItems(in.Items),
			Subtotal:       in.Totals.SubtotalCents,
			Tax:            in.Totals.TaxCents,
			DeliveryFee:    in.Totals.DeliveryFeeCents,
			Total:          in.Totals.TotalCents,
			Address:        in.Address,
			Phone:          in.Phone,
			Notes:          in.Notes,
			Status:         string(domain.StatusPending),
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create(r.col().Doc(id), doc); err != nil {
			return err
		}
		if err := tx.Set(r.counterRef(), map[string]any{"value": next}); err != nil {
			return err
		}
		if in.IdempotencyKey != "" {
			if err := tx.Create(r.keyRef(in.IdempotencyKey), map[string]any{
				"orderId":   id,
				"createdAt": now,
			}); err != nil {
				return err
			}
		}

		created = &domain.Order{
			ID:             id,
			Number:         next,
			UserID:         uid,
			Items:          domain.CloneItems(in.Items),
			Totals:         in.Totals,
			Address:        in.Address,
			Phone:          in.Phone,
			Notes:          in.Notes,
			Status:         domain.StatusPending,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return nil
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: %v", domain.ErrOrderExists, err)
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches one order; a missing document is domain.ErrNotFound.
func (r *Firestore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, domain.ErrNotFound
	}
	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return decodeOrder(snap.Ref.ID, snap.Data()), nil
}

// ListByUser returns a user's orders, newest first. Sorting happens in
// memory to keep the query free of composite-index requirements.
func (r *Firestore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order repository: userID is empty")
	}
	return r.list(ctx, r.col().Where("userId", "==", uid).Documents(ctx))
}

// ListAll returns every order, newest first.
func (r *Firestore) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, r.col().Documents(ctx))
}

func (r *Firestore) list(ctx context.Context, it *firestore.DocumentIterator) ([]domain.Order, error) {
	defer it.Stop()

	var out []domain.Order
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *decodeOrder(snap.Ref.ID, snap.Data()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

// UpdateStatus applies an admin transition inside a transaction that
// re-reads the order, so the no-op and terminal-state rules hold even
// under concurrent updates. Only status, updatedAt and the acting admin
// id ever change on a committed order.
func (r *Firestore) UpdateStatus(ctx context.Context, id string, target domain.OrderStatus, actorID string) (*domain.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, domain.ErrNotFound
	}
	ref := r.col().Doc(oid)

	var out *domain.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrNotFound
			}
			return err
		}
		o := decodeOrder(snap.Ref.ID, snap.Data())

		noop, err := o.PlanTransition(target)
		if err != nil {
			return err
		}
		if noop {
			out = o
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(target)},
			{Path: "updatedAt", Value: now},
			{Path: "statusUpdatedBy", Value: actorID},
		}); err != nil {
			return err
		}
		o.Status = target
		o.UpdatedAt = now
		o.StatusUpdatedBy = actorID
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type orderDoc struct {
	Number         int       `firestore:"orderNumber"`
	UserID         string    `firestore:"userId"`
	Items          []itemDoc `firestore:"items"`
	Subtotal       int64     `firestore:"subtotalCents"`
	Tax            int64     `firestore:"taxCents"`
	DeliveryFee    int64     `firestore:"deliveryFeeCents"`
	Total          int64     `firestore:"totalCents"`
	Address        string    `firestore:"address"`
	Phone          string    `firestore:"phone"`
	Notes          string    `firestore:"notes,omitempty"`
	Status         string    `firestore:"status"`
	IdempotencyKey string    `firestore:"idempotencyKey,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
	StatusBy       string    `firestore:"statusUpdatedBy,omitempty"`
}

type itemDoc struct {
	ProductID  string            `firestore:"productId"`
	Name       string            `firestore:"name"`
	PriceCents int64             `firestore:"priceCents"`
	Quantity   int               `firestore:"quantity"`
	ImageURL   string            `firestore:"imageUrl,omitempty"`
	Options    map[string]string `firestore:"options,omitempty"`
}

func encodeItems(items []domain.CartItem) []itemDoc {
	out := make([]itemDoc, 0, len(items))
	for _, it := range items {
		out = append(out, itemDoc{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			ImageURL:   it.ImageURL,
			Options:    it.Options,
		})
	}
	return out
}

// decodeOrder parses raw document data, normalizing timestamps through
// fscodec so older documents with string or epoch times still load.
func decodeOrder(id string, raw map[string]any) *domain.Order {
	o := &domain.Order{ID: id}
	if raw == nil {
		return o
	}
	o.Number = fscodec.AsInt(raw["orderNumber"])
	o.UserID = fscodec.AsString(raw["userId"])
	o.Totals = domain.OrderTotals{
		SubtotalCents:    fscodec.AsInt64(raw["subtotalCents"]),
		TaxCents:         fscodec.AsInt64(raw["taxCents"]),
		DeliveryFeeCents: fscodec.AsInt64(raw["deliveryFeeCents"]),
		TotalCents:       fscodec.AsInt64(raw["totalCents"]),
	}
	o.Address = fscodec.AsString(raw["address"])
	o.Phone = fscodec.AsString(raw["phone"])
	o.Notes = fscodec.AsString(raw["notes"])
	o.IdempotencyKey = fscodec.AsString(raw["idempotencyKey"])
	o.StatusUpdatedBy = fscodec.AsString(raw["statusUpdatedBy"])
	if st, err := domain.ParseOrderStatus(fscodec.AsString(raw["status"])); err == nil {
		o.Status = st
	} else {
		o.Status = domain.StatusPending
	}
	if t, ok := fscodec.AsTime(raw["createdAt"]); ok {
		o.CreatedAt = t
	}
	if t, ok := fscodec.AsTime(raw["updatedAt"]); ok {
		o.UpdatedAt = t
	}

	if itemsAny, ok := raw["items"].([]any); ok {
		for _, v := range itemsAny {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			o.Items = append(o.Items, domain.CartItem{
				ProductID:  fscodec.AsString(m["productId"]),
				Name:       fscodec.AsString(m["name"]),
				PriceCents: fscodec.AsInt64(m["priceCents"]),
				Quantity:   fscodec.AsInt(m["quantity"]),
				ImageURL:   fscodec.AsString(m["imageUrl"]),
				Options:    fscodec.AsStringMap(m["options"]),
			})
		}
	}
	return o
}
