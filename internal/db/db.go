package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Connect opens a Firestore client and verifies connectivity with a
// bounded read before handing it out.
func Connect(ctx context.Context, projectID string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client (project=%s): %w", projectID, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("firestore ping: %w", err)
	}
	return client, nil
}

// Ping issues a minimal read to confirm the store is reachable.
func Ping(ctx context.Context, client *firestore.Client) error {
	it := client.Collections(ctx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}
