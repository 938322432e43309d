package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase ID tokens. Admin access comes from
// the "admin" custom claim.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes the Firebase app and its auth client
// for the given project.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("firebase app init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token and extracts uid, email and the admin claim.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return nil, errors.New("token has no uid")
	}

	claims := &Claims{UID: uid}
	if e, ok := token.Claims["email"].(string); ok {
		claims.Email = strings.TrimSpace(e)
	}
	if a, ok := token.Claims["admin"].(bool); ok {
		claims.Admin = a
	}
	return claims, nil
}
