// Package auth is the boundary to the external authentication provider.
// The subsystem trusts the opaque owner id the provider returns and never
// re-validates identity internals.
package auth

import "context"

// Claims is what this system needs from a verified bearer token.
type Claims struct {
	UID   string
	Email string
	Admin bool
}

// TokenVerifier turns a bearer credential into Claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}
