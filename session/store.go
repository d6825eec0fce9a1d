// Package session records issued refresh tokens.
package session

import (
	"context"
	"time"
)

// Store maps refresh tokens to the user they were issued to.
type Store interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Lookup reports the owner of a live token. ok is false for unknown or
	// expired tokens.
	Lookup(ctx context.Context, token string) (userID string, ok bool, err error)
	Revoke(ctx context.Context, token string) error
}
