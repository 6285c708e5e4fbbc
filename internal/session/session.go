// Package session maps opaque cookie tokens to server-side session records.
package session

import (
	"context"
	"errors"
)

// ErrNotFound indicates the token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Manager is the session collaborator contract. A session is created on
// login, destroyed on logout, and otherwise lives until the backend's own
// expiry policy removes it. Destroy is idempotent: destroying an absent
// session is not an error.
type Manager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Destroy(ctx context.Context, token string) error
}
