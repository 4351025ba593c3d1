package tokenstore

import (
	"context"
	"errors"
)

// TokenKey is the fixed name the bearer credential is stored under.
const TokenKey = "crm_token"

var ErrEmptyKey = errors.New("storage key must not be empty")

// Storage is a durable key-value store for client-side credentials.
type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
