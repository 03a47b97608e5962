// Package statestore keeps small pieces of server-side state with an optional
// expiry, such as the pointer to an employee's running clock-in session.
package statestore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("state key not found")

// Store values are JSON documents. A zero ttl means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
