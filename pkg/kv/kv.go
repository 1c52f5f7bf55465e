// Package kv provides the durable string-keyed slot the cart persists into.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a durable, string-keyed value store. Writes replace the whole
// value atomically.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
