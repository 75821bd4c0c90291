package kv

import "context"

// Repository stores text values under unique keys.
type Repository interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set inserts or overwrites the value for key.
	Set(ctx context.Context, key string, value string) error
}
