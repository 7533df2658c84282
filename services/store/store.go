package store

import "context"

// Store represents a keyed byte-payload store with overwrite semantics.
type Store interface {
	// Put writes a value, overwriting any prior value for the key
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves a value. A missing key is not an error: it returns
	// (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Scan calls fn for every key under prefix. Keys are iterated
	// incrementally, never materialized as a full listing. Returning an
	// error from fn stops the scan.
	Scan(ctx context.Context, prefix string, fn func(key string) error) error

	// DeleteAll removes every key under prefix. An empty prefix match is a
	// no-op, not an error.
	DeleteAll(ctx context.Context, prefix string) error
}
