package cache

import (
	"context"
	"time"
)

// PriceCache defines the interface for caching product prices.
// The abstraction keeps the vending service independent of the cache
// implementation.
type PriceCache interface {
	// Get retrieves a price by product id. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, productID int) (int, error)

	// Set stores a price with the given TTL.
	Set(ctx context.Context, productID, price int, ttl time.Duration) error

	// Delete removes a price by product id.
	Delete(ctx context.Context, productID int) error

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error
}

// CacheError is a sentinel error type for cache failures.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the product id was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
