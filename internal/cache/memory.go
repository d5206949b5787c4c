package cache

import (
	"context"
	"sync"
	"time"
)

// priceEntry represents a cached price with expiration.
type priceEntry struct {
	price     int
	expiresAt time.Time
}

// isExpired checks if the entry has expired.
func (e priceEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryPriceCache is an in-memory implementation of PriceCache. Expired
// entries are evicted lazily on read; there is no background janitor since
// the simulator runs a single session.
type MemoryPriceCache struct {
	mu      sync.RWMutex
	entries map[int]priceEntry
}

// NewMemoryPriceCache creates a new in-memory price cache.
func NewMemoryPriceCache() *MemoryPriceCache {
	return &MemoryPriceCache{
		entries: make(map[int]priceEntry),
	}
}

// Get retrieves a price by product id.
func (c *MemoryPriceCache) Get(ctx context.Context, productID int) (int, error) {
	c.mu.RLock()
	entry, exists := c.entries[productID]
	c.mu.RUnlock()

	if !exists {
		return 0, ErrCacheMiss
	}
	if entry.isExpired() {
		c.mu.Lock()
		delete(c.entries, productID)
		c.mu.Unlock()
		return 0, ErrCacheMiss
	}
	return entry.price, nil
}

// Set stores a price with the given TTL.
func (c *MemoryPriceCache) Set(ctx context.Context, productID, price int, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[productID] = priceEntry{
		price:     price,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a price by product id.
func (c *MemoryPriceCache) Delete(ctx context.Context, productID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, productID)
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryPriceCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int]priceEntry)
	return nil
}

// Ensure MemoryPriceCache implements PriceCache
var _ PriceCache = (*MemoryPriceCache)(nil)
