package repository

import (
	"context"
	"sync"

	"vending-sim/internal/model"
	"vending-sim/pkg/apperror"
)

// MemoryDrinkRepository implements DrinkRepository with an in-memory map.
// This is the default backend for a single-session run.
type MemoryDrinkRepository struct {
	mu      sync.RWMutex
	entries map[int]*model.StockEntry
}

// NewMemoryDrinkRepository creates a repository seeded with the given
// entries. The seed map is copied; the caller keeps ownership of its copy.
func NewMemoryDrinkRepository(seed map[int]model.StockEntry) *MemoryDrinkRepository {
	entries := make(map[int]*model.StockEntry, len(seed))
	for id, entry := range seed {
		e := entry
		e.OnHand = append([]model.Drink(nil), entry.OnHand...)
		entries[id] = &e
	}
	return &MemoryDrinkRepository{entries: entries}
}

// GetAll returns a deep snapshot of every stock entry keyed by product id.
func (r *MemoryDrinkRepository) GetAll(ctx context.Context) (map[int]model.StockEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[int]model.StockEntry, len(r.entries))
	for id, entry := range r.entries {
		e := *entry
		e.OnHand = append([]model.Drink(nil), entry.OnHand...)
		snapshot[id] = e
	}
	return snapshot, nil
}

// GetPrice returns the unit price for a product.
func (r *MemoryDrinkRepository) GetPrice(ctx context.Context, productID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[productID]
	if !ok {
		return 0, apperror.ProductNotFound(productID)
	}
	return entry.Price, nil
}

// IncreaseStock appends quantity newly constructed drinks to a product's queue.
func (r *MemoryDrinkRepository) IncreaseStock(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return apperror.InvalidQuantity(quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[productID]
	if !ok {
		return apperror.ProductNotFound(productID)
	}
	for i := 0; i < quantity; i++ {
		entry.OnHand = append(entry.OnHand, model.Drink{Brand: entry.Brand, Price: entry.Price})
	}
	return nil
}

// DecreaseStock removes and returns the oldest on-hand drink for a product.
func (r *MemoryDrinkRepository) DecreaseStock(ctx context.Context, productID int) (model.Drink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[productID]
	if !ok {
		return model.Drink{}, apperror.ProductNotFound(productID)
	}
	if len(entry.OnHand) == 0 {
		return model.Drink{}, apperror.SoldOut(entry.Brand)
	}

	drink := entry.OnHand[0]
	entry.OnHand = entry.OnHand[1:]
	return drink, nil
}

// Close is a no-op for the in-memory backend.
func (r *MemoryDrinkRepository) Close() error {
	return nil
}

// Ensure MemoryDrinkRepository implements DrinkRepository
var _ DrinkRepository = (*MemoryDrinkRepository)(nil)
