package repository

import (
	"context"

	"vending-sim/internal/model"
)

// DrinkRepository defines drink inventory data access methods.
// The product id set is fixed after seeding; only on-hand counts change.
type DrinkRepository interface {
	// GetAll returns a snapshot of every stock entry keyed by product id.
	// The snapshot is a deep copy: mutating it never affects the repository.
	GetAll(ctx context.Context) (map[int]model.StockEntry, error)

	// GetPrice returns the unit price for a product.
	GetPrice(ctx context.Context, productID int) (int, error)

	// IncreaseStock appends quantity newly constructed drinks to a
	// product's queue. quantity must be at least 1.
	IncreaseStock(ctx context.Context, productID, quantity int) error

	// DecreaseStock removes and returns the oldest on-hand drink for a
	// product (FIFO).
	DecreaseStock(ctx context.Context, productID int) (model.Drink, error)

	// Close releases any resources held by the repository.
	Close() error
}
