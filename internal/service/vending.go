package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vending-sim/internal/cache"
	"vending-sim/internal/model"
	"vending-sim/internal/repository"
)

// VendingMachine orchestrates purchases against a drink repository and
// tracks cumulative sales. The sale total is owned exclusively by this
// service and never decreases.
type VendingMachine struct {
	repo   repository.DrinkRepository
	prices cache.PriceCache
	ttl    time.Duration
	log    *zap.Logger

	totalSales int
}

// NewVendingMachine creates a new vending machine service.
// Returns nil if repo is nil (required dependency). prices may be nil to
// disable price caching.
func NewVendingMachine(repo repository.DrinkRepository, prices cache.PriceCache, ttl time.Duration, log *zap.Logger) *VendingMachine {
	if repo == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &VendingMachine{
		repo:   repo,
		prices: prices,
		ttl:    ttl,
		log:    log,
	}
}

// GetBrands returns a snapshot of every stock entry keyed by product id.
func (m *VendingMachine) GetBrands(ctx context.Context) (map[int]model.StockEntry, error) {
	return m.repo.GetAll(ctx)
}

// GetAvailableBrands filters the catalog down to entries that are in stock
// and affordable with the account's current balance.
func (m *VendingMachine) GetAvailableBrands(ctx context.Context, account *model.Account) (map[int]model.StockEntry, error) {
	entries, err := m.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	available := make(map[int]model.StockEntry)
	for id, entry := range entries {
		if len(entry.OnHand) > 0 && account.Balance() >= entry.Price {
			available[id] = entry
		}
	}
	return available, nil
}

// Restock adds quantity drinks to a product's queue.
func (m *VendingMachine) Restock(ctx context.Context, productID, quantity int) error {
	if err := m.repo.IncreaseStock(ctx, productID, quantity); err != nil {
		return err
	}
	m.log.Info("restocked product",
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

// Vend sells one unit of the given product, paying from the account.
// Payment happens before the stock check, so a sold-out product triggers a
// compensating refund: the pay and the stock decrement either both commit
// or both are undone.
func (m *VendingMachine) Vend(ctx context.Context, productID int, account *model.Account) (model.Drink, error) {
	price, err := m.getPrice(ctx, productID)
	if err != nil {
		return model.Drink{}, err
	}

	if err := account.Pay(price); err != nil {
		return model.Drink{}, err
	}

	drink, err := m.repo.DecreaseStock(ctx, productID)
	if err != nil {
		if refundErr := account.Refund(price); refundErr != nil {
			m.log.Error("refund failed after dispense failure",
				zap.Int("product_id", productID),
				zap.Int("price", price),
				zap.Error(refundErr))
		} else {
			m.log.Warn("payment refunded after dispense failure",
				zap.Int("product_id", productID),
				zap.Int("price", price),
				zap.Error(err))
		}
		return model.Drink{}, err
	}

	m.totalSales += price
	m.log.Info("drink vended",
		zap.Int("product_id", productID),
		zap.String("brand", drink.Brand),
		zap.Int("price", price),
		zap.Int("total_sales", m.totalSales))
	return drink, nil
}

// TotalSales returns the cumulative revenue of successful vends.
func (m *VendingMachine) TotalSales() int {
	return m.totalSales
}

// getPrice resolves a unit price through the cache, falling back to the
// repository on a miss. Prices are fixed after seeding, so stale entries
// cannot occur.
func (m *VendingMachine) getPrice(ctx context.Context, productID int) (int, error) {
	if m.prices != nil {
		if price, err := m.prices.Get(ctx, productID); err == nil {
			return price, nil
		}
	}

	price, err := m.repo.GetPrice(ctx, productID)
	if err != nil {
		return 0, err
	}

	if m.prices != nil {
		if err := m.prices.Set(ctx, productID, price, m.ttl); err != nil {
			m.log.Warn("failed to cache price", zap.Int("product_id", productID), zap.Error(err))
		}
	}
	return price, nil
}
