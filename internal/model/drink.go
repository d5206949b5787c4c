package model

import "time"

// Drink represents a single dispensable unit with a brand and fixed price.
// Drinks are immutable: created at seed or restock time, removed on dispense.
type Drink struct {
	Brand string
	Price int
}

// StockEntry represents a product line and its queue of on-hand drinks.
// Every drink in OnHand shares Brand and Price with the entry. OnHand is
// ordered oldest first.
type StockEntry struct {
	ProductID int
	Brand     string
	Price     int
	OnHand    []Drink
}

// Count returns the number of on-hand drinks.
func (e StockEntry) Count() int {
	return len(e.OnHand)
}

// PurchaseRecord represents one completed vend in the purchase history.
type PurchaseRecord struct {
	ReceiptID   string
	ProductID   int
	Drink       Drink
	PurchasedAt time.Time
}
