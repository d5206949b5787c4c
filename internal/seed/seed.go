// Package seed produces the initial product catalog for the simulator.
package seed

import "vending-sim/internal/model"

// Product describes one product line to seed.
type Product struct {
	ProductID int
	Brand     string
	Price     int
	Quantity  int
}

// Default returns the default catalog: three drinks, five units each.
func Default() []Product {
	return []Product{
		{ProductID: 1, Brand: "Pepsi", Price: 150, Quantity: 5},
		{ProductID: 2, Brand: "Monster", Price: 230, Quantity: 5},
		{ProductID: 3, Brand: "Ilohas", Price: 120, Quantity: 5},
	}
}

// Entries builds the initial product_id -> StockEntry mapping from a catalog.
func Entries(products []Product) map[int]model.StockEntry {
	entries := make(map[int]model.StockEntry, len(products))
	for _, p := range products {
		onHand := make([]model.Drink, 0, p.Quantity)
		for i := 0; i < p.Quantity; i++ {
			onHand = append(onHand, model.Drink{Brand: p.Brand, Price: p.Price})
		}
		entries[p.ProductID] = model.StockEntry{
			ProductID: p.ProductID,
			Brand:     p.Brand,
			Price:     p.Price,
			OnHand:    onHand,
		}
	}
	return entries
}
