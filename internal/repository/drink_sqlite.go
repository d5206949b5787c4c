package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"vending-sim/internal/model"
	"vending-sim/pkg/apperror"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteDrinkRepository implements DrinkRepository using SQLite. The default
// DSN is an in-memory database, so inventory still resets on every run.
// Drinks are stored one row per unit; the autoincrement id preserves FIFO
// dispense order.
type SQLiteDrinkRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteDrinkRepository creates a SQLite drink repository and seeds it
// with the given entries.
func NewSQLiteDrinkRepository(dsn string, seed map[int]model.StockEntry) (*SQLiteDrinkRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer; a single connection also keeps an
	// in-memory database alive for the process lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	r := &SQLiteDrinkRepository{db: db}
	if err := r.seed(seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed inventory: %w", err)
	}
	return r, nil
}

// createTables creates the products and drinks tables.
func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		brand TEXT NOT NULL,
		price INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS drinks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		brand TEXT NOT NULL,
		price INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_drinks_product ON drinks(product_id);
	`
	_, err := db.Exec(query)
	return err
}

// seed inserts the initial entries inside one transaction.
func (r *SQLiteDrinkRepository) seed(entries map[int]model.StockEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	productStmt, err := tx.Prepare(`INSERT OR IGNORE INTO products (product_id, brand, price) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer productStmt.Close()

	drinkStmt, err := tx.Prepare(`INSERT INTO drinks (product_id, brand, price) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer drinkStmt.Close()

	// Deterministic insert order keeps drink row ids stable across runs.
	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		entry := entries[id]
		if _, err := productStmt.Exec(entry.ProductID, entry.Brand, entry.Price); err != nil {
			return err
		}
		for _, d := range entry.OnHand {
			if _, err := drinkStmt.Exec(entry.ProductID, d.Brand, d.Price); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetAll returns a deep snapshot of every stock entry keyed by product id.
func (r *SQLiteDrinkRepository) GetAll(ctx context.Context) (map[int]model.StockEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT product_id, brand, price FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[int]model.StockEntry)
	for rows.Next() {
		var entry model.StockEntry
		if err := rows.Scan(&entry.ProductID, &entry.Brand, &entry.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		snapshot[entry.ProductID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	drinkRows, err := r.db.QueryContext(ctx,
		`SELECT product_id, brand, price FROM drinks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query drinks: %w", err)
	}
	defer drinkRows.Close()

	for drinkRows.Next() {
		var productID int
		var d model.Drink
		if err := drinkRows.Scan(&productID, &d.Brand, &d.Price); err != nil {
			return nil, fmt.Errorf("failed to scan drink: %w", err)
		}
		entry, ok := snapshot[productID]
		if !ok {
			continue
		}
		entry.OnHand = append(entry.OnHand, d)
		snapshot[productID] = entry
	}
	if err := drinkRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drinks: %w", err)
	}

	return snapshot, nil
}

// GetPrice returns the unit price for a product.
func (r *SQLiteDrinkRepository) GetPrice(ctx context.Context, productID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var price int
	err := r.db.QueryRowContext(ctx,
		`SELECT price FROM products WHERE product_id = ?`, productID).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, apperror.ProductNotFound(productID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get price: %w", err)
	}
	return price, nil
}

// IncreaseStock appends quantity newly constructed drinks to a product's queue.
func (r *SQLiteDrinkRepository) IncreaseStock(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return apperror.InvalidQuantity(quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var brand string
	var price int
	err := r.db.QueryRowContext(ctx,
		`SELECT brand, price FROM products WHERE product_id = ?`, productID).Scan(&brand, &price)
	if err == sql.ErrNoRows {
		return apperror.ProductNotFound(productID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO drinks (product_id, brand, price) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < quantity; i++ {
		if _, err := stmt.ExecContext(ctx, productID, brand, price); err != nil {
			return fmt.Errorf("failed to insert drink: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DecreaseStock removes and returns the oldest on-hand drink for a product.
func (r *SQLiteDrinkRepository) DecreaseStock(ctx context.Context, productID int) (model.Drink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var brand string
	err := r.db.QueryRowContext(ctx,
		`SELECT brand FROM products WHERE product_id = ?`, productID).Scan(&brand)
	if err == sql.ErrNoRows {
		return model.Drink{}, apperror.ProductNotFound(productID)
	}
	if err != nil {
		return model.Drink{}, fmt.Errorf("failed to look up product: %w", err)
	}

	var id int64
	var d model.Drink
	err = r.db.QueryRowContext(ctx,
		`SELECT id, brand, price FROM drinks WHERE product_id = ? ORDER BY id LIMIT 1`,
		productID).Scan(&id, &d.Brand, &d.Price)
	if err == sql.ErrNoRows {
		return model.Drink{}, apperror.SoldOut(brand)
	}
	if err != nil {
		return model.Drink{}, fmt.Errorf("failed to get oldest drink: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = ?`, id); err != nil {
		return model.Drink{}, fmt.Errorf("failed to dispense drink: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (r *SQLiteDrinkRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteDrinkRepository implements DrinkRepository
var _ DrinkRepository = (*SQLiteDrinkRepository)(nil)
