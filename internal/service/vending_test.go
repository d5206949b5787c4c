package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"vending-sim/internal/cache"
	"vending-sim/internal/model"
	"vending-sim/internal/repository"
	"vending-sim/internal/seed"
	"vending-sim/pkg/apperror"
)

func newVM(t *testing.T, catalog []seed.Product) *VendingMachine {
	t.Helper()
	repo := repository.NewMemoryDrinkRepository(seed.Entries(catalog))
	vm := NewVendingMachine(repo, cache.NewMemoryPriceCache(), time.Minute, zap.NewNop())
	if vm == nil {
		t.Fatalf("vending machine is nil")
	}
	return vm
}

func TestVendSuccess(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 1}})
	account := model.NewAccount(150, 100, 20000)
	ctx := context.Background()

	drink, err := vm.Vend(ctx, 1, account)
	if err != nil {
		t.Fatalf("vend: %v", err)
	}
	if drink.Brand != "Cola" || drink.Price != 150 {
		t.Fatalf("unexpected drink: %+v", drink)
	}
	if account.Balance() != 0 {
		t.Fatalf("expected balance 0, got %d", account.Balance())
	}
	if vm.TotalSales() != 150 {
		t.Fatalf("expected total sales 150, got %d", vm.TotalSales())
	}

	entries, _ := vm.GetBrands(ctx)
	if entries[1].Count() != 0 {
		t.Fatalf("expected empty stock, got %d", entries[1].Count())
	}
}

func TestVendSoldOutRefundsPayment(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 0}})
	account := model.NewAccount(150, 100, 20000)
	ctx := context.Background()

	_, err := vm.Vend(ctx, 1, account)
	if !apperror.HasCode(err, apperror.CodeSoldOut) {
		t.Fatalf("expected SOLD_OUT, got %v", err)
	}
	if account.Balance() != 150 {
		t.Fatalf("refund should restore the balance, got %d", account.Balance())
	}
	if vm.TotalSales() != 0 {
		t.Fatalf("sale total changed on failed vend: %d", vm.TotalSales())
	}
}

func TestVendSoldOutRefundsPriceBelowMinimumCharge(t *testing.T) {
	// A unit price below the minimum charge must still be refunded in full
	// when the dispense fails.
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Water", Price: 120, Quantity: 0}})
	account := model.NewAccount(500, 200, 20000)
	ctx := context.Background()

	_, err := vm.Vend(ctx, 1, account)
	if !apperror.HasCode(err, apperror.CodeSoldOut) {
		t.Fatalf("expected SOLD_OUT, got %v", err)
	}
	if account.Balance() != 500 {
		t.Fatalf("refund should restore the balance, got %d", account.Balance())
	}
	if vm.TotalSales() != 0 {
		t.Fatalf("sale total changed on failed vend: %d", vm.TotalSales())
	}
}

func TestVendUnknownProduct(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 2}})
	account := model.NewAccount(500, 100, 20000)
	ctx := context.Background()

	_, err := vm.Vend(ctx, 99, account)
	if !apperror.HasCode(err, apperror.CodeProductNotFound) {
		t.Fatalf("expected PRODUCT_NOT_FOUND, got %v", err)
	}
	if account.Balance() != 500 {
		t.Fatalf("balance changed: %d", account.Balance())
	}
	entries, _ := vm.GetBrands(ctx)
	if entries[1].Count() != 2 {
		t.Fatalf("inventory changed: %d", entries[1].Count())
	}
}

func TestVendInsufficientBalance(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 2}})
	account := model.NewAccount(100, 100, 20000)
	ctx := context.Background()

	_, err := vm.Vend(ctx, 1, account)
	if !apperror.HasCode(err, apperror.CodeInsufficientBalance) {
		t.Fatalf("expected INSUFFICIENT_BALANCE, got %v", err)
	}
	if account.Balance() != 100 {
		t.Fatalf("balance changed: %d", account.Balance())
	}
	entries, _ := vm.GetBrands(ctx)
	if entries[1].Count() != 2 {
		t.Fatalf("inventory changed: %d", entries[1].Count())
	}
}

func TestVendAccumulatesSales(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 2}})
	account := model.NewAccount(400, 100, 20000)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := vm.Vend(ctx, 1, account); err != nil {
			t.Fatalf("vend %d: %v", i, err)
		}
	}
	if vm.TotalSales() != 300 {
		t.Fatalf("expected total sales 300, got %d", vm.TotalSales())
	}
}

func TestVendWithoutCache(t *testing.T) {
	repo := repository.NewMemoryDrinkRepository(seed.Entries(
		[]seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 1}}))
	vm := NewVendingMachine(repo, nil, 0, nil)
	account := model.NewAccount(150, 100, 20000)

	if _, err := vm.Vend(context.Background(), 1, account); err != nil {
		t.Fatalf("vend without cache: %v", err)
	}
}

func TestGetAvailableBrands(t *testing.T) {
	// One sold out, one affordable, one too expensive for the balance.
	vm := newVM(t, []seed.Product{
		{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 0},
		{ProductID: 2, Brand: "Tea", Price: 130, Quantity: 3},
		{ProductID: 3, Brand: "Energy", Price: 230, Quantity: 3},
	})
	account := model.NewAccount(150, 100, 20000)

	available, err := vm.GetAvailableBrands(context.Background(), account)
	if err != nil {
		t.Fatalf("available brands: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected 1 available brand, got %d", len(available))
	}
	if _, ok := available[2]; !ok {
		t.Fatalf("expected product 2 to be available: %+v", available)
	}
}

func TestRestock(t *testing.T) {
	vm := newVM(t, []seed.Product{{ProductID: 1, Brand: "Cola", Price: 150, Quantity: 1}})
	ctx := context.Background()

	if err := vm.Restock(ctx, 1, 4); err != nil {
		t.Fatalf("restock: %v", err)
	}
	entries, _ := vm.GetBrands(ctx)
	if entries[1].Count() != 5 {
		t.Fatalf("expected 5 on hand, got %d", entries[1].Count())
	}

	if err := vm.Restock(ctx, 99, 1); !apperror.HasCode(err, apperror.CodeProductNotFound) {
		t.Fatalf("expected PRODUCT_NOT_FOUND, got %v", err)
	}
}
