// Package menu implements the text-driven command loop of the simulator.
package menu

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sort"
	"time"

	"go.uber.org/zap"

	"vending-sim/internal/model"
	"vending-sim/internal/service"
	"vending-sim/pkg/apperror"
	"vending-sim/pkg/uid"
)

const (
	appTitle     = "Vending Machine Simulator"
	cancelGuide  = "Press Enter (empty input) or q to cancel."
	returnPrompt = "Press Enter to return > "
	cancelledMsg = "Cancelled."
	farewellMsg  = "Thank you for using the vending machine."
)

// handlerResult reports how a menu action ended.
type handlerResult struct {
	cancelled bool
	quit      bool
}

// Menu is a single-threaded, blocking read-eval-print loop over the vending
// service and the balance account. The purchase history is append-only and
// owned by the menu.
type Menu struct {
	vm      *service.VendingMachine
	account *model.Account
	r       *Reader
	out     io.Writer
	log     *zap.Logger

	history []model.PurchaseRecord
}

// New creates a menu bound to the given streams.
func New(vm *service.VendingMachine, account *model.Account, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{
		vm:      vm,
		account: account,
		r:       NewReader(in, out),
		out:     out,
		log:     log,
	}
}

// History returns the purchase records appended so far.
func (m *Menu) History() []model.PurchaseRecord {
	return m.history
}

// Run drives the menu loop until the user confirms exit or input ends.
// Domain errors are printed and never terminate the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.renderMenu()

		choice, ok := m.r.ReadInt(func(n int) bool { return n >= 0 && n <= 8 })
		if !ok {
			if m.r.EOF() {
				m.log.Info("input stream closed, exiting")
				return nil
			}
			fmt.Fprintln(m.out, separatorLine)
			continue
		}

		fmt.Fprintln(m.out)
		res := m.dispatch(ctx, choice)
		if res.quit {
			return nil
		}

		fmt.Fprintln(m.out)
		if res.cancelled {
			fmt.Fprintln(m.out, noticeStyle.Render(cancelledMsg))
			fmt.Fprintln(m.out, separatorLine)
			fmt.Fprintln(m.out)
			continue
		}

		m.r.Pause(returnPrompt)
		if m.r.EOF() {
			m.log.Info("input stream closed, exiting")
			return nil
		}
		fmt.Fprintln(m.out, separatorLine)
		fmt.Fprintln(m.out)
	}
}

// dispatch runs one handler with panic recovery and action logging.
func (m *Menu) dispatch(ctx context.Context, choice int) (res handlerResult) {
	handlers := map[int]func(context.Context) handlerResult{
		1: m.showBalance,
		2: m.chargeAccount,
		3: m.listAllDrinks,
		4: m.listAvailableDrinks,
		5: m.purchaseDrink,
		6: m.restockDrink,
		7: m.showTotalSales,
		8: m.showPurchaseHistory,
		0: m.confirmExit,
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			m.log.Error("menu handler panic",
				zap.Int("choice", choice),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			m.printError(apperror.Internal(""))
			res = handlerResult{}
		}
	}()

	res = handlers[choice](ctx)
	m.log.Debug("menu action handled",
		zap.Int("choice", choice),
		zap.Duration("duration", time.Since(start)))
	return res
}

func (m *Menu) renderMenu() {
	fmt.Fprintln(m.out, titleStyle.Render("["+appTitle+" Menu]"))
	fmt.Fprintln(m.out)
	m.printBalance()
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "1: Show the current balance")
	fmt.Fprintln(m.out, "2: Charge the account")
	fmt.Fprintln(m.out, "3: List all drinks")
	fmt.Fprintln(m.out, "4: List purchasable drinks")
	fmt.Fprintln(m.out, "5: Purchase a drink")
	fmt.Fprintln(m.out, "6: Restock a drink")
	fmt.Fprintln(m.out, "7: Show total sales")
	fmt.Fprintln(m.out, "8: Show purchase history")
	fmt.Fprintln(m.out, "0: Exit")
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Enter the number of the feature to use.")
}

func (m *Menu) printBalance() {
	fmt.Fprintf(m.out, "Balance: ¥%d\n", m.account.Balance())
}

func (m *Menu) printError(err error) {
	fmt.Fprintln(m.out, errorStyle.Render(err.Error()))
}

// printEntries renders stock entries in ascending product-id order.
func (m *Menu) printEntries(entries map[int]model.StockEntry) {
	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		entry := entries[id]
		fmt.Fprintf(m.out, "[%d] %s: ¥%d / stock: %d\n", id, entry.Brand, entry.Price, entry.Count())
	}
}

func (m *Menu) showBalance(ctx context.Context) handlerResult {
	m.printBalance()
	return handlerResult{}
}

func (m *Menu) chargeAccount(ctx context.Context) handlerResult {
	fmt.Fprintln(m.out, "Enter the amount to charge.")
	fmt.Fprintf(m.out, "Between ¥%d and ¥%d can be charged.\n",
		m.account.MinCharge(), m.account.MaxBalance()-m.account.Balance())
	fmt.Fprintln(m.out, cancelGuide)

	amount, ok := m.r.ReadInt(func(n int) bool { return n > 0 })
	if !ok {
		return handlerResult{cancelled: true}
	}

	fmt.Fprintln(m.out)
	if err := m.account.Charge(amount); err != nil {
		m.printError(err)
		return handlerResult{}
	}

	fmt.Fprintf(m.out, "Charged ¥%d.\n", amount)
	m.printBalance()
	return handlerResult{}
}

func (m *Menu) listAllDrinks(ctx context.Context) handlerResult {
	entries, err := m.vm.GetBrands(ctx)
	if err != nil {
		m.printError(err)
		return handlerResult{}
	}

	fmt.Fprintln(m.out, "All drinks:")
	m.printEntries(entries)
	return handlerResult{}
}

func (m *Menu) listAvailableDrinks(ctx context.Context) handlerResult {
	entries, err := m.vm.GetAvailableBrands(ctx, m.account)
	if err != nil {
		m.printError(err)
		return handlerResult{}
	}

	if len(entries) == 0 {
		fmt.Fprintln(m.out, "No drinks can be purchased right now.")
		return handlerResult{}
	}

	fmt.Fprintln(m.out, "Purchasable drinks:")
	m.printEntries(entries)
	return handlerResult{}
}

func (m *Menu) purchaseDrink(ctx context.Context) handlerResult {
	m.listAllDrinks(ctx)
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Enter the number of the drink to purchase.")
	fmt.Fprintln(m.out, cancelGuide)

	productID, ok := m.r.ReadInt(func(n int) bool { return n > 0 })
	if !ok {
		return handlerResult{cancelled: true}
	}

	fmt.Fprintln(m.out)
	drink, err := m.vm.Vend(ctx, productID, m.account)
	if err != nil {
		m.printError(err)
		return handlerResult{}
	}

	m.history = append(m.history, model.PurchaseRecord{
		ReceiptID:   uid.New(),
		ProductID:   productID,
		Drink:       drink,
		PurchasedAt: time.Now(),
	})
	fmt.Fprintf(m.out, "Purchased %s.\n", drink.Brand)
	m.printBalance()
	return handlerResult{}
}

func (m *Menu) restockDrink(ctx context.Context) handlerResult {
	fmt.Fprintln(m.out, "Enter the number of the drink to restock.")
	fmt.Fprintln(m.out, cancelGuide)
	fmt.Fprintln(m.out)
	entries, err := m.vm.GetBrands(ctx)
	if err != nil {
		m.printError(err)
		return handlerResult{}
	}
	m.printEntries(entries)

	productID, ok := m.r.ReadInt(func(n int) bool { return n > 0 })
	if !ok {
		return handlerResult{cancelled: true}
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Enter how many to add.")
	fmt.Fprintln(m.out, cancelGuide)

	quantity, ok := m.r.ReadInt(func(n int) bool { return n > 0 })
	if !ok {
		return handlerResult{cancelled: true}
	}

	fmt.Fprintln(m.out)
	if err := m.vm.Restock(ctx, productID, quantity); err != nil {
		m.printError(err)
		return handlerResult{}
	}

	fmt.Fprintf(m.out, "Restocked %s x%d.\n", entries[productID].Brand, quantity)
	return handlerResult{}
}

func (m *Menu) showTotalSales(ctx context.Context) handlerResult {
	fmt.Fprintf(m.out, "Total sales: ¥%d\n", m.vm.TotalSales())
	return handlerResult{}
}

// showPurchaseHistory renders the history grouped by product id.
func (m *Menu) showPurchaseHistory(ctx context.Context) handlerResult {
	if len(m.history) == 0 {
		fmt.Fprintln(m.out, "No purchases yet.")
		return handlerResult{}
	}

	counts := make(map[int]int)
	brands := make(map[int]string)
	for _, rec := range m.history {
		counts[rec.ProductID]++
		brands[rec.ProductID] = rec.Drink.Brand
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Fprintln(m.out, "Purchased drinks (by product id):")
	for _, id := range ids {
		fmt.Fprintf(m.out, "%d: %s x%d\n", id, brands[id], counts[id])
	}
	return handlerResult{}
}

func (m *Menu) confirmExit(ctx context.Context) handlerResult {
	fmt.Fprintf(m.out, "Exit the %s?\n", appTitle)
	fmt.Fprintln(m.out, "Are you sure? yes (y) / no (n)")

	if !m.r.ReadYes() {
		return handlerResult{}
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, noticeStyle.Render(farewellMsg))
	m.log.Info("session ended",
		zap.Int("purchases", len(m.history)),
		zap.Int("total_sales", m.vm.TotalSales()))
	return handlerResult{quit: true}
}
