package model

import (
	"fmt"

	"vending-sim/pkg/apperror"
)

// Default account limits in yen.
const (
	DefaultMinCharge  = 100
	DefaultMaxBalance = 20000
)

// Account is a rechargeable stored-value account used for payment.
// Invariant: 0 <= balance <= maxBalance, enforced before every mutation.
// Rollback across operations is the caller's responsibility.
type Account struct {
	balance    int
	minCharge  int
	maxBalance int
}

// NewAccount creates an account with the given initial balance and limits.
// Non-positive limits fall back to the defaults; the initial balance is
// clamped into [0, maxBalance].
func NewAccount(initial, minCharge, maxBalance int) *Account {
	if minCharge <= 0 {
		minCharge = DefaultMinCharge
	}
	if maxBalance <= 0 {
		maxBalance = DefaultMaxBalance
	}
	if initial < 0 {
		initial = 0
	}
	if initial > maxBalance {
		initial = maxBalance
	}
	return &Account{
		balance:    initial,
		minCharge:  minCharge,
		maxBalance: maxBalance,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() int {
	return a.balance
}

// MinCharge returns the minimum amount accepted by Charge.
func (a *Account) MinCharge() int {
	return a.minCharge
}

// MaxBalance returns the balance ceiling.
func (a *Account) MaxBalance() int {
	return a.maxBalance
}

// Charge adds amount to the balance. It fails with InvalidChargeAmount if
// amount is below the minimum charge or would push the balance over the
// ceiling. The balance is unchanged on failure.
func (a *Account) Charge(amount int) error {
	if amount < a.minCharge {
		return apperror.InvalidChargeAmount(amount, a.balance,
			"charge amount is below the minimum")
	}
	if a.balance+amount > a.maxBalance {
		return apperror.InvalidChargeAmount(amount, a.balance,
			"charge would exceed the balance limit")
	}
	a.balance += amount
	return nil
}

// Pay subtracts amount from the balance. Negative amounts are rejected, so
// a payment can never raise the balance past the ceiling. It fails with
// InsufficientBalance if amount exceeds the balance; the error reports the
// shortfall. The balance is unchanged on failure.
func (a *Account) Pay(amount int) error {
	if amount < 0 {
		return apperror.Internal(fmt.Sprintf("payment amount must not be negative, got %d", amount))
	}
	if amount > a.balance {
		return apperror.InsufficientBalance(amount, a.balance)
	}
	a.balance -= amount
	return nil
}

// Refund returns a previously paid amount to the balance. Unlike Charge it
// is not subject to the minimum charge: a compensating refund must always
// restore the pre-payment balance, even for unit prices below the minimum.
// The balance ceiling still holds, which cannot trip for an amount that
// was just paid out of this account.
func (a *Account) Refund(amount int) error {
	if amount < 0 {
		return apperror.Internal(fmt.Sprintf("refund amount must not be negative, got %d", amount))
	}
	if a.balance+amount > a.maxBalance {
		return apperror.InvalidChargeAmount(amount, a.balance, "refund would exceed the balance limit")
	}
	a.balance += amount
	return nil
}
