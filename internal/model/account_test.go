package model

import (
	"strings"
	"testing"

	"vending-sim/pkg/apperror"
)

func TestChargeBelowMinimum(t *testing.T) {
	a := NewAccount(0, 100, 20000)
	err := a.Charge(99)
	if !apperror.HasCode(err, apperror.CodeInvalidChargeAmount) {
		t.Fatalf("expected INVALID_CHARGE_AMOUNT, got %v", err)
	}
	if a.Balance() != 0 {
		t.Fatalf("balance changed on failed charge: %d", a.Balance())
	}
}

func TestChargeAtMinimumBoundary(t *testing.T) {
	a := NewAccount(0, 100, 20000)
	if err := a.Charge(100); err != nil {
		t.Fatalf("charge at minimum should succeed: %v", err)
	}
	if a.Balance() != 100 {
		t.Fatalf("expected balance 100, got %d", a.Balance())
	}
	if err := a.Charge(50); err == nil {
		t.Fatalf("charge below minimum should fail")
	}
	if a.Balance() != 100 {
		t.Fatalf("balance changed on failed charge: %d", a.Balance())
	}
}

func TestChargeOverLimit(t *testing.T) {
	a := NewAccount(19950, 100, 20000)
	err := a.Charge(100)
	if !apperror.HasCode(err, apperror.CodeInvalidChargeAmount) {
		t.Fatalf("expected INVALID_CHARGE_AMOUNT, got %v", err)
	}
	if a.Balance() != 19950 {
		t.Fatalf("balance changed on failed charge: %d", a.Balance())
	}
	if err := a.Charge(50); err == nil {
		t.Fatalf("charge below minimum should fail even near the limit")
	}
}

func TestChargeUpToLimit(t *testing.T) {
	a := NewAccount(0, 100, 20000)
	if err := a.Charge(20000); err != nil {
		t.Fatalf("charge to the exact limit should succeed: %v", err)
	}
	if a.Balance() != 20000 {
		t.Fatalf("expected balance 20000, got %d", a.Balance())
	}
}

func TestPayInsufficientBalance(t *testing.T) {
	a := NewAccount(100, 100, 20000)
	err := a.Pay(150)
	if !apperror.HasCode(err, apperror.CodeInsufficientBalance) {
		t.Fatalf("expected INSUFFICIENT_BALANCE, got %v", err)
	}
	if !strings.Contains(err.Error(), "¥50 short") {
		t.Fatalf("error should report the shortfall: %q", err.Error())
	}
	if a.Balance() != 100 {
		t.Fatalf("balance changed on failed pay: %d", a.Balance())
	}
}

func TestPayExactBalance(t *testing.T) {
	a := NewAccount(150, 100, 20000)
	if err := a.Pay(150); err != nil {
		t.Fatalf("pay of the full balance should succeed: %v", err)
	}
	if a.Balance() != 0 {
		t.Fatalf("expected balance 0, got %d", a.Balance())
	}
}

func TestPayRejectsNegativeAmount(t *testing.T) {
	a := NewAccount(100, 100, 20000)
	if err := a.Pay(-50); err == nil {
		t.Fatalf("negative payment should fail")
	}
	if a.Balance() != 100 {
		t.Fatalf("balance changed on rejected pay: %d", a.Balance())
	}
}

func TestRefundBypassesMinimumCharge(t *testing.T) {
	a := NewAccount(500, 200, 20000)
	if err := a.Pay(120); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if err := a.Refund(120); err != nil {
		t.Fatalf("refund below the minimum charge should succeed: %v", err)
	}
	if a.Balance() != 500 {
		t.Fatalf("expected balance 500 after refund, got %d", a.Balance())
	}
}

func TestRefundRejectsNegativeAmount(t *testing.T) {
	a := NewAccount(500, 100, 20000)
	if err := a.Refund(-1); err == nil {
		t.Fatalf("negative refund should fail")
	}
	if a.Balance() != 500 {
		t.Fatalf("balance changed on rejected refund: %d", a.Balance())
	}
}

func TestNewAccountClampsInitial(t *testing.T) {
	if b := NewAccount(-5, 100, 20000).Balance(); b != 0 {
		t.Fatalf("negative initial should clamp to 0, got %d", b)
	}
	if b := NewAccount(30000, 100, 20000).Balance(); b != 20000 {
		t.Fatalf("initial above the limit should clamp, got %d", b)
	}
}
