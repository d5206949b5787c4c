package apperror

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain error.
type Code string

const (
	// CodeProductNotFound indicates a lookup for an unknown product id.
	CodeProductNotFound Code = "PRODUCT_NOT_FOUND"
	// CodeSoldOut indicates a product with an empty stock queue.
	CodeSoldOut Code = "SOLD_OUT"
	// CodeInvalidChargeAmount indicates a charge below the minimum or above the balance limit.
	CodeInvalidChargeAmount Code = "INVALID_CHARGE_AMOUNT"
	// CodeInsufficientBalance indicates a payment exceeding the current balance.
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	// CodeInvalidQuantity indicates a restock quantity below one.
	CodeInvalidQuantity Code = "INVALID_QUANTITY"
	// CodeInternal indicates an unexpected failure.
	CodeInternal Code = "INTERNAL"
)

// Error represents a structured domain error.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ProductNotFound creates an error for an unknown product id.
func ProductNotFound(productID int) *Error {
	return &Error{
		Code:    CodeProductNotFound,
		Message: fmt.Sprintf("product %d does not exist", productID),
	}
}

// SoldOut creates an error for an exhausted product.
func SoldOut(brand string) *Error {
	return &Error{
		Code:    CodeSoldOut,
		Message: fmt.Sprintf("%s is sold out", brand),
	}
}

// InvalidChargeAmount creates an error for a rejected charge. The message
// carries the offending amount and the current balance.
func InvalidChargeAmount(amount, balance int, reason string) *Error {
	return &Error{
		Code:    CodeInvalidChargeAmount,
		Message: fmt.Sprintf("%s (amount: ¥%d, balance: ¥%d)", reason, amount, balance),
	}
}

// InsufficientBalance creates an error for a payment exceeding the balance.
// The message carries the shortfall.
func InsufficientBalance(required, balance int) *Error {
	return &Error{
		Code: CodeInsufficientBalance,
		Message: fmt.Sprintf("insufficient balance: ¥%d short (required: ¥%d, balance: ¥%d)",
			required-balance, required, balance),
	}
}

// InvalidQuantity creates an error for a restock quantity below one.
func InvalidQuantity(quantity int) *Error {
	return &Error{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("quantity must be at least 1, got %d", quantity),
	}
}

// Internal creates an error for an unexpected failure.
func Internal(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{
		Code:    CodeInternal,
		Message: message,
	}
}

// HasCode reports whether err is an *Error carrying the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf returns the code of err, or CodeInternal if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
