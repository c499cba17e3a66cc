// Package types provides common types used across Patronage.
package types

import (
	"fmt"
	"strings"
)

// Money represents an amount of the hosting chain's currency in its
// smallest indivisible unit. All arithmetic is integer-only; no
// floating point.
//
// The currency code is a lowercase token ticker ("sub", "dot", "ksm").
// Operations across different currencies panic: a plan priced in one
// token must never be settled in another.
type Money struct {
	Amount   int64  `json:"amount"`   // Smallest unit (plancks, cents, ...)
	Currency string `json:"currency"` // Lowercase ticker
}

// New creates a Money value in the given currency.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: strings.ToLower(currency)}
}

// Zero returns a zero Money value in the specified currency.
func Zero(currency string) Money { return Money{Amount: 0, Currency: strings.ToLower(currency)} }

// Arithmetic operations

// Add adds two Money values. Panics if currencies don't match.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// Subtract subtracts another Money value. Panics if currencies don't match.
func (m Money) Subtract(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}
}

// Multiply multiplies the Money by a quantity.
func (m Money) Multiply(qty int64) Money {
	return Money{Amount: m.Amount * qty, Currency: m.Currency}
}

// Negate returns the negative of the Money value.
func (m Money) Negate() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Equal returns true if both Money values are equal (same amount and currency).
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// LessThan returns true if this Money is less than other. Panics if currencies don't match.
func (m Money) LessThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount < other.Amount
}

// GreaterThan returns true if this Money is greater than other. Panics if currencies don't match.
func (m Money) GreaterThan(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount > other.Amount
}

// AtLeast returns true if this Money is greater than or equal to other.
// Panics if currencies don't match.
func (m Money) AtLeast(other Money) bool {
	m.assertSameCurrency(other)
	return m.Amount >= other.Amount
}

// SameCurrency returns true if both values are denominated in the same
// currency. Check it before comparing values that cross a trust
// boundary; the comparison methods panic on a mismatch.
func (m Money) SameCurrency(other Money) bool { return m.Currency == other.Currency }

// String returns a human-readable string, e.g. "100 SUB".
func (m Money) String() string {
	if m.Currency == "" {
		return fmt.Sprintf("%d", m.Amount)
	}
	return fmt.Sprintf("%d %s", m.Amount, strings.ToUpper(m.Currency))
}

// assertSameCurrency panics if currencies don't match.
func (m Money) assertSameCurrency(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}
