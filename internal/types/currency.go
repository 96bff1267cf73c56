// Package types implements the value types shared by all ledger components.
package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidCurrencyCode = errors.New("the currency code is not a valid ISO 4217 code")

// Currency is an exact decimal amount tagged with an ISO 4217 currency code.
//
// The zero value has an empty code. It is the neutral element for Add and Sub
// and takes on the code of the other operand.
type Currency struct {
	Amount decimal.Decimal `json:"amount" example:"14.03"`
	Code   string          `json:"currency" example:"EUR"`
}

// NewCurrency returns a Currency for the amount in the currency with the given code.
func NewCurrency(amount decimal.Decimal, code string) (Currency, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
	}

	return Currency{Amount: amount, Code: unit.String()}.Canonical(), nil
}

// MustCurrency parses amount and panics if either the amount or the code is invalid.
func MustCurrency(amount, code string) Currency {
	c, err := NewCurrency(decimal.RequireFromString(amount), code)
	if err != nil {
		panic(err)
	}
	return c
}

// Zero returns a zero amount in the currency with the given code.
func Zero(code string) Currency {
	return Currency{Amount: decimal.Zero, Code: code}.Canonical()
}

// Validate checks that the currency code is a valid ISO 4217 code.
func (c Currency) Validate() error {
	if _, err := currency.ParseISO(c.Code); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, c.Code)
	}
	return nil
}

// Canonical returns the currency with its amount re-parsed from its string
// representation so that equal amounts have equal internal representations
// regardless of where they were read from.
func (c Currency) Canonical() Currency {
	return Currency{
		Amount: decimal.RequireFromString(c.Amount.String()),
		Code:   c.Code,
	}
}

// code returns the code of the sum of c and o.
//
// Mixing currencies is a programming error, not something a caller can recover from.
func (c Currency) code(o Currency) string {
	switch {
	case c.Code == "":
		return o.Code
	case o.Code == "", c.Code == o.Code:
		return c.Code
	}

	panic(fmt.Sprintf("currency mismatch: cannot combine %s with %s", c.Code, o.Code))
}

// Add returns c + o.
func (c Currency) Add(o Currency) Currency {
	return Currency{Amount: c.Amount.Add(o.Amount), Code: c.code(o)}
}

// Sub returns c - o.
func (c Currency) Sub(o Currency) Currency {
	return Currency{Amount: c.Amount.Sub(o.Amount), Code: c.code(o)}
}

// Neg returns -c.
func (c Currency) Neg() Currency {
	return Currency{Amount: c.Amount.Neg(), Code: c.Code}
}

// IsNegative reports whether the amount is below zero.
func (c Currency) IsNegative() bool {
	return c.Amount.IsNegative()
}

// IsZero reports whether the amount is zero.
func (c Currency) IsZero() bool {
	return c.Amount.IsZero()
}

// Equal reports whether c and o have the same code and numerically equal amounts.
func (c Currency) Equal(o Currency) bool {
	return c.Code == o.Code && c.Amount.Equal(o.Amount)
}

// String formats the amount with the standard number of decimals for the currency.
func (c Currency) String() string {
	unit, err := currency.ParseISO(c.Code)
	if err != nil {
		return c.Amount.String()
	}

	scale, _ := currency.Standard.Rounding(unit)
	return fmt.Sprintf("%s %s", c.Amount.StringFixed(int32(scale)), c.Code)
}
