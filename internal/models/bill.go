package models

import (
	"strings"
	"time"

	"github.com/ledger-zero/backend/internal/types"
	"golang.org/x/exp/slices"
)

// BillTransaction is one transaction on a bill with the sign it is counted with.
type BillTransaction struct {
	TransactionID uint64     `json:"transactionId" example:"42"`
	Sign          types.Sign `json:"sign" example:"positive"`
}

// BillCreate contains all fields needed to create a bill.
type BillCreate struct {
	Name         string            `json:"name" example:"Dinner with friends"` // Name of the bill
	Description  string            `json:"description" example:"" default:""`  // Description, empty if none
	Value        types.Currency    `json:"value"`                              // The target value of the bill
	Transactions []BillTransaction `json:"transactions"`                       // The transactions composing the bill
	Due          *time.Time        `json:"due" example:"2024-04-01T00:00:00Z"` // Due date, if any
	Closed       bool              `json:"closed" example:"false" default:"false"`
}

// Bill groups transactions, e.g. an invoice that is paid in parts.
type Bill struct {
	ID uint64 `json:"id" example:"8"`
	BillCreate
}

// NewBill returns the Bill for the create request with the given ID.
func NewBill(id uint64, create BillCreate) Bill {
	return Bill{ID: id, BillCreate: create}.Clone()
}

// Clone returns a canonical deep copy of the bill.
//
// The transactions are sorted by transaction ID.
func (b Bill) Clone() Bill {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	b.Value = b.Value.Canonical()

	if b.Due != nil {
		due := normalizeTime(*b.Due)
		b.Due = &due
	}

	transactions := make([]BillTransaction, len(b.Transactions))
	copy(transactions, b.Transactions)
	slices.SortStableFunc(transactions, func(a, b BillTransaction) int {
		switch {
		case a.TransactionID < b.TransactionID:
			return -1
		case a.TransactionID > b.TransactionID:
			return 1
		}
		return 0
	})
	b.Transactions = transactions

	return b
}

// Contains reports whether the transaction is part of the bill.
func (b Bill) Contains(transactionID uint64) bool {
	return slices.ContainsFunc(b.Transactions, func(t BillTransaction) bool {
		return t.TransactionID == transactionID
	})
}

// Without returns a copy of the bill with the transaction removed.
func (b Bill) Without(transactionID uint64) Bill {
	b = b.Clone()
	b.Transactions = slices.DeleteFunc(b.Transactions, func(t BillTransaction) bool {
		return t.TransactionID == transactionID
	})
	return b
}

// Validate checks the value, the signs and that no transaction is listed twice.
func (b BillCreate) Validate() error {
	if err := b.Value.Validate(); err != nil {
		return ErrCurrencyInvalid
	}

	if b.Due != nil && !inRange(*b.Due) {
		return ErrDateOutOfRange
	}

	seen := make(map[uint64]bool, len(b.Transactions))
	for _, t := range b.Transactions {
		if !t.Sign.Valid() {
			return ErrSignInvalid
		}

		if seen[t.TransactionID] {
			return ErrBillTransactionDuplicate
		}
		seen[t.TransactionID] = true
	}

	return nil
}
