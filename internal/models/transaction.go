package models

import (
	"strings"
	"time"

	"github.com/ledger-zero/backend/internal/types"
	"golang.org/x/exp/maps"
)

// BudgetAssociation declares that a transaction counts towards a budget
// with the given sign.
type BudgetAssociation struct {
	BudgetID uint64     `json:"budgetId" example:"4"`
	Sign     types.Sign `json:"sign" example:"negative"`
}

// TransactionCreate contains all fields needed to create a transaction.
type TransactionCreate struct {
	Amount               types.Currency        `json:"amount"`                                // Magnitude of the transaction, never negative
	Title                string                `json:"title" example:"Lunch"`                 // Title of the transaction
	Description          string                `json:"description" example:"" default:""`     // Description, empty if none
	SourceAccountID      uint64                `json:"sourceAccountId" example:"1"`           // ID of the source account
	DestinationAccountID uint64                `json:"destinationAccountId" example:"2"`      // ID of the destination account
	Budget               *BudgetAssociation    `json:"budget"`                                // The budget the transaction counts towards, if any
	Date                 time.Time             `json:"date" example:"2024-03-10T12:43:00Z"`   // Time of the transaction
	Metadata             map[string]string     `json:"metadata"`                              // Free-form metadata, e.g. import deduplication keys
	Categories           map[uint64]types.Sign `json:"categories"`                            // Categories of the transaction with their sign
}

// Transaction is a transfer of money between two accounts.
type Transaction struct {
	ID uint64 `json:"id" example:"42"`
	TransactionCreate
}

// NewTransaction returns the Transaction for the create request with the given ID.
func NewTransaction(id uint64, create TransactionCreate) Transaction {
	return Transaction{ID: id, TransactionCreate: create}.Clone()
}

// Clone returns a canonical deep copy of the transaction.
//
// Maps are never nil in the copy, the date is in UTC.
func (t Transaction) Clone() Transaction {
	t.Amount = t.Amount.Canonical()
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Date = normalizeTime(t.Date)

	if t.Budget != nil {
		b := *t.Budget
		t.Budget = &b
	}

	metadata := make(map[string]string, len(t.Metadata))
	maps.Copy(metadata, t.Metadata)
	t.Metadata = metadata

	categories := make(map[uint64]types.Sign, len(t.Categories))
	maps.Copy(categories, t.Categories)
	t.Categories = categories

	return t
}

// Touches reports whether the account is the source or the destination of the transaction.
func (t Transaction) Touches(accountID uint64) bool {
	return t.SourceAccountID == accountID || t.DestinationAccountID == accountID
}

// Validate checks the values of the transaction that do not depend on other resources.
func (t TransactionCreate) Validate() error {
	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if err := t.Amount.Validate(); err != nil {
		return ErrCurrencyInvalid
	}

	if t.SourceAccountID == t.DestinationAccountID {
		return ErrSourceEqualsDestination
	}

	if !inRange(t.Date) {
		return ErrDateOutOfRange
	}

	if t.Budget != nil && !t.Budget.Sign.Valid() {
		return ErrSignInvalid
	}

	for _, sign := range t.Categories {
		if !sign.Valid() {
			return ErrSignInvalid
		}
	}

	return nil
}
