package models

import (
	"strings"

	"github.com/ledger-zero/backend/internal/types"
)

// BudgetCreate contains all fields needed to create a budget.
type BudgetCreate struct {
	Name        string         `json:"name" example:"Food"`                       // Name of the budget
	Description string         `json:"description" example:"" default:""`         // Description, empty if none
	Total       types.Currency `json:"total"`                                     // The amount available per period
	Recurring   Recurring      `json:"recurring"`                                 // How the budget periods are generated
}

// Budget is a recurring spending envelope.
type Budget struct {
	ID uint64 `json:"id" example:"4"`
	BudgetCreate
}

// NewBudget returns the Budget for the create request with the given ID.
func NewBudget(id uint64, create BudgetCreate) Budget {
	return Budget{ID: id, BudgetCreate: create}.Clone()
}

// Clone returns a canonical copy of the budget.
func (b Budget) Clone() Budget {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	b.Total = b.Total.Canonical()
	b.Recurring = b.Recurring.canonical()
	return b
}

// Validate checks the total and the recurrence of the budget.
func (b BudgetCreate) Validate() error {
	if err := b.Total.Validate(); err != nil {
		return ErrCurrencyInvalid
	}

	return b.Recurring.Validate()
}
