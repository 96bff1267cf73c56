package models

import (
	"strings"

	"github.com/ledger-zero/backend/internal/types"
)

// AccountKind distinguishes the two account variants.
type AccountKind string

const (
	AccountKindAsset        AccountKind = "asset"         // An account holding money, e.g. a bank account
	AccountKindBookChecking AccountKind = "book_checking" // A counterparty, e.g. a shop or an employer
)

// AccountCreate contains the identity fields shared by both account kinds.
type AccountCreate struct {
	Name string `json:"name" example:"Checking"`                   // Name of the account
	Note string `json:"note" example:"Main account" default:""`    // A note, empty if none
	IBAN string `json:"iban" example:"DE89370400440532013000"`     // IBAN or similar identifier, empty if none
	BIC  string `json:"bic" example:"COBADEFFXXX"`                 // BIC, empty if none
}

// AssetAccountCreate contains all fields needed to create an asset account.
type AssetAccountCreate struct {
	AccountCreate
	Offset types.Currency `json:"offset"` // Balance of the account that predates all recorded transactions
}

// BookCheckingAccountCreate contains all fields needed to create a book checking account.
type BookCheckingAccountCreate struct {
	AccountCreate
}

// Account is either an asset account or a book checking account.
type Account struct {
	ID   uint64      `json:"id" example:"17"`
	Kind AccountKind `json:"kind" example:"asset"`
	AccountCreate
	Offset types.Currency `json:"offset"` // Only used for asset accounts
}

// NewAssetAccount returns the Account for the create request with the given ID.
func NewAssetAccount(id uint64, create AssetAccountCreate) Account {
	return Account{
		ID:            id,
		Kind:          AccountKindAsset,
		AccountCreate: create.AccountCreate,
		Offset:        create.Offset,
	}.Clone()
}

// NewBookCheckingAccount returns the Account for the create request with the given ID.
func NewBookCheckingAccount(id uint64, create BookCheckingAccountCreate) Account {
	return Account{
		ID:            id,
		Kind:          AccountKindBookChecking,
		AccountCreate: create.AccountCreate,
	}.Clone()
}

// Clone returns a canonical copy of the account.
//
// Book checking accounts never carry an offset.
func (a Account) Clone() Account {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	a.IBAN = strings.TrimSpace(a.IBAN)
	a.BIC = strings.TrimSpace(a.BIC)

	if a.Kind == AccountKindBookChecking {
		a.Offset = types.Currency{}
	}
	a.Offset = a.Offset.Canonical()

	return a
}

// Validate checks the account for values that can never be stored.
func (a Account) Validate() error {
	switch a.Kind {
	case AccountKindAsset:
		if err := a.Offset.Validate(); err != nil {
			return ErrCurrencyInvalid
		}
	case AccountKindBookChecking:
	default:
		return ErrAccountKindInvalid
	}

	return nil
}
