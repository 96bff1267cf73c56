// Package storage defines the interface every ledger storage backend implements.
//
// Backends persist entities and answer range queries. They do not know
// about the relations between entities: integrity rules like cascading
// deletes live in the ledger package so that all backends behave the same.
package storage

import (
	"context"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// Storage is implemented by the memory, sqlstore and remote backends.
//
// Get methods return nil without an error when the resource does not exist.
// Update methods return an error wrapping models.ErrNotFound in that case.
// Delete methods are idempotent.
//
// Results of range queries are sorted by ascending ID. Timespan bounds are
// inclusive and compared against the transaction date.
type Storage interface {
	CreateAssetAccount(ctx context.Context, account models.AssetAccountCreate) (models.Account, error)
	CreateBookCheckingAccount(ctx context.Context, account models.BookCheckingAccountCreate) (models.Account, error)
	GetAccount(ctx context.Context, id uint64) (*models.Account, error)
	GetAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id uint64) error

	// GetAccountSum returns the sum of all incoming minus all outgoing
	// transactions of the account dated at or before asOf.
	GetAccountSum(ctx context.Context, id uint64, asOf time.Time) (types.Currency, error)

	CreateTransaction(ctx context.Context, transaction models.TransactionCreate) (models.Transaction, error)
	GetTransaction(ctx context.Context, id uint64) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint64) error
	GetTransactionsInTimespan(ctx context.Context, timespan types.Timespan) ([]models.Transaction, error)
	GetTransactionsOfAccount(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error)
	GetTransactionsOfBudget(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error)
	GetTransactionsOfCategory(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error)

	CreateBudget(ctx context.Context, budget models.BudgetCreate) (models.Budget, error)
	GetBudget(ctx context.Context, id uint64) (*models.Budget, error)
	GetBudgets(ctx context.Context) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, id uint64) error

	CreateCategory(ctx context.Context, category models.CategoryCreate) (models.Category, error)
	GetCategory(ctx context.Context, id uint64) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error

	CreateBill(ctx context.Context, bill models.BillCreate) (models.Bill, error)
	GetBill(ctx context.Context, id uint64) (*models.Bill, error)
	// GetBills returns all bills if closed is nil, otherwise only the bills
	// with the matching closed flag.
	GetBills(ctx context.Context, closed *bool) ([]models.Bill, error)
	UpdateBill(ctx context.Context, bill models.Bill) (models.Bill, error)
	DeleteBill(ctx context.Context, id uint64) error

	// Close releases all resources held by the backend.
	Close() error
}

// MovementOf returns the signed effect of the transaction on the balance
// of the account: positive when the account is the destination, negative
// when it is the source.
func MovementOf(accountID uint64, transaction models.Transaction) types.Currency {
	switch accountID {
	case transaction.DestinationAccountID:
		return transaction.Amount
	case transaction.SourceAccountID:
		return transaction.Amount.Neg()
	}
	return types.Currency{}
}
