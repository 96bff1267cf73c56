// Package remote implements a storage backend that forwards every call
// to a storage server.
//
// Transport failures are reported as models.ErrStorage. Calls are never
// retried since the server may have executed them.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/rpc"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/types"
)

var _ storage.Storage = (*Storage)(nil)

// Transport delivers a request to the storage server and returns its response.
type Transport interface {
	Call(ctx context.Context, request rpc.Request) (rpc.Response, error)
	Close() error
}

// Storage is a storage.Storage that executes all calls on a storage server.
type Storage struct {
	transport Transport
	timeout   time.Duration
}

// New returns a Storage using the transport. Each call is cancelled after
// timeout, a timeout of 0 disables this.
func New(transport Transport, timeout time.Duration) *Storage {
	return &Storage{
		transport: transport,
		timeout:   timeout,
	}
}

// call executes the method and decodes the result into R.
func call[R any](ctx context.Context, s *Storage, method string, params any) (R, error) {
	var result R

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	request, err := rpc.NewRequest(method, params)
	if err != nil {
		return result, fmt.Errorf("%w: encoding %s request: %w", models.ErrStorage, method, err)
	}

	response, err := s.transport.Call(ctx, request)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", models.ErrStorage, method, err)
	}

	if response.Error != nil {
		return result, response.Error
	}

	if len(response.Result) == 0 {
		return result, fmt.Errorf("%w: %s: response has neither result nor error", models.ErrStorage, method)
	}

	if err := json.Unmarshal(response.Result, &result); err != nil {
		return result, fmt.Errorf("%w: decoding %s result: %w", models.ErrStorage, method, err)
	}

	return result, nil
}

// exec executes a method without result.
func exec(ctx context.Context, s *Storage, method string, params any) error {
	_, err := call[json.RawMessage](ctx, s, method, params)
	return err
}

// Close closes the transport.
func (s *Storage) Close() error {
	return s.transport.Close()
}

func (s *Storage) CreateAssetAccount(ctx context.Context, create models.AssetAccountCreate) (models.Account, error) {
	return call[models.Account](ctx, s, rpc.MethodCreateAssetAccount, create)
}

func (s *Storage) CreateBookCheckingAccount(ctx context.Context, create models.BookCheckingAccountCreate) (models.Account, error) {
	return call[models.Account](ctx, s, rpc.MethodCreateBookCheckingAccount, create)
}

func (s *Storage) GetAccount(ctx context.Context, id uint64) (*models.Account, error) {
	return call[*models.Account](ctx, s, rpc.MethodGetAccount, rpc.IDParams{ID: id})
}

func (s *Storage) GetAccounts(ctx context.Context) ([]models.Account, error) {
	return call[[]models.Account](ctx, s, rpc.MethodGetAccounts, struct{}{})
}

func (s *Storage) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	return call[models.Account](ctx, s, rpc.MethodUpdateAccount, account)
}

func (s *Storage) DeleteAccount(ctx context.Context, id uint64) error {
	return exec(ctx, s, rpc.MethodDeleteAccount, rpc.IDParams{ID: id})
}

func (s *Storage) GetAccountSum(ctx context.Context, id uint64, asOf time.Time) (types.Currency, error) {
	return call[types.Currency](ctx, s, rpc.MethodGetAccountSum, rpc.AccountSumParams{ID: id, AsOf: asOf})
}

func (s *Storage) CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	return call[models.Transaction](ctx, s, rpc.MethodCreateTransaction, create)
}

func (s *Storage) GetTransaction(ctx context.Context, id uint64) (*models.Transaction, error) {
	return call[*models.Transaction](ctx, s, rpc.MethodGetTransaction, rpc.IDParams{ID: id})
}

func (s *Storage) UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	return call[models.Transaction](ctx, s, rpc.MethodUpdateTransaction, transaction)
}

func (s *Storage) DeleteTransaction(ctx context.Context, id uint64) error {
	return exec(ctx, s, rpc.MethodDeleteTransaction, rpc.IDParams{ID: id})
}

func (s *Storage) GetTransactionsInTimespan(ctx context.Context, timespan types.Timespan) ([]models.Transaction, error) {
	return call[[]models.Transaction](ctx, s, rpc.MethodGetTransactionsInTimespan, rpc.TimespanParams{Timespan: timespan})
}

func (s *Storage) GetTransactionsOfAccount(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return call[[]models.Transaction](ctx, s, rpc.MethodGetTransactionsOfAccount, rpc.TimespanParams{ID: id, Timespan: timespan})
}

func (s *Storage) GetTransactionsOfBudget(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return call[[]models.Transaction](ctx, s, rpc.MethodGetTransactionsOfBudget, rpc.TimespanParams{ID: id, Timespan: timespan})
}

func (s *Storage) GetTransactionsOfCategory(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return call[[]models.Transaction](ctx, s, rpc.MethodGetTransactionsOfCategory, rpc.TimespanParams{ID: id, Timespan: timespan})
}

func (s *Storage) CreateBudget(ctx context.Context, create models.BudgetCreate) (models.Budget, error) {
	return call[models.Budget](ctx, s, rpc.MethodCreateBudget, create)
}

func (s *Storage) GetBudget(ctx context.Context, id uint64) (*models.Budget, error) {
	return call[*models.Budget](ctx, s, rpc.MethodGetBudget, rpc.IDParams{ID: id})
}

func (s *Storage) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	return call[[]models.Budget](ctx, s, rpc.MethodGetBudgets, struct{}{})
}

func (s *Storage) UpdateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	return call[models.Budget](ctx, s, rpc.MethodUpdateBudget, budget)
}

func (s *Storage) DeleteBudget(ctx context.Context, id uint64) error {
	return exec(ctx, s, rpc.MethodDeleteBudget, rpc.IDParams{ID: id})
}

func (s *Storage) CreateCategory(ctx context.Context, create models.CategoryCreate) (models.Category, error) {
	return call[models.Category](ctx, s, rpc.MethodCreateCategory, create)
}

func (s *Storage) GetCategory(ctx context.Context, id uint64) (*models.Category, error) {
	return call[*models.Category](ctx, s, rpc.MethodGetCategory, rpc.IDParams{ID: id})
}

func (s *Storage) GetCategories(ctx context.Context) ([]models.Category, error) {
	return call[[]models.Category](ctx, s, rpc.MethodGetCategories, struct{}{})
}

func (s *Storage) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return call[models.Category](ctx, s, rpc.MethodUpdateCategory, category)
}

func (s *Storage) DeleteCategory(ctx context.Context, id uint64) error {
	return exec(ctx, s, rpc.MethodDeleteCategory, rpc.IDParams{ID: id})
}

func (s *Storage) CreateBill(ctx context.Context, create models.BillCreate) (models.Bill, error) {
	return call[models.Bill](ctx, s, rpc.MethodCreateBill, create)
}

func (s *Storage) GetBill(ctx context.Context, id uint64) (*models.Bill, error) {
	return call[*models.Bill](ctx, s, rpc.MethodGetBill, rpc.IDParams{ID: id})
}

func (s *Storage) GetBills(ctx context.Context, closed *bool) ([]models.Bill, error) {
	return call[[]models.Bill](ctx, s, rpc.MethodGetBills, rpc.BillsParams{Closed: closed})
}

func (s *Storage) UpdateBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	return call[models.Bill](ctx, s, rpc.MethodUpdateBill, bill)
}

func (s *Storage) DeleteBill(ctx context.Context, id uint64) error {
	return exec(ctx, s, rpc.MethodDeleteBill, rpc.IDParams{ID: id})
}
