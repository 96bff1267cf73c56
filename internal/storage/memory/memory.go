// Package memory implements a non-durable storage backend.
//
// It defines the reference semantics all other backends are tested against.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var _ storage.Storage = (*Storage)(nil)

// Storage keeps all entities in maps.
//
// IDs are assigned from one counter per entity type and are never reused.
type Storage struct {
	mu sync.RWMutex

	accounts     map[uint64]models.Account
	transactions map[uint64]models.Transaction
	budgets      map[uint64]models.Budget
	categories   map[uint64]models.Category
	bills        map[uint64]models.Bill

	lastAccountID     uint64
	lastTransactionID uint64
	lastBudgetID      uint64
	lastCategoryID    uint64
	lastBillID        uint64
}

// New returns an empty in-memory storage.
func New() *Storage {
	return &Storage{
		accounts:     make(map[uint64]models.Account),
		transactions: make(map[uint64]models.Transaction),
		budgets:      make(map[uint64]models.Budget),
		categories:   make(map[uint64]models.Category),
		bills:        make(map[uint64]models.Bill),
	}
}

// Close is a no-op, there is nothing to release.
func (s *Storage) Close() error {
	return nil
}

// sorted returns the values of m with ascending keys, each cloned.
func sorted[V any](m map[uint64]V, clone func(V) V) []V {
	keys := maps.Keys(m)
	slices.Sort(keys)

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, clone(m[k]))
	}
	return values
}

// get returns a clone of the value for id or nil.
func get[V any](m map[uint64]V, id uint64, clone func(V) V) *V {
	v, ok := m[id]
	if !ok {
		return nil
	}

	c := clone(v)
	return &c
}

func (s *Storage) CreateAssetAccount(_ context.Context, create models.AssetAccountCreate) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccountID++
	account := models.NewAssetAccount(s.lastAccountID, create)
	s.accounts[account.ID] = account
	return account.Clone(), nil
}

func (s *Storage) CreateBookCheckingAccount(_ context.Context, create models.BookCheckingAccountCreate) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccountID++
	account := models.NewBookCheckingAccount(s.lastAccountID, create)
	s.accounts[account.ID] = account
	return account.Clone(), nil
}

func (s *Storage) GetAccount(_ context.Context, id uint64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.accounts, id, models.Account.Clone), nil
}

func (s *Storage) GetAccounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.accounts, models.Account.Clone), nil
}

func (s *Storage) UpdateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return models.Account{}, models.NotFound("account", account.ID)
	}

	account = account.Clone()
	s.accounts[account.ID] = account
	return account.Clone(), nil
}

func (s *Storage) DeleteAccount(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, id)
	return nil
}

func (s *Storage) GetAccountSum(_ context.Context, id uint64, asOf time.Time) (types.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := types.Currency{}
	for _, t := range sorted(s.transactions, models.Transaction.Clone) {
		if t.Date.After(asOf) {
			continue
		}
		sum = sum.Add(storage.MovementOf(id, t))
	}

	return sum, nil
}

func (s *Storage) CreateTransaction(_ context.Context, create models.TransactionCreate) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTransactionID++
	transaction := models.NewTransaction(s.lastTransactionID, create)
	s.transactions[transaction.ID] = transaction
	return transaction.Clone(), nil
}

func (s *Storage) GetTransaction(_ context.Context, id uint64) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.transactions, id, models.Transaction.Clone), nil
}

func (s *Storage) UpdateTransaction(_ context.Context, transaction models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[transaction.ID]; !ok {
		return models.Transaction{}, models.NotFound("transaction", transaction.ID)
	}

	transaction = transaction.Clone()
	s.transactions[transaction.ID] = transaction
	return transaction.Clone(), nil
}

func (s *Storage) DeleteTransaction(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transactions, id)
	return nil
}

// transactionsWhere returns all transactions in the timespan for which the predicate holds.
func (s *Storage) transactionsWhere(timespan types.Timespan, predicate func(models.Transaction) bool) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]models.Transaction, 0)
	for _, t := range sorted(s.transactions, models.Transaction.Clone) {
		if timespan.Contains(t.Date) && predicate(t) {
			transactions = append(transactions, t)
		}
	}
	return transactions
}

func (s *Storage) GetTransactionsInTimespan(_ context.Context, timespan types.Timespan) ([]models.Transaction, error) {
	return s.transactionsWhere(timespan, func(models.Transaction) bool { return true }), nil
}

func (s *Storage) GetTransactionsOfAccount(_ context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.transactionsWhere(timespan, func(t models.Transaction) bool {
		return t.Touches(id)
	}), nil
}

func (s *Storage) GetTransactionsOfBudget(_ context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.transactionsWhere(timespan, func(t models.Transaction) bool {
		return t.Budget != nil && t.Budget.BudgetID == id
	}), nil
}

func (s *Storage) GetTransactionsOfCategory(_ context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.transactionsWhere(timespan, func(t models.Transaction) bool {
		_, ok := t.Categories[id]
		return ok
	}), nil
}

func (s *Storage) CreateBudget(_ context.Context, create models.BudgetCreate) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastBudgetID++
	budget := models.NewBudget(s.lastBudgetID, create)
	s.budgets[budget.ID] = budget
	return budget.Clone(), nil
}

func (s *Storage) GetBudget(_ context.Context, id uint64) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.budgets, id, models.Budget.Clone), nil
}

func (s *Storage) GetBudgets(_ context.Context) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.budgets, models.Budget.Clone), nil
}

func (s *Storage) UpdateBudget(_ context.Context, budget models.Budget) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[budget.ID]; !ok {
		return models.Budget{}, models.NotFound("budget", budget.ID)
	}

	budget = budget.Clone()
	s.budgets[budget.ID] = budget
	return budget.Clone(), nil
}

func (s *Storage) DeleteBudget(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.budgets, id)
	return nil
}

func (s *Storage) CreateCategory(_ context.Context, create models.CategoryCreate) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCategoryID++
	category := models.NewCategory(s.lastCategoryID, create)
	s.categories[category.ID] = category
	return category.Clone(), nil
}

func (s *Storage) GetCategory(_ context.Context, id uint64) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.categories, id, models.Category.Clone), nil
}

func (s *Storage) GetCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.categories, models.Category.Clone), nil
}

func (s *Storage) UpdateCategory(_ context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return models.Category{}, models.NotFound("category", category.ID)
	}

	category = category.Clone()
	s.categories[category.ID] = category
	return category.Clone(), nil
}

func (s *Storage) DeleteCategory(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

func (s *Storage) CreateBill(_ context.Context, create models.BillCreate) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastBillID++
	bill := models.NewBill(s.lastBillID, create)
	s.bills[bill.ID] = bill
	return bill.Clone(), nil
}

func (s *Storage) GetBill(_ context.Context, id uint64) (*models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.bills, id, models.Bill.Clone), nil
}

func (s *Storage) GetBills(_ context.Context, closed *bool) ([]models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bills := make([]models.Bill, 0)
	for _, b := range sorted(s.bills, models.Bill.Clone) {
		if closed == nil || b.Closed == *closed {
			bills = append(bills, b)
		}
	}
	return bills, nil
}

func (s *Storage) UpdateBill(_ context.Context, bill models.Bill) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bills[bill.ID]; !ok {
		return models.Bill{}, models.NotFound("bill", bill.ID)
	}

	bill = bill.Clone()
	s.bills[bill.ID] = bill
	return bill.Clone(), nil
}

func (s *Storage) DeleteBill(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bills, id)
	return nil
}
