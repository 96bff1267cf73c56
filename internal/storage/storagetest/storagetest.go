// Package storagetest contains a test suite every storage backend must pass.
package storagetest

import (
	"context"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/stretchr/testify/suite"
)

// Suite runs the conformance tests against the backends returned by New.
//
// New is called before each test and must return an empty backend.
type Suite struct {
	suite.Suite

	New     func() (storage.Storage, error)
	Storage storage.Storage
}

// SetupTest is called before each test in the suite.
func (suite *Suite) SetupTest() {
	s, err := suite.New()
	suite.Require().NoError(err, "storage backend could not be created")
	suite.Storage = s
}

// TearDownTest is called after each test in the suite.
func (suite *Suite) TearDownTest() {
	suite.Assert().NoError(suite.Storage.Close())
}

func (suite *Suite) ctx() context.Context {
	return context.Background()
}

// Date returns the time for the day in 2024 at noon, UTC.
func Date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 12, 0, 0, 0, time.UTC)
}

// EUR returns amount in Euro.
func EUR(amount string) types.Currency {
	return types.MustCurrency(amount, "EUR")
}

func (suite *Suite) createAssetAccount(name string, offset types.Currency) models.Account {
	account, err := suite.Storage.CreateAssetAccount(suite.ctx(), models.AssetAccountCreate{
		AccountCreate: models.AccountCreate{Name: name},
		Offset:        offset,
	})
	suite.Require().NoError(err, "Account could not be saved")
	return account
}

func (suite *Suite) createBookCheckingAccount(name string) models.Account {
	account, err := suite.Storage.CreateBookCheckingAccount(suite.ctx(), models.BookCheckingAccountCreate{
		AccountCreate: models.AccountCreate{Name: name},
	})
	suite.Require().NoError(err, "Account could not be saved")
	return account
}

func (suite *Suite) createTransaction(create models.TransactionCreate) models.Transaction {
	if create.Title == "" {
		create.Title = "Test transaction"
	}

	transaction, err := suite.Storage.CreateTransaction(suite.ctx(), create)
	suite.Require().NoError(err, "Transaction could not be saved")
	return transaction
}

func (suite *Suite) createCategory(name string) models.Category {
	category, err := suite.Storage.CreateCategory(suite.ctx(), models.CategoryCreate{Name: name})
	suite.Require().NoError(err, "Category could not be saved")
	return category
}

func (suite *Suite) createBudget(name string) models.Budget {
	budget, err := suite.Storage.CreateBudget(suite.ctx(), models.BudgetCreate{
		Name:      name,
		Total:     EUR("100"),
		Recurring: models.DayInMonth(1),
	})
	suite.Require().NoError(err, "Budget could not be saved")
	return budget
}

// transfer creates a transaction of amount Euro between the accounts.
func (suite *Suite) transfer(source, destination uint64, amount string, date time.Time) models.Transaction {
	return suite.createTransaction(models.TransactionCreate{
		Amount:               EUR(amount),
		SourceAccountID:      source,
		DestinationAccountID: destination,
		Date:                 date,
	})
}

// ids returns the IDs of the transactions in order.
func ids(transactions []models.Transaction) []uint64 {
	result := make([]uint64, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, t.ID)
	}
	return result
}

// AssertCurrencyEqual asserts that both currencies have the same code and amount.
func (suite *Suite) AssertCurrencyEqual(expected, actual types.Currency, msgAndArgs ...interface{}) {
	suite.Assert().True(expected.Equal(actual), "expected %s, got %s. %v", expected, actual, msgAndArgs)
}

// AssertTransactionEqual asserts that the transactions are equal, comparing amounts numerically.
func (suite *Suite) AssertTransactionEqual(expected, actual models.Transaction) {
	suite.AssertCurrencyEqual(expected.Amount, actual.Amount)

	expected, actual = expected.Clone(), actual.Clone()
	expected.Amount, actual.Amount = types.Currency{}, types.Currency{}
	suite.Assert().Equal(expected, actual)
}
