package ledger_test

import (
	"testing"

	"github.com/ledger-zero/backend/internal/filter"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateTransactionValidation() {
	a := suite.createTestAssetAccount("A")
	b := suite.createTestBookCheckingAccount("B")
	category := suite.createTestCategory("Food")

	tests := []struct {
		name   string
		create models.TransactionCreate
		err    error
	}{
		{"Negative amount", models.TransactionCreate{Amount: eur("-1"), SourceAccountID: a.ID, DestinationAccountID: b.ID}, models.ErrAmountNegative},
		{"Same account", models.TransactionCreate{Amount: eur("1"), SourceAccountID: a.ID, DestinationAccountID: a.ID}, models.ErrSourceEqualsDestination},
		{"Missing source", models.TransactionCreate{Amount: eur("1"), SourceAccountID: 999, DestinationAccountID: b.ID}, models.ErrAccountDoesNotExist},
		{"Missing destination", models.TransactionCreate{Amount: eur("1"), SourceAccountID: a.ID, DestinationAccountID: 999}, models.ErrAccountDoesNotExist},
		{"Missing budget", models.TransactionCreate{
			Amount: eur("1"), SourceAccountID: a.ID, DestinationAccountID: b.ID,
			Budget: &models.BudgetAssociation{BudgetID: 999, Sign: types.Positive},
		}, models.ErrBudgetDoesNotExist},
		{"Missing category", models.TransactionCreate{
			Amount: eur("1"), SourceAccountID: a.ID, DestinationAccountID: b.ID,
			Categories: map[uint64]types.Sign{999: types.Positive},
		}, models.ErrCategoryDoesNotExist},
		{"Invalid sign", models.TransactionCreate{
			Amount: eur("1"), SourceAccountID: a.ID, DestinationAccountID: b.ID,
			Categories: map[uint64]types.Sign{category.ID: 0},
		}, models.ErrSignInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			tt.create.Date = march(1)
			_, err := suite.controller.CreateTransaction(suite.ctx, tt.create)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	transactions, err := suite.controller.GetTransactionsInTimespan(suite.ctx, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Len(transactions, 0, "Invalid transactions must not be stored")
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	a := suite.createTestAssetAccount("A")
	b := suite.createTestBookCheckingAccount("B")
	transaction := suite.createTestTransaction(models.TransactionCreate{SourceAccountID: a.ID, DestinationAccountID: b.ID, Date: march(1)})

	transaction.Title = "Rent"
	transaction.Amount = eur("800")
	updated, err := suite.controller.UpdateTransaction(suite.ctx, transaction)
	suite.Require().NoError(err)
	suite.Assert().Equal("Rent", updated.Title)
	suite.assertCurrency(eur("800"), updated.Amount)

	transaction.DestinationAccountID = a.ID
	_, err = suite.controller.UpdateTransaction(suite.ctx, transaction)
	suite.Assert().ErrorIs(err, models.ErrSourceEqualsDestination)

	transaction.ID = 999
	_, err = suite.controller.UpdateTransaction(suite.ctx, transaction)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransactionRemovesItFromBills() {
	a := suite.createTestAssetAccount("A")
	b := suite.createTestBookCheckingAccount("B")
	first := suite.createTestTransaction(models.TransactionCreate{SourceAccountID: a.ID, DestinationAccountID: b.ID, Date: march(1)})
	second := suite.createTestTransaction(models.TransactionCreate{SourceAccountID: a.ID, DestinationAccountID: b.ID, Date: march(2)})

	bill := suite.createTestBill(
		models.BillTransaction{TransactionID: first.ID, Sign: types.Positive},
		models.BillTransaction{TransactionID: second.ID, Sign: types.Negative},
	)

	suite.Require().NoError(suite.controller.DeleteTransaction(suite.ctx, first.ID))

	bill, err := suite.controller.GetBill(suite.ctx, bill.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal([]models.BillTransaction{{TransactionID: second.ID, Sign: types.Negative}}, bill.Transactions)

	err = suite.controller.DeleteTransaction(suite.ctx, first.ID)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsOfMissingResource() {
	_, err := suite.controller.GetTransactionsOfAccount(suite.ctx, 17, types.Timespan{})
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.controller.GetTransactionsOfBudget(suite.ctx, 17, types.Timespan{})
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	_, err = suite.controller.GetTransactionsOfCategory(suite.ctx, 17, types.Timespan{})
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestFilterTransactions() {
	checking := suite.createTestAssetAccount("Checking")
	savings := suite.createTestAssetAccount("Savings")
	landlord := suite.createTestBookCheckingAccount("Landlord")
	shop := suite.createTestBookCheckingAccount("Shop")

	rent := suite.createTestTransaction(models.TransactionCreate{Title: "Rent March", SourceAccountID: checking.ID, DestinationAccountID: landlord.ID, Date: march(1)})
	groceries := suite.createTestTransaction(models.TransactionCreate{Title: "Groceries", SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: march(5)})
	saving := suite.createTestTransaction(models.TransactionCreate{Title: "Saving", SourceAccountID: checking.ID, DestinationAccountID: savings.ID, Date: march(10)})
	suite.createTestBill(models.BillTransaction{TransactionID: groceries.ID, Sign: types.Positive})

	id := func(id uint64) *uint64 { return &id }
	ids := func(transactions []models.Transaction) []uint64 {
		result := make([]uint64, 0, len(transactions))
		for _, t := range transactions {
			result = append(result, t.ID)
		}
		return result
	}

	tests := []struct {
		name     string
		filter   filter.TransactionFilter
		expected []uint64
	}{
		{"Empty", filter.TransactionFilter{}, []uint64{rent.ID, groceries.ID, saving.ID}},
		{"Default timespan", filter.TransactionFilter{DefaultTimespan: types.Since(march(2))}, []uint64{groceries.ID, saving.ID}},
		{"Account", filter.TransactionFilter{Accounts: []filter.Filter{{ID: id(landlord.ID), Include: true}}}, []uint64{rent.ID}},
		{"Not account", filter.TransactionFilter{Accounts: []filter.Filter{{ID: id(landlord.ID), Include: false}}}, []uint64{groceries.ID, saving.ID}},
		{"On any bill", filter.TransactionFilter{Bills: []filter.Filter{{Include: true}}}, []uint64{groceries.ID}},
		{"Title", filter.TransactionFilter{TitlePattern: "Rent*"}, []uint64{rent.ID}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transactions, err := suite.controller.FilterTransactions(suite.ctx, tt.filter)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ids(transactions))
		})
	}
}
