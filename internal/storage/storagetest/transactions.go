package storagetest

import (
	"testing"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *Suite) TestTransactionCreateGet() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")
	groceries := suite.createCategory("Groceries")
	refunds := suite.createCategory("Refunds")
	food := suite.createBudget("Food")

	date := time.Date(2024, 3, 10, 12, 43, 7, 123456789, time.FixedZone("CET", 3600))
	create := models.TransactionCreate{
		Amount:               EUR("14.03"),
		Title:                "Lunch",
		Description:          "With colleagues",
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Negative},
		Date:                 date,
		Metadata:             map[string]string{"import-hash": "abc123"},
		Categories: map[uint64]types.Sign{
			groceries.ID: types.Positive,
			refunds.ID:   types.Negative,
		},
	}

	transaction := suite.createTransaction(create)
	suite.Assert().NotZero(transaction.ID)

	got, err := suite.Storage.GetTransaction(suite.ctx(), transaction.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.AssertTransactionEqual(transaction, *got)

	suite.Assert().True(date.Equal(got.Date), "date must survive with nanosecond precision")
	suite.Assert().Equal(time.UTC, got.Date.Location())
	suite.Assert().Equal(map[string]string{"import-hash": "abc123"}, got.Metadata)
	suite.Assert().Equal(types.Negative, got.Categories[refunds.ID])
	suite.Require().NotNil(got.Budget)
	suite.Assert().Equal(food.ID, got.Budget.BudgetID)
	suite.Assert().Equal(types.Negative, got.Budget.Sign)
}

func (suite *Suite) TestTransactionWithoutOptionalFields() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")

	transaction := suite.transfer(checking.ID, shop.ID, "3", Date(time.May, 2))

	got, err := suite.Storage.GetTransaction(suite.ctx(), transaction.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().Nil(got.Budget)
	suite.Assert().NotNil(got.Categories)
	suite.Assert().Empty(got.Categories)
	suite.Assert().NotNil(got.Metadata)
	suite.Assert().Empty(got.Metadata)
}

func (suite *Suite) TestTransactionGetMissing() {
	transaction, err := suite.Storage.GetTransaction(suite.ctx(), 4711)
	suite.Assert().NoError(err)
	suite.Assert().Nil(transaction)
}

func (suite *Suite) TestTransactionUpdate() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")
	groceries := suite.createCategory("Groceries")
	household := suite.createCategory("Household")

	transaction := suite.createTransaction(models.TransactionCreate{
		Amount:               EUR("20"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 Date(time.April, 1),
		Categories:           map[uint64]types.Sign{groceries.ID: types.Positive},
	})

	transaction.Amount = EUR("25.10")
	transaction.Title = "Groceries and detergent"
	transaction.Categories = map[uint64]types.Sign{household.ID: types.Negative}
	transaction.Metadata = map[string]string{"edited": "true"}

	updated, err := suite.Storage.UpdateTransaction(suite.ctx(), transaction)
	suite.Require().NoError(err)
	suite.AssertTransactionEqual(transaction, updated)

	got, err := suite.Storage.GetTransaction(suite.ctx(), transaction.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.AssertTransactionEqual(transaction, *got)
	suite.Assert().NotContains(got.Categories, groceries.ID)
}

func (suite *Suite) TestTransactionUpdateMissing() {
	_, err := suite.Storage.UpdateTransaction(suite.ctx(), models.Transaction{ID: 4711})
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *Suite) TestTransactionDelete() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")
	groceries := suite.createCategory("Groceries")

	transaction := suite.createTransaction(models.TransactionCreate{
		Amount:               EUR("20"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 Date(time.April, 1),
		Categories:           map[uint64]types.Sign{groceries.ID: types.Positive},
	})

	suite.Require().NoError(suite.Storage.DeleteTransaction(suite.ctx(), transaction.ID))

	got, err := suite.Storage.GetTransaction(suite.ctx(), transaction.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)

	of, err := suite.Storage.GetTransactionsOfCategory(suite.ctx(), groceries.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Empty(of)

	suite.Assert().NoError(suite.Storage.DeleteTransaction(suite.ctx(), transaction.ID), "deleting twice must succeed")
}

func (suite *Suite) TestTransactionsInTimespan() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")

	january := suite.transfer(checking.ID, shop.ID, "1", Date(time.January, 15))
	february := suite.transfer(checking.ID, shop.ID, "2", Date(time.February, 15))
	march := suite.transfer(checking.ID, shop.ID, "3", Date(time.March, 15))

	tests := []struct {
		name     string
		timespan types.Timespan
		expected []uint64
	}{
		{"Unbounded", types.Timespan{}, []uint64{january.ID, february.ID, march.ID}},
		{"Inclusive bounds", types.NewTimespan(Date(time.January, 15), Date(time.February, 15)), []uint64{january.ID, february.ID}},
		{"Since", types.Since(Date(time.February, 15).Add(time.Nanosecond)), []uint64{march.ID}},
		{"Until", types.Until(Date(time.January, 15).Add(-time.Nanosecond)), []uint64{}},
		{"Single instant", types.NewTimespan(Date(time.March, 15), Date(time.March, 15)), []uint64{march.ID}},
	}

	for _, tt := range tests {
		transactions, err := suite.Storage.GetTransactionsInTimespan(suite.ctx(), tt.timespan)
		suite.Require().NoError(err, tt.name)
		suite.Assert().Equal(tt.expected, ids(transactions), tt.name)
	}
}

// TestTimespanMonotone checks that widening a timespan never loses transactions.
func (suite *Suite) TestTimespanMonotone() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")

	for day := 1; day <= 28; day += 3 {
		suite.transfer(checking.ID, shop.ID, "1", Date(time.June, day))
	}

	narrow := types.NewTimespan(Date(time.June, 7), Date(time.June, 16))
	wide := types.NewTimespan(Date(time.June, 4), Date(time.June, 22))

	inNarrow, err := suite.Storage.GetTransactionsOfAccount(suite.ctx(), checking.ID, narrow)
	suite.Require().NoError(err)
	inWide, err := suite.Storage.GetTransactionsOfAccount(suite.ctx(), checking.ID, wide)
	suite.Require().NoError(err)
	inAll, err := suite.Storage.GetTransactionsOfAccount(suite.ctx(), checking.ID, types.Timespan{})
	suite.Require().NoError(err)

	suite.Assert().Subset(ids(inWide), ids(inNarrow))
	suite.Assert().Subset(ids(inAll), ids(inWide))
	suite.Assert().Len(inNarrow, 4)
	suite.Assert().Len(inWide, 7)
	suite.Assert().Len(inAll, 10)
}

// TestTimespanBeyondStorableRange checks that bounds outside of the storable
// range of dates behave like bounds at its edges.
func (suite *Suite) TestTimespanBeyondStorableRange() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")
	transaction := suite.transfer(checking.ID, shop.ID, "5", Date(time.January, 1))

	farPast := time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)
	farFuture := time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		timespan types.Timespan
		ids      []uint64
	}{
		{"End in the year 2100", types.Until(time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)), []uint64{transaction.ID}},
		{"End in the year 3000", types.Until(farFuture), []uint64{transaction.ID}},
		{"Start in the year 1000", types.Since(farPast), []uint64{transaction.ID}},
		{"Both beyond the range", types.NewTimespan(farPast, farFuture), []uint64{transaction.ID}},
		{"Start in the year 3000", types.Since(farFuture), []uint64{}},
		{"End in the year 1000", types.Until(farPast), []uint64{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transactions, err := suite.Storage.GetTransactionsInTimespan(suite.ctx(), tt.timespan)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, ids(transactions))

			transactions, err = suite.Storage.GetTransactionsOfAccount(suite.ctx(), checking.ID, tt.timespan)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, ids(transactions))
		})
	}
}

func (suite *Suite) TestTransactionsOfAccount() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	savings := suite.createAssetAccount("Savings", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")

	outgoing := suite.transfer(checking.ID, shop.ID, "1", Date(time.January, 1))
	suite.transfer(savings.ID, shop.ID, "2", Date(time.January, 2))
	incoming := suite.transfer(savings.ID, checking.ID, "3", Date(time.January, 3))

	transactions, err := suite.Storage.GetTransactionsOfAccount(suite.ctx(), checking.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Equal([]uint64{outgoing.ID, incoming.ID}, ids(transactions))
}

func (suite *Suite) TestTransactionsOfBudgetAndCategory() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	shop := suite.createBookCheckingAccount("Shop")
	food := suite.createBudget("Food")
	groceries := suite.createCategory("Groceries")
	other := suite.createCategory("Other")

	budgeted := suite.createTransaction(models.TransactionCreate{
		Amount:               EUR("30"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 Date(time.January, 5),
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Negative},
		Categories:           map[uint64]types.Sign{groceries.ID: types.Positive},
	})
	categorized := suite.createTransaction(models.TransactionCreate{
		Amount:               EUR("30"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 Date(time.February, 5),
		Categories:           map[uint64]types.Sign{groceries.ID: types.Positive, other.ID: types.Positive},
	})
	suite.transfer(checking.ID, shop.ID, "1", Date(time.January, 6))

	ofBudget, err := suite.Storage.GetTransactionsOfBudget(suite.ctx(), food.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Equal([]uint64{budgeted.ID}, ids(ofBudget))

	ofCategory, err := suite.Storage.GetTransactionsOfCategory(suite.ctx(), groceries.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Equal([]uint64{budgeted.ID, categorized.ID}, ids(ofCategory))
	suite.Assert().Len(ofCategory[1].Categories, 2, "all categories of a transaction must be loaded")

	inJanuary, err := suite.Storage.GetTransactionsOfCategory(suite.ctx(), groceries.ID, types.Until(Date(time.January, 31)))
	suite.Require().NoError(err)
	suite.Assert().Equal([]uint64{budgeted.ID}, ids(inJanuary))
}
