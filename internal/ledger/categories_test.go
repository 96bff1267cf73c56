package ledger_test

import (
	"time"

	"github.com/ledger-zero/backend/internal/ledger"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

func (suite *TestSuiteStandard) TestDeleteCategoryRemovesItFromTransactions() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestCategory("Food")
	household := suite.createTestCategory("Household")

	transaction := suite.createTestTransaction(models.TransactionCreate{
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 march(2),
		Categories:           map[uint64]types.Sign{food.ID: types.Positive, household.ID: types.Negative},
	})

	suite.Require().NoError(suite.controller.DeleteCategory(suite.ctx, food.ID))

	transaction, err := suite.controller.GetTransaction(suite.ctx, transaction.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal(map[uint64]types.Sign{household.ID: types.Negative}, transaction.Categories)

	err = suite.controller.DeleteCategory(suite.ctx, food.ID)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	category := suite.createTestCategory("Food")

	category.Name = "Groceries"
	updated, err := suite.controller.UpdateCategory(suite.ctx, category)
	suite.Require().NoError(err)
	suite.Assert().Equal("Groceries", updated.Name)

	_, err = suite.controller.UpdateCategory(suite.ctx, models.Category{ID: category.ID + 1})
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestRelativeCategoryValues() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestCategory("Food")

	create := func(amount string, date time.Time, sign types.Sign) {
		suite.createTestTransaction(models.TransactionCreate{
			Amount:               eur(amount),
			SourceAccountID:      checking.ID,
			DestinationAccountID: shop.ID,
			Date:                 date,
			Categories:           map[uint64]types.Sign{food.ID: sign},
		})
	}

	// Created out of order on purpose
	create("5", march(7), types.Negative)
	create("10", march(2), types.Positive)
	create("2.50", march(2).Add(time.Hour), types.Positive)
	create("100", march(20), types.Positive)

	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	values, err := suite.controller.GetRelativeCategoryValues(suite.ctx, food.ID, types.Until(march(10)))
	suite.Require().NoError(err)
	suite.Require().Len(values, 2)

	suite.Assert().Equal(day(2), values[0].Date)
	suite.assertCurrency(eur("12.50"), values[0].Value)
	suite.Assert().Equal(day(7), values[1].Date)
	suite.assertCurrency(eur("7.50"), values[1].Value)

	values, err = suite.controller.GetRelativeCategoryValues(suite.ctx, food.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Require().Len(values, 3)
	suite.assertCurrency(eur("107.50"), values[2].Value)

	values, err = suite.controller.GetRelativeCategoryValues(suite.ctx, food.ID, types.Since(march(25)))
	suite.Require().NoError(err)
	suite.Assert().Equal([]ledger.CategoryValue{}, values)
}
