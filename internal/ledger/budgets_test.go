package ledger_test

import (
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBudgetValue() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestBudget("Food", models.DayInMonth(1))

	for i, amount := range []string{"10", "20", "30"} {
		suite.createTestTransaction(models.TransactionCreate{
			Amount:               eur(amount),
			SourceAccountID:      checking.ID,
			DestinationAccountID: shop.ID,
			Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
			Date:                 march(3 + i),
		})
	}

	// Outside of the period
	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("1000"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
		Date:                 march(1).AddDate(0, 1, 0),
	})

	value, err := suite.controller.GetBudgetValue(suite.ctx, food.ID, 0, march(15))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("60"), value)

	value, err = suite.controller.GetBudgetValue(suite.ctx, food.ID, -1, march(15))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("0"), value)

	value, err = suite.controller.GetBudgetValue(suite.ctx, food.ID, 1, march(15))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("1000"), value)
}

func (suite *TestSuiteStandard) TestBudgetValueSigns() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestBudget("Food", models.DayInMonth(1))

	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("25"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
		Date:                 march(3),
	})
	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("5.50"),
		SourceAccountID:      shop.ID,
		DestinationAccountID: checking.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Negative},
		Date:                 march(4),
	})

	value, err := suite.controller.GetBudgetValue(suite.ctx, food.ID, 0, march(4))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("19.50"), value)
}

func (suite *TestSuiteStandard) TestBudgetTimespan() {
	budget := suite.createTestBudget("Food", models.DayInMonth(15))

	timespan, err := suite.controller.GetBudgetTimespan(suite.ctx, budget.ID, 0, march(10))
	suite.Require().NoError(err)
	suite.Assert().Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *timespan.Start)
	suite.Assert().Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *timespan.End)

	_, err = suite.controller.GetBudgetTimespan(suite.ctx, budget.ID+1, 0, march(10))
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestCreateBudgetInvalidRecurrence() {
	_, err := suite.controller.CreateBudget(suite.ctx, models.BudgetCreate{
		Name:      "Broken",
		Total:     eur("10"),
		Recurring: models.Yearly(2, 30),
	})
	suite.Assert().ErrorIs(err, models.ErrInvalidRecurrence)

	budgets, err := suite.controller.GetBudgets(suite.ctx)
	suite.Require().NoError(err)
	suite.Assert().Len(budgets, 0)
}

func (suite *TestSuiteStandard) TestDeleteBudgetClearsTransactions() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestBudget("Food", models.DayInMonth(1))
	other := suite.createTestBudget("Other", models.DayInMonth(1))

	onFood := suite.createTestTransaction(models.TransactionCreate{
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
		Date:                 march(3),
	})
	onOther := suite.createTestTransaction(models.TransactionCreate{
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: other.ID, Sign: types.Positive},
		Date:                 march(3),
	})

	suite.Require().NoError(suite.controller.DeleteBudget(suite.ctx, food.ID))

	_, err := suite.controller.GetBudget(suite.ctx, food.ID)
	suite.Assert().ErrorIs(err, models.ErrNotFound)

	transaction, err := suite.controller.GetTransaction(suite.ctx, onFood.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(transaction.Budget)

	transaction, err = suite.controller.GetTransaction(suite.ctx, onOther.ID)
	suite.Require().NoError(err)
	suite.Assert().Equal(&models.BudgetAssociation{BudgetID: other.ID, Sign: types.Positive}, transaction.Budget)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	budget := suite.createTestBudget("Food", models.DayInMonth(1))

	budget.Recurring = models.Days(march(1), 7)
	updated, err := suite.controller.UpdateBudget(suite.ctx, budget)
	suite.Require().NoError(err)
	suite.Assert().Equal(models.Days(march(1), 7), updated.Recurring)

	budget.Recurring = models.Days(march(1), 0)
	_, err = suite.controller.UpdateBudget(suite.ctx, budget)
	suite.Assert().ErrorIs(err, models.ErrRecurrenceLengthNotPositive)
}
