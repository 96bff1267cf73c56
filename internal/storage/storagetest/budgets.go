package storagetest

import (
	"time"

	"github.com/ledger-zero/backend/internal/models"
)

func (suite *Suite) TestBudgetRoundTrip() {
	tests := []struct {
		name      string
		recurring models.Recurring
	}{
		{"Day in month", models.DayInMonth(25)},
		{"Yearly", models.Yearly(2, 29)},
		{"Days", models.Days(time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC), 14)},
	}

	for _, tt := range tests {
		budget, err := suite.Storage.CreateBudget(suite.ctx(), models.BudgetCreate{
			Name:        tt.name,
			Description: "Test budget",
			Total:       EUR("250.5"),
			Recurring:   tt.recurring,
		})
		suite.Require().NoError(err, tt.name)

		got, err := suite.Storage.GetBudget(suite.ctx(), budget.ID)
		suite.Require().NoError(err, tt.name)
		suite.Require().NotNil(got, tt.name)
		suite.Assert().Equal(tt.name, got.Name)
		suite.Assert().Equal("Test budget", got.Description)
		suite.AssertCurrencyEqual(EUR("250.50"), got.Total)
		suite.Assert().Equal(budget.Recurring, got.Recurring, tt.name)
		suite.Assert().True(tt.recurring.Start.Equal(got.Recurring.Start), tt.name)
	}
}

func (suite *Suite) TestBudgetUpdateDelete() {
	budget := suite.createBudget("Food")

	budget.Name = "Groceries"
	budget.Recurring = models.Yearly(12, 24)
	_, err := suite.Storage.UpdateBudget(suite.ctx(), budget)
	suite.Require().NoError(err)

	budgets, err := suite.Storage.GetBudgets(suite.ctx())
	suite.Require().NoError(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal("Groceries", budgets[0].Name)
	suite.Assert().Equal(models.Yearly(12, 24), budgets[0].Recurring)

	suite.Require().NoError(suite.Storage.DeleteBudget(suite.ctx(), budget.ID))
	got, err := suite.Storage.GetBudget(suite.ctx(), budget.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)
	suite.Assert().NoError(suite.Storage.DeleteBudget(suite.ctx(), budget.ID))

	_, err = suite.Storage.UpdateBudget(suite.ctx(), budget)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *Suite) TestCategoryCRUD() {
	first := suite.createCategory(" Groceries ")
	second := suite.createCategory("Rent")
	suite.Assert().Equal("Groceries", first.Name, "names are trimmed")

	first.Name = "Food"
	_, err := suite.Storage.UpdateCategory(suite.ctx(), first)
	suite.Require().NoError(err)

	categories, err := suite.Storage.GetCategories(suite.ctx())
	suite.Require().NoError(err)
	suite.Require().Len(categories, 2)
	suite.Assert().Equal(models.Category{ID: first.ID, CategoryCreate: models.CategoryCreate{Name: "Food"}}, categories[0])
	suite.Assert().Equal(second, categories[1])

	suite.Require().NoError(suite.Storage.DeleteCategory(suite.ctx(), first.ID))
	got, err := suite.Storage.GetCategory(suite.ctx(), first.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)

	_, err = suite.Storage.UpdateCategory(suite.ctx(), first)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}
