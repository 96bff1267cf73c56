package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/ledger-zero/backend/test"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	tests := []struct {
		name   string
		create models.BudgetCreate
		status int
	}{
		{"Monthly", models.BudgetCreate{Name: "Food", Total: eur("200"), Recurring: models.DayInMonth(1)}, http.StatusCreated},
		{"Weekly", models.BudgetCreate{Name: "Coffee", Total: eur("20"), Recurring: models.Days(date(4), 7)}, http.StatusCreated},
		{"Yearly", models.BudgetCreate{Name: "Insurance", Total: eur("400"), Recurring: models.Yearly(1, 1)}, http.StatusCreated},
		{"Invalid day", models.BudgetCreate{Name: "Food", Total: eur("200"), Recurring: models.DayInMonth(32)}, http.StatusBadRequest},
		{"No recurrence", models.BudgetCreate{Name: "Food", Total: eur("200")}, http.StatusBadRequest},
		{"No currency", models.BudgetCreate{Name: "Food", Recurring: models.DayInMonth(1)}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/budgets", tt.create)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	r := suite.request(http.MethodGet, "/v1/budgets", nil)
	var list v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	budget := suite.createTestBudget(models.BudgetCreate{Name: "Food", Total: eur("200"), Recurring: models.DayInMonth(1)})

	var response v1.BudgetResponse

	r := suite.request(http.MethodPatch, path("/budgets/%d", budget.ID), `{ "name": "Groceries" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Groceries", response.Data.Name)
	suite.Assert().Equal(models.DayInMonth(1), response.Data.Recurring, "Recurrence must be kept")

	r = suite.request(http.MethodPatch, path("/budgets/%d", budget.ID), `{ "recurring": { "kind": "yearly", "month": 2, "day": 29 } }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.Yearly(2, 29), response.Data.Recurring)

	r = suite.request(http.MethodPatch, path("/budgets/%d", budget.ID), `{ "recurring": { "kind": "yearly", "month": 2, "day": 30 } }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetValueAndTimespan() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	food := suite.createTestBudget(models.BudgetCreate{Name: "Food", Total: eur("200"), Recurring: models.DayInMonth(1)})

	for i, amount := range []string{"10", "20", "30"} {
		suite.createTestTransaction(models.TransactionCreate{
			Amount:               eur(amount),
			SourceAccountID:      checking.ID,
			DestinationAccountID: shop.ID,
			Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
			Date:                 date(5 + i),
		})
	}

	r := suite.request(http.MethodGet, path("/budgets/%d/value?reference=2024-03-15T00:00:00Z", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var amount v1.AmountResponse
	test.DecodeResponse(suite.T(), &r, &amount)
	suite.Assert().True(amount.Data.Equal(eur("60")), "expected 60 EUR, got %s", amount.Data)

	r = suite.request(http.MethodGet, path("/budgets/%d/value?reference=2024-03-15T00:00:00Z&offset=1", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &amount)
	suite.Assert().True(amount.Data.Equal(eur("0")), "expected 0 EUR, got %s", amount.Data)

	r = suite.request(http.MethodGet, path("/budgets/%d/timespan?reference=2024-03-15T00:00:00Z&offset=-1", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var timespan v1.TimespanResponse
	test.DecodeResponse(suite.T(), &r, &timespan)
	suite.Assert().True(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).Equal(*timespan.Data.Start))
	suite.Assert().True(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond).Equal(*timespan.Data.End))

	r = suite.request(http.MethodGet, path("/budgets/%d/timespan?offset=2147483647", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodGet, path("/budgets/%d/timespan?offset=lots", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodGet, path("/budgets/%d/value", food.ID+1), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodGet, path("/budgets/%d/transactions", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	food := suite.createTestBudget(models.BudgetCreate{Name: "Food", Total: eur("200"), Recurring: models.DayInMonth(1)})
	transaction := suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("10"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Positive},
	})

	r := suite.request(http.MethodDelete, path("/budgets/%d", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, path("/transactions/%d", transaction.ID), nil)
	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data.Budget)

	r = suite.request(http.MethodDelete, path("/budgets/%d", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
