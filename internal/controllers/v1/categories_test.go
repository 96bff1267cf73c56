package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/ledger-zero/backend/test"
)

func (suite *TestSuiteStandard) TestCategories() {
	food := suite.createTestCategory("Food")

	r := suite.request(http.MethodPatch, path("/categories/%d", food.ID), `{ "description": "Everything edible" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Food", response.Data.Name)
	suite.Assert().Equal("Everything edible", response.Data.Description)

	r = suite.request(http.MethodGet, "/v1/categories", nil)
	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 1)

	r = suite.request(http.MethodGet, "/v1/categories/abc", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodGet, path("/categories/%d", food.ID+1), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryValues() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	food := suite.createTestCategory("Food")

	for _, tc := range []struct {
		amount string
		sign   types.Sign
		day    int
	}{
		{"12.50", types.Positive, 1},
		{"5", types.Negative, 1},
		{"100", types.Positive, 3},
	} {
		suite.createTestTransaction(models.TransactionCreate{
			Amount:               eur(tc.amount),
			SourceAccountID:      checking.ID,
			DestinationAccountID: shop.ID,
			Categories:           map[uint64]types.Sign{food.ID: tc.sign},
			Date:                 date(tc.day),
		})
	}

	r := suite.request(http.MethodGet, path("/categories/%d/values", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var values v1.CategoryValuesResponse
	test.DecodeResponse(suite.T(), &r, &values)
	suite.Require().Len(values.Data, 2)
	suite.Assert().True(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).Equal(values.Data[0].Date))
	suite.Assert().True(values.Data[0].Value.Equal(eur("7.50")), "got %s", values.Data[0].Value)
	suite.Assert().True(values.Data[1].Value.Equal(eur("107.50")), "got %s", values.Data[1].Value)

	r = suite.request(http.MethodGet, path("/categories/%d/values?start=2024-03-02T00:00:00Z", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &values)
	suite.Require().Len(values.Data, 1)
	suite.Assert().True(values.Data[0].Value.Equal(eur("100")), "got %s", values.Data[0].Value)

	r = suite.request(http.MethodGet, path("/categories/%d/transactions", food.ID), nil)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	food := suite.createTestCategory("Food")
	transaction := suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("3"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Categories:           map[uint64]types.Sign{food.ID: types.Positive},
	})

	r := suite.request(http.MethodDelete, path("/categories/%d", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, path("/transactions/%d", transaction.ID), nil)
	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data.Categories)

	r = suite.request(http.MethodGet, path("/categories/%d/values", food.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
