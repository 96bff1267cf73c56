package v1_test

import (
	"net/http"

	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/filter"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/ledger-zero/backend/test"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")

	tests := []struct {
		name   string
		create models.TransactionCreate
		status int
	}{
		{"Valid", models.TransactionCreate{Amount: eur("4.20"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(1)}, http.StatusCreated},
		{"Negative amount", models.TransactionCreate{Amount: eur("-4.20"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(1)}, http.StatusBadRequest},
		{"Same account", models.TransactionCreate{Amount: eur("4.20"), SourceAccountID: checking.ID, DestinationAccountID: checking.ID, Date: date(1)}, http.StatusBadRequest},
		{"Missing account", models.TransactionCreate{Amount: eur("4.20"), SourceAccountID: checking.ID, DestinationAccountID: 99, Date: date(1)}, http.StatusBadRequest},
		{"No date", models.TransactionCreate{Amount: eur("4.20"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID}, http.StatusBadRequest},
		{"Other currency than account", models.TransactionCreate{Amount: types.MustCurrency("4.20", "USD"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(1)}, http.StatusBadRequest},
		{"Missing category", models.TransactionCreate{
			Amount: eur("4.20"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(1),
			Categories: map[uint64]types.Sign{7: types.Positive},
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/transactions", tt.create)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	r := suite.request(http.MethodPost, "/v1/transactions", `{ "categories": { "1": "neutral" } }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsInTimespan() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")

	for day := 1; day <= 5; day++ {
		suite.createTestTransaction(models.TransactionCreate{Amount: eur("1"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(day)})
	}

	tests := []struct {
		url    string
		status int
		count  int
	}{
		{"/v1/transactions", http.StatusOK, 5},
		{"/v1/transactions?start=2024-03-02T12:00:00Z", http.StatusOK, 4},
		{"/v1/transactions?start=2024-03-02T12:00:00Z&end=2024-03-04T12:00:00Z", http.StatusOK, 3},
		{"/v1/transactions?end=2024-03-01T11:59:59.999999999Z", http.StatusOK, 0},
		{"/v1/transactions?end=0001-01-01T00:00:00Z", http.StatusOK, 0},
		{"/v1/transactions?end=3000-01-01T00:00:00Z", http.StatusOK, 5},
		{"/v1/transactions?start=1000-01-01T00:00:00Z", http.StatusOK, 5},
		{"/v1/transactions?end=March", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.Run(tt.url, func() {
			r := suite.request(http.MethodGet, tt.url, nil)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			if tt.status != http.StatusOK {
				return
			}

			var list v1.TransactionListResponse
			test.DecodeResponse(suite.T(), &r, &list)
			suite.Assert().Len(list.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	food := suite.createTestCategory("Food")
	household := suite.createTestCategory("Household")

	transaction := suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("8"),
		Title:                "Groceries",
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Metadata:             map[string]string{"import": "abc"},
		Categories:           map[uint64]types.Sign{food.ID: types.Positive},
	})

	r := suite.request(http.MethodPatch, path("/transactions/%d", transaction.ID), `{ "title": "Weekly groceries" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Weekly groceries", response.Data.Title)
	suite.Assert().Equal(map[uint64]types.Sign{food.ID: types.Positive}, response.Data.Categories)
	suite.Assert().Equal(map[string]string{"import": "abc"}, response.Data.Metadata)

	r = suite.request(http.MethodPatch, path("/transactions/%d", transaction.ID), map[string]any{
		"categories": map[uint64]types.Sign{household.ID: types.Negative},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var replaced v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &replaced)
	suite.Assert().Equal(map[uint64]types.Sign{household.ID: types.Negative}, replaced.Data.Categories, "Categories must be replaced")

	r = suite.request(http.MethodPatch, path("/transactions/%d", transaction.ID), `{ "amount": { "amount": "-1", "currency": "EUR" } }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, path("/transactions/%d", transaction.ID+1), `{}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	transaction := suite.createTestTransaction(models.TransactionCreate{Amount: eur("1"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID})
	bill := suite.createTestBill(models.BillCreate{
		Value:        eur("1"),
		Transactions: []models.BillTransaction{{TransactionID: transaction.ID, Sign: types.Positive}},
	})

	r := suite.request(http.MethodDelete, path("/transactions/%d", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, path("/transactions/%d", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodGet, path("/bills/%d", bill.ID), nil)
	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data.Transactions, 0)
}

func (suite *TestSuiteStandard) TestFilterTransactions() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	landlord := suite.createTestAccount(models.AccountKindBookChecking, "Landlord")
	suite.createTestTransaction(models.TransactionCreate{Amount: eur("10"), Title: "Groceries", SourceAccountID: checking.ID, DestinationAccountID: shop.ID})
	rent := suite.createTestTransaction(models.TransactionCreate{Amount: eur("800"), Title: "Rent", SourceAccountID: checking.ID, DestinationAccountID: landlord.ID})

	r := suite.request(http.MethodPost, "/v1/transactions/filter", filter.TransactionFilter{
		Accounts: []filter.Filter{{ID: &landlord.ID, Include: true}},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(rent.ID, list.Data[0].ID)

	r = suite.request(http.MethodPost, "/v1/transactions/filter", `{ "accounts": 1 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodOptions, "/v1/transactions/filter", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
