package v1_test

import (
	"net/http"

	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/test"
)

func (suite *TestSuiteStandard) TestCreateAccount() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Asset", v1.AccountEditable{Kind: models.AccountKindAsset, AccountCreate: models.AccountCreate{Name: "Checking"}, Offset: eur("100")}, http.StatusCreated},
		{"Book checking", v1.AccountEditable{Kind: models.AccountKindBookChecking, AccountCreate: models.AccountCreate{Name: "Shop"}}, http.StatusCreated},
		{"Unknown kind", v1.AccountEditable{Kind: "liability"}, http.StatusBadRequest},
		{"Asset without currency", v1.AccountEditable{Kind: models.AccountKindAsset}, http.StatusBadRequest},
		{"Broken body", `{ "kind": "asset"`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/accounts", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetAccount() {
	account := suite.createTestAccount(models.AccountKindAsset, "Checking")

	r := suite.request(http.MethodGet, path("/accounts/%d", account.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Checking", response.Data.Name)
	suite.Assert().Nil(response.Error)

	r = suite.request(http.MethodGet, path("/accounts/%d", account.ID+1), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, "there is no account")

	r = suite.request(http.MethodGet, "/v1/accounts/checking", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodGet, "/v1/accounts", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 1)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	account := suite.createTestAccount(models.AccountKindAsset, "Checking")

	r := suite.request(http.MethodPatch, path("/accounts/%d", account.ID), `{ "note": "Main account" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Checking", response.Data.Name, "Fields missing in the body must be kept")
	suite.Assert().Equal("Main account", response.Data.Note)

	r = suite.request(http.MethodPatch, path("/accounts/%d", account.ID), `{ "kind": "book_checking" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, path("/accounts/%d", account.ID+1), `{ "name": "Other" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("10"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
	})

	r := suite.request(http.MethodDelete, path("/accounts/%d", shop.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = suite.request(http.MethodDelete, path("/accounts/%d?purge=yes", shop.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodDelete, path("/accounts/%d?purge=true", shop.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/v1/transactions", nil)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)

	r = suite.request(http.MethodDelete, path("/accounts/%d", shop.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountSum() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("12.50"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 date(10),
	})

	tests := []struct {
		name     string
		url      string
		status   int
		expected string
	}{
		{"Now", path("/accounts/%d/sum", checking.ID), http.StatusOK, "-12.5"},
		{"Before", path("/accounts/%d/sum?asOf=2024-03-09T00:00:00Z", checking.ID), http.StatusOK, "0"},
		{"Destination", path("/accounts/%d/sum", shop.ID), http.StatusOK, "12.5"},
		{"Broken time", path("/accounts/%d/sum?asOf=yesterday", shop.ID), http.StatusBadRequest, ""},
		{"Missing", path("/accounts/%d/sum", shop.ID+1), http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, tt.url, nil)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			if tt.status != http.StatusOK {
				return
			}

			var response v1.AmountResponse
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().True(response.Data.Equal(eur(tt.expected)), "expected %s, got %s", tt.expected, response.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsOfAccount() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	other := suite.createTestAccount(models.AccountKindBookChecking, "Other")
	transaction := suite.createTestTransaction(models.TransactionCreate{Amount: eur("1"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID, Date: date(1)})
	suite.createTestTransaction(models.TransactionCreate{Amount: eur("1"), SourceAccountID: checking.ID, DestinationAccountID: other.ID, Date: date(2)})

	r := suite.request(http.MethodGet, path("/accounts/%d/transactions", shop.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(transaction.ID, list.Data[0].ID)
}

func (suite *TestSuiteStandard) TestOptionsAccounts() {
	r := suite.request(http.MethodOptions, "/v1/accounts", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "/v1/accounts/1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}
