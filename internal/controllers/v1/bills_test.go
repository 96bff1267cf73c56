package v1_test

import (
	"net/http"

	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/ledger-zero/backend/test"
)

func (suite *TestSuiteStandard) TestBills() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	restaurant := suite.createTestAccount(models.AccountKindBookChecking, "Restaurant")
	dinner := suite.createTestTransaction(models.TransactionCreate{Amount: eur("60"), SourceAccountID: checking.ID, DestinationAccountID: restaurant.ID})
	refund := suite.createTestTransaction(models.TransactionCreate{Amount: eur("18"), SourceAccountID: restaurant.ID, DestinationAccountID: checking.ID})

	open := suite.createTestBill(models.BillCreate{
		Name:  "Dinner",
		Value: eur("42"),
		Transactions: []models.BillTransaction{
			{TransactionID: refund.ID, Sign: types.Negative},
			{TransactionID: dinner.ID, Sign: types.Positive},
		},
	})
	suite.Assert().Equal(dinner.ID, open.Transactions[0].TransactionID, "Transactions must be sorted by ID")
	suite.createTestBill(models.BillCreate{Name: "Paid", Value: eur("0"), Closed: true})

	r := suite.request(http.MethodGet, path("/bills/%d/sum", open.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var amount v1.AmountResponse
	test.DecodeResponse(suite.T(), &r, &amount)
	suite.Assert().True(amount.Data.Equal(eur("42")), "got %s", amount.Data)

	tests := []struct {
		url   string
		count int
	}{
		{"/v1/bills", 2},
		{"/v1/bills?closed=true", 1},
		{"/v1/bills?closed=false", 1},
	}

	for _, tt := range tests {
		suite.Run(tt.url, func() {
			r := suite.request(http.MethodGet, tt.url, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var list v1.BillListResponse
			test.DecodeResponse(suite.T(), &r, &list)
			suite.Assert().Len(list.Data, tt.count)
		})
	}

	r = suite.request(http.MethodGet, "/v1/bills?closed=maybe", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, path("/bills/%d", open.ID), `{ "closed": true }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Closed)
	suite.Assert().Len(response.Data.Transactions, 2)

	r = suite.request(http.MethodDelete, path("/bills/%d", open.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, path("/bills/%d/sum", open.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateBillValidation() {
	checking := suite.createTestAccount(models.AccountKindAsset, "Checking")
	shop := suite.createTestAccount(models.AccountKindBookChecking, "Shop")
	transaction := suite.createTestTransaction(models.TransactionCreate{Amount: eur("1"), SourceAccountID: checking.ID, DestinationAccountID: shop.ID})

	tests := []struct {
		name   string
		create models.BillCreate
	}{
		{"Missing transaction", models.BillCreate{Value: eur("1"), Transactions: []models.BillTransaction{{TransactionID: transaction.ID + 1, Sign: types.Positive}}}},
		{"Duplicate transaction", models.BillCreate{Value: eur("1"), Transactions: []models.BillTransaction{
			{TransactionID: transaction.ID, Sign: types.Positive},
			{TransactionID: transaction.ID, Sign: types.Negative},
		}}},
		{"Invalid currency", models.BillCreate{Value: types.Currency{Code: "EURO"}}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/bills", tt.create)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}
