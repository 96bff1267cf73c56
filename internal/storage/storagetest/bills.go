package storagetest

import (
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

func (suite *Suite) TestBillRoundTrip() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	friend := suite.createBookCheckingAccount("Friend")

	paid := suite.transfer(checking.ID, friend.ID, "40", Date(time.March, 1))
	repaid := suite.transfer(friend.ID, checking.ID, "20", Date(time.March, 2))

	due := Date(time.April, 1)
	bill, err := suite.Storage.CreateBill(suite.ctx(), models.BillCreate{
		Name:  "Dinner",
		Value: EUR("20"),
		Transactions: []models.BillTransaction{
			{TransactionID: repaid.ID, Sign: types.Negative},
			{TransactionID: paid.ID, Sign: types.Positive},
		},
		Due: &due,
	})
	suite.Require().NoError(err)

	got, err := suite.Storage.GetBill(suite.ctx(), bill.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().Equal("Dinner", got.Name)
	suite.AssertCurrencyEqual(EUR("20"), got.Value)
	suite.Assert().Equal([]models.BillTransaction{
		{TransactionID: paid.ID, Sign: types.Positive},
		{TransactionID: repaid.ID, Sign: types.Negative},
	}, got.Transactions)
	suite.Require().NotNil(got.Due)
	suite.Assert().True(due.Equal(*got.Due))
	suite.Assert().False(got.Closed)
}

func (suite *Suite) TestBillsClosedFilter() {
	open, err := suite.Storage.CreateBill(suite.ctx(), models.BillCreate{Name: "Open", Value: EUR("1")})
	suite.Require().NoError(err)
	closed, err := suite.Storage.CreateBill(suite.ctx(), models.BillCreate{Name: "Closed", Value: EUR("1"), Closed: true})
	suite.Require().NoError(err)

	isClosed, isOpen := true, false

	all, err := suite.Storage.GetBills(suite.ctx(), nil)
	suite.Require().NoError(err)
	suite.Assert().Len(all, 2)

	onlyClosed, err := suite.Storage.GetBills(suite.ctx(), &isClosed)
	suite.Require().NoError(err)
	suite.Require().Len(onlyClosed, 1)
	suite.Assert().Equal(closed.ID, onlyClosed[0].ID)

	onlyOpen, err := suite.Storage.GetBills(suite.ctx(), &isOpen)
	suite.Require().NoError(err)
	suite.Require().Len(onlyOpen, 1)
	suite.Assert().Equal(open.ID, onlyOpen[0].ID)
	suite.Assert().Nil(onlyOpen[0].Due)
	suite.Assert().NotNil(onlyOpen[0].Transactions)
}

func (suite *Suite) TestBillUpdateDelete() {
	checking := suite.createAssetAccount("Checking", EUR("0"))
	friend := suite.createBookCheckingAccount("Friend")
	first := suite.transfer(checking.ID, friend.ID, "40", Date(time.March, 1))
	second := suite.transfer(checking.ID, friend.ID, "10", Date(time.March, 3))

	bill, err := suite.Storage.CreateBill(suite.ctx(), models.BillCreate{
		Name:         "Trip",
		Value:        EUR("50"),
		Transactions: []models.BillTransaction{{TransactionID: first.ID, Sign: types.Positive}},
	})
	suite.Require().NoError(err)

	bill.Transactions = []models.BillTransaction{{TransactionID: second.ID, Sign: types.Negative}}
	bill.Closed = true
	_, err = suite.Storage.UpdateBill(suite.ctx(), bill)
	suite.Require().NoError(err)

	got, err := suite.Storage.GetBill(suite.ctx(), bill.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().True(got.Closed)
	suite.Assert().Equal([]models.BillTransaction{{TransactionID: second.ID, Sign: types.Negative}}, got.Transactions)

	suite.Require().NoError(suite.Storage.DeleteBill(suite.ctx(), bill.ID))
	got, err = suite.Storage.GetBill(suite.ctx(), bill.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)
	suite.Assert().NoError(suite.Storage.DeleteBill(suite.ctx(), bill.ID))

	_, err = suite.Storage.UpdateBill(suite.ctx(), bill)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}
