package ledger_test

import (
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBillSum() {
	checking := suite.createTestAssetAccount("Checking")
	restaurant := suite.createTestBookCheckingAccount("Restaurant")
	friend := suite.createTestBookCheckingAccount("Friend")

	dinner := suite.createTestTransaction(models.TransactionCreate{Amount: eur("84"), SourceAccountID: checking.ID, DestinationAccountID: restaurant.ID, Date: march(1)})
	share := suite.createTestTransaction(models.TransactionCreate{Amount: eur("42"), SourceAccountID: friend.ID, DestinationAccountID: checking.ID, Date: march(2)})

	bill := suite.createTestBill(
		models.BillTransaction{TransactionID: dinner.ID, Sign: types.Positive},
		models.BillTransaction{TransactionID: share.ID, Sign: types.Negative},
	)

	sum, err := suite.controller.GetBillSum(suite.ctx, bill.ID)
	suite.Require().NoError(err)
	suite.assertCurrency(eur("42"), sum)

	empty := suite.createTestBill()
	sum, err = suite.controller.GetBillSum(suite.ctx, empty.ID)
	suite.Require().NoError(err)
	suite.assertCurrency(eur("0"), sum)
}

func (suite *TestSuiteStandard) TestBillSumDanglingTransaction() {
	checking := suite.createTestAssetAccount("Checking")
	restaurant := suite.createTestBookCheckingAccount("Restaurant")
	dinner := suite.createTestTransaction(models.TransactionCreate{SourceAccountID: checking.ID, DestinationAccountID: restaurant.ID, Date: march(1)})
	bill := suite.createTestBill(models.BillTransaction{TransactionID: dinner.ID, Sign: types.Positive})

	// Bypass the controller so that the bill keeps its reference
	suite.Require().NoError(suite.storage.DeleteTransaction(suite.ctx, dinner.ID))

	_, err := suite.controller.GetBillSum(suite.ctx, bill.ID)
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestCreateBillValidation() {
	checking := suite.createTestAssetAccount("Checking")
	restaurant := suite.createTestBookCheckingAccount("Restaurant")
	dinner := suite.createTestTransaction(models.TransactionCreate{SourceAccountID: checking.ID, DestinationAccountID: restaurant.ID, Date: march(1)})

	_, err := suite.controller.CreateBill(suite.ctx, models.BillCreate{
		Value:        eur("0"),
		Transactions: []models.BillTransaction{{TransactionID: dinner.ID + 1, Sign: types.Positive}},
	})
	suite.Assert().ErrorIs(err, models.ErrTransactionDoesNotExist)

	_, err = suite.controller.CreateBill(suite.ctx, models.BillCreate{
		Value: eur("0"),
		Transactions: []models.BillTransaction{
			{TransactionID: dinner.ID, Sign: types.Positive},
			{TransactionID: dinner.ID, Sign: types.Negative},
		},
	})
	suite.Assert().ErrorIs(err, models.ErrBillTransactionDuplicate)

	bills, err := suite.controller.GetBills(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Assert().Len(bills, 0)
}

func (suite *TestSuiteStandard) TestGetBillsClosed() {
	open := suite.createTestBill()
	closed, err := suite.controller.CreateBill(suite.ctx, models.BillCreate{Name: "Paid", Value: eur("10"), Closed: true})
	suite.Require().NoError(err)

	isClosed := true
	bills, err := suite.controller.GetBills(suite.ctx, &isClosed)
	suite.Require().NoError(err)
	suite.Require().Len(bills, 1)
	suite.Assert().Equal(closed.ID, bills[0].ID)

	isClosed = false
	bills, err = suite.controller.GetBills(suite.ctx, &isClosed)
	suite.Require().NoError(err)
	suite.Require().Len(bills, 1)
	suite.Assert().Equal(open.ID, bills[0].ID)

	suite.Require().NoError(suite.controller.DeleteBill(suite.ctx, open.ID))
	suite.Assert().ErrorIs(suite.controller.DeleteBill(suite.ctx, open.ID), models.ErrNotFound)
}
