package ledger_test

import (
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

func usd(amount string) types.Currency {
	return types.MustCurrency(amount, "USD")
}

func (suite *TestSuiteStandard) createTestUSDAccount(name string) models.Account {
	account, err := suite.controller.CreateAssetAccount(suite.ctx, models.AssetAccountCreate{
		AccountCreate: models.AccountCreate{Name: name},
		Offset:        usd("0"),
	})
	suite.Require().NoError(err, "Account could not be saved")
	return account
}

func (suite *TestSuiteStandard) assertCurrencyMismatch(err error) {
	suite.Assert().ErrorIs(err, models.ErrCurrencyMismatch)
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestTransactionCurrencyBudget() {
	wallet := suite.createTestUSDAccount("Wallet")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestBudget("Food", models.DayInMonth(1))

	_, err := suite.controller.CreateTransaction(suite.ctx, models.TransactionCreate{
		Amount:               usd("5"),
		SourceAccountID:      wallet.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Negative},
		Date:                 march(3),
	})
	suite.assertCurrencyMismatch(err)

	value, err := suite.controller.GetBudgetValue(suite.ctx, food.ID, 0, march(15))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("0"), value)

	transactions, err := suite.controller.GetTransactionsInTimespan(suite.ctx, types.Timespan{})
	suite.Require().NoError(err)
	suite.Assert().Len(transactions, 0, "a rejected transaction must not be stored")
}

func (suite *TestSuiteStandard) TestTransactionCurrencyAccounts() {
	checking := suite.createTestAssetAccount("Checking")
	employer := suite.createTestBookCheckingAccount("Employer")
	shop := suite.createTestBookCheckingAccount("Shop")

	// The offset of an asset account fixes its currency
	_, err := suite.controller.CreateTransaction(suite.ctx, models.TransactionCreate{
		Amount:               usd("5"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Date:                 march(3),
	})
	suite.assertCurrencyMismatch(err)

	// The first transaction of a book checking account fixes its currency
	salary := suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("3000"),
		SourceAccountID:      employer.ID,
		DestinationAccountID: shop.ID,
	})

	_, err = suite.controller.CreateTransaction(suite.ctx, models.TransactionCreate{
		Amount:               usd("100"),
		SourceAccountID:      employer.ID,
		DestinationAccountID: shop.ID,
		Date:                 march(4),
	})
	suite.assertCurrencyMismatch(err)

	// The only transaction of the accounts may change their currency
	salary.Amount = usd("3300")
	updated, err := suite.controller.UpdateTransaction(suite.ctx, salary)
	suite.Require().NoError(err)
	suite.assertCurrency(usd("3300"), updated.Amount)

	sum, err := suite.controller.GetAccountSum(suite.ctx, shop.ID, march(31))
	suite.Require().NoError(err)
	suite.assertCurrency(usd("3300"), sum)
}

func (suite *TestSuiteStandard) TestTransactionCurrencyCategory() {
	checking := suite.createTestAssetAccount("Checking")
	wallet := suite.createTestUSDAccount("Wallet")
	shop := suite.createTestBookCheckingAccount("Shop")
	diner := suite.createTestBookCheckingAccount("Diner")
	travel := suite.createTestCategory("Travel")

	suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("40"),
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Categories:           map[uint64]types.Sign{travel.ID: types.Positive},
	})

	_, err := suite.controller.CreateTransaction(suite.ctx, models.TransactionCreate{
		Amount:               usd("12"),
		SourceAccountID:      wallet.ID,
		DestinationAccountID: diner.ID,
		Date:                 march(2),
		Categories:           map[uint64]types.Sign{travel.ID: types.Positive},
	})
	suite.assertCurrencyMismatch(err)

	values, err := suite.controller.GetRelativeCategoryValues(suite.ctx, travel.ID, types.Timespan{})
	suite.Require().NoError(err)
	suite.Require().Len(values, 1)
	suite.assertCurrency(eur("40"), values[0].Value)
}

func (suite *TestSuiteStandard) TestBillCurrency() {
	wallet := suite.createTestUSDAccount("Wallet")
	diner := suite.createTestBookCheckingAccount("Diner")
	employer := suite.createTestBookCheckingAccount("Employer")
	shop := suite.createTestBookCheckingAccount("Shop")

	dinner := suite.createTestTransaction(models.TransactionCreate{
		Amount:               usd("80"),
		SourceAccountID:      wallet.ID,
		DestinationAccountID: diner.ID,
	})

	_, err := suite.controller.CreateBill(suite.ctx, models.BillCreate{
		Name:         "Dinner",
		Value:        eur("80"),
		Transactions: []models.BillTransaction{{TransactionID: dinner.ID, Sign: types.Positive}},
	})
	suite.assertCurrencyMismatch(err)

	refund := suite.createTestTransaction(models.TransactionCreate{
		Amount:               eur("20"),
		SourceAccountID:      employer.ID,
		DestinationAccountID: shop.ID,
	})
	bill := suite.createTestBill(models.BillTransaction{TransactionID: refund.ID, Sign: types.Positive})

	// A transaction on a bill keeps the currency of the bill
	refund.Amount = usd("22")
	_, err = suite.controller.UpdateTransaction(suite.ctx, refund)
	suite.assertCurrencyMismatch(err)

	// Changing the currency of the bill is checked against its transactions
	bill.Value = usd("0")
	_, err = suite.controller.UpdateBill(suite.ctx, bill)
	suite.assertCurrencyMismatch(err)

	sum, err := suite.controller.GetBillSum(suite.ctx, bill.ID)
	suite.Require().NoError(err)
	suite.assertCurrency(eur("20"), sum)
}

func (suite *TestSuiteStandard) TestUpdateBudgetCurrency() {
	checking := suite.createTestAssetAccount("Checking")
	shop := suite.createTestBookCheckingAccount("Shop")
	food := suite.createTestBudget("Food", models.DayInMonth(1))
	travel := suite.createTestBudget("Travel", models.DayInMonth(1))

	suite.createTestTransaction(models.TransactionCreate{
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
		Budget:               &models.BudgetAssociation{BudgetID: food.ID, Sign: types.Negative},
	})

	food.Total = usd("200")
	_, err := suite.controller.UpdateBudget(suite.ctx, food)
	suite.assertCurrencyMismatch(err)

	// Without transactions, the currency can change
	travel.Total = usd("500")
	updated, err := suite.controller.UpdateBudget(suite.ctx, travel)
	suite.Require().NoError(err)
	suite.assertCurrency(usd("500"), updated.Total)

	value, err := suite.controller.GetBudgetValue(suite.ctx, food.ID, 0, march(15))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("-10"), value)
}

func (suite *TestSuiteStandard) TestUpdateAccountCurrency() {
	checking := suite.createTestAssetAccount("Checking")
	savings := suite.createTestAssetAccount("Savings")
	shop := suite.createTestBookCheckingAccount("Shop")

	suite.createTestTransaction(models.TransactionCreate{
		SourceAccountID:      checking.ID,
		DestinationAccountID: shop.ID,
	})

	checking.Offset = usd("0")
	_, err := suite.controller.UpdateAccount(suite.ctx, checking)
	suite.assertCurrencyMismatch(err)

	savings.Offset = usd("100")
	updated, err := suite.controller.UpdateAccount(suite.ctx, savings)
	suite.Require().NoError(err)
	suite.assertCurrency(usd("100"), updated.Offset)

	sum, err := suite.controller.GetAccountSum(suite.ctx, checking.ID, march(31))
	suite.Require().NoError(err)
	suite.assertCurrency(eur("-10"), sum)
}
