package storagetest

import (
	"testing"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *Suite) TestAccountCreateGet() {
	asset, err := suite.Storage.CreateAssetAccount(suite.ctx(), models.AssetAccountCreate{
		AccountCreate: models.AccountCreate{
			Name: "Checking",
			Note: "Main account",
			IBAN: "DE89370400440532013000",
			BIC:  "COBADEFFXXX",
		},
		Offset: EUR("120.50"),
	})
	suite.Require().NoError(err)

	shop := suite.createBookCheckingAccount("Bakery")
	suite.Assert().NotEqual(asset.ID, shop.ID, "account IDs must be unique")

	got, err := suite.Storage.GetAccount(suite.ctx(), asset.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().Equal(models.AccountKindAsset, got.Kind)
	suite.Assert().Equal("Checking", got.Name)
	suite.Assert().Equal("Main account", got.Note)
	suite.Assert().Equal("DE89370400440532013000", got.IBAN)
	suite.Assert().Equal("COBADEFFXXX", got.BIC)
	suite.AssertCurrencyEqual(EUR("120.50"), got.Offset)

	got, err = suite.Storage.GetAccount(suite.ctx(), shop.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().Equal(models.AccountKindBookChecking, got.Kind)
	suite.Assert().Equal("Bakery", got.Name)
	suite.Assert().True(got.Offset.IsZero())
}

func (suite *Suite) TestAccountGetMissing() {
	account, err := suite.Storage.GetAccount(suite.ctx(), 4711)
	suite.Assert().NoError(err)
	suite.Assert().Nil(account)
}

func (suite *Suite) TestAccountsOrdered() {
	first := suite.createBookCheckingAccount("Employer")
	second := suite.createAssetAccount("Savings", EUR("0"))
	third := suite.createBookCheckingAccount("Landlord")

	accounts, err := suite.Storage.GetAccounts(suite.ctx())
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 3)
	suite.Assert().Equal([]uint64{first.ID, second.ID, third.ID}, []uint64{accounts[0].ID, accounts[1].ID, accounts[2].ID})
	suite.Assert().Less(first.ID, second.ID)
	suite.Assert().Less(second.ID, third.ID)
}

func (suite *Suite) TestAccountUpdate() {
	account := suite.createAssetAccount("Checking", EUR("10"))

	account.Name = "Giro"
	account.Offset = EUR("-5.25")
	updated, err := suite.Storage.UpdateAccount(suite.ctx(), account)
	suite.Require().NoError(err)
	suite.Assert().Equal("Giro", updated.Name)

	got, err := suite.Storage.GetAccount(suite.ctx(), account.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Assert().Equal("Giro", got.Name)
	suite.AssertCurrencyEqual(EUR("-5.25"), got.Offset)
}

func (suite *Suite) TestAccountUpdateMissing() {
	_, err := suite.Storage.UpdateAccount(suite.ctx(), models.Account{ID: 4711, Kind: models.AccountKindBookChecking})
	suite.Assert().ErrorIs(err, models.ErrNotFound)
}

func (suite *Suite) TestAccountDelete() {
	account := suite.createBookCheckingAccount("Bakery")

	suite.Require().NoError(suite.Storage.DeleteAccount(suite.ctx(), account.ID))
	got, err := suite.Storage.GetAccount(suite.ctx(), account.ID)
	suite.Require().NoError(err)
	suite.Assert().Nil(got)

	suite.Assert().NoError(suite.Storage.DeleteAccount(suite.ctx(), account.ID), "deleting twice must succeed")
}

func (suite *Suite) TestAccountIDsNotReused() {
	first := suite.createBookCheckingAccount("First")
	suite.Require().NoError(suite.Storage.DeleteAccount(suite.ctx(), first.ID))

	second := suite.createBookCheckingAccount("Second")
	suite.Assert().Greater(second.ID, first.ID)
}

func (suite *Suite) TestAccountSum() {
	checking := suite.createAssetAccount("Checking", EUR("1000"))
	employer := suite.createBookCheckingAccount("Employer")
	shop := suite.createBookCheckingAccount("Shop")

	suite.transfer(employer.ID, checking.ID, "2000", Date(time.January, 1))
	suite.transfer(checking.ID, shop.ID, "49.99", Date(time.January, 10))
	suite.transfer(checking.ID, shop.ID, "10", Date(time.February, 1))

	tests := []struct {
		name    string
		account uint64
		asOf    time.Time
		sum     types.Currency
	}{
		{"Checking after all", checking.ID, Date(time.March, 1), EUR("1940.01")},
		{"Checking on date of second transaction", checking.ID, Date(time.January, 10), EUR("1950.01")},
		{"Employer", employer.ID, Date(time.March, 1), EUR("-2000")},
		{"Shop before first", shop.ID, Date(time.January, 9), types.Currency{}},
		{"Shop", shop.ID, Date(time.March, 1), EUR("59.99")},
		{"Checking in the year 3000", checking.ID, time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC), EUR("1940.01")},
		{"Checking in the year 1000", checking.ID, time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC), types.Currency{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			sum, err := suite.Storage.GetAccountSum(suite.ctx(), tt.account, tt.asOf)
			assert.NoError(t, err)
			assert.True(t, tt.sum.Amount.Equal(sum.Amount), "expected %s, got %s", tt.sum, sum)
		})
	}
}
