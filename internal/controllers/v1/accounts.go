package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/httputil"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// AccountEditable is the body to create an account.
type AccountEditable struct {
	Kind models.AccountKind `json:"kind" example:"asset"` // asset or book_checking
	models.AccountCreate
	Offset types.Currency `json:"offset"` // Only used for asset accounts
}

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetAccount)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)
		r.GET("/:id/sum", co.GetAccountSum)
		r.GET("/:id/transactions", co.GetTransactionsOfAccount)
	}
}

// @Summary		Create account
// @Description	Creates a new asset or book checking account
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	var editable AccountEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	var account models.Account
	var err error

	switch editable.Kind {
	case models.AccountKindAsset:
		account, err = co.Ledger.CreateAssetAccount(c, models.AssetAccountCreate{
			AccountCreate: editable.AccountCreate,
			Offset:        editable.Offset,
		})
	case models.AccountKindBookChecking:
		account, err = co.Ledger.CreateBookCheckingAccount(c, models.BookCheckingAccountCreate{
			AccountCreate: editable.AccountCreate,
		})
	default:
		err = models.ErrAccountKindInvalid
	}

	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &account})
}

// @Summary		Get accounts
// @Description	Returns all accounts
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	accounts, err := co.Ledger.GetAccounts(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: accounts})
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		uint64	true	"ID of the account"
// @Router			/v1/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	account, err := co.Ledger.GetAccount(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// @Summary		Update account
// @Description	Updates an existing account. Only values to be updated need to be specified. The kind cannot be changed.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		uint64			true	"ID of the account"
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	account, err := co.Ledger.GetAccount(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := httputil.BindData(c, &account); err != nil {
		return
	}
	account.ID = id

	account, err = co.Ledger.UpdateAccount(c, account)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// @Summary		Delete account
// @Description	Deletes an account. If transactions of the account exist, the deletion fails unless purge is set, which deletes them, too.
// @Tags			Accounts
// @Success		204
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		409		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			id		path		uint64	true	"ID of the account"
// @Param			purge	query		bool	false	"Delete all transactions of the account"
// @Router			/v1/accounts/{id} [delete]
func (co Controller) DeleteAccount(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	purge, err := httputil.QueryBool(c, "purge")
	if err != nil {
		return
	}

	err = co.Ledger.DeleteAccount(c, id, purge != nil && *purge)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get account sum
// @Description	Returns the balance of the account at a point in time, including the offset for asset accounts
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	AmountResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	AmountResponse
// @Failure		500		{object}	AmountResponse
// @Param			id		path		uint64	true	"ID of the account"
// @Param			asOf	query		string	false	"RFC 3339 time, defaults to now"
// @Router			/v1/accounts/{id}/sum [get]
func (co Controller) GetAccountSum(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	asOf, err := httputil.QueryTime(c, "asOf", time.Now())
	if err != nil {
		return
	}

	sum, err := co.Ledger.GetAccountSum(c, id, asOf)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AmountResponse{Data: &sum})
}

// @Summary		Get transactions of account
// @Description	Returns all transactions with the account as source or destination
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		uint64	true	"ID of the account"
// @Param			start	query		string	false	"RFC 3339 time, inclusive"
// @Param			end		query		string	false	"RFC 3339 time, inclusive"
// @Router			/v1/accounts/{id}/transactions [get]
func (co Controller) GetTransactionsOfAccount(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	timespan, err := httputil.QueryTimespan(c)
	if err != nil {
		return
	}

	transactions, err := co.Ledger.GetTransactionsOfAccount(c, id, timespan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}
