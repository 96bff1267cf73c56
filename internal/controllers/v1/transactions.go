package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/filter"
	"github.com/ledger-zero/backend/internal/httputil"
	"github.com/ledger-zero/backend/internal/models"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
		r.OPTIONS("/filter", httputil.OptionsPost)
		r.POST("/filter", co.FilterTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Create transaction
// @Description	Creates a new transaction. All referenced accounts, categories and the budget must exist.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		models.TransactionCreate	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var create models.TransactionCreate
	if err := httputil.BindData(c, &create); err != nil {
		return
	}

	transaction, err := co.Ledger.CreateTransaction(c, create)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		Get transactions
// @Description	Returns all transactions in the timespan
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	TransactionListResponse
// @Param			start	query		string	false	"RFC 3339 time, inclusive"
// @Param			end		query		string	false	"RFC 3339 time, inclusive"
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	timespan, err := httputil.QueryTimespan(c)
	if err != nil {
		return
	}

	transactions, err := co.Ledger.GetTransactionsInTimespan(c, timespan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Filter transactions
// @Description	Returns all transactions passing the filter
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	TransactionListResponse
// @Param			filter	body		filter.TransactionFilter	true	"Filter"
// @Router			/v1/transactions/filter [post]
func (co Controller) FilterTransactions(c *gin.Context) {
	var f filter.TransactionFilter
	if err := httputil.BindData(c, &f); err != nil {
		return
	}

	transactions, err := co.Ledger.FilterTransactions(c, f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		uint64	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	transaction, err := co.Ledger.GetTransaction(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. Categories and metadata are replaced as a whole.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		uint64						true	"ID of the transaction"
// @Param			transaction	body		models.TransactionCreate	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	transaction, err := co.Ledger.GetTransaction(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	// Decoding into existing maps merges the keys, so they are only kept
	// when the body does not contain them
	metadata, categories := transaction.Metadata, transaction.Categories
	transaction.Metadata, transaction.Categories = nil, nil

	if err := httputil.BindData(c, &transaction); err != nil {
		return
	}
	transaction.ID = id

	if transaction.Metadata == nil {
		transaction.Metadata = metadata
	}
	if transaction.Categories == nil {
		transaction.Categories = categories
	}

	transaction, err = co.Ledger.UpdateTransaction(c, transaction)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and removes it from all bills
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		uint64	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	err = co.Ledger.DeleteTransaction(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
