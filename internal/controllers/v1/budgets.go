package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/httputil"
	"github.com/ledger-zero/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
		r.GET("/:id/value", co.GetBudgetValue)
		r.GET("/:id/timespan", co.GetBudgetTimespan)
		r.GET("/:id/transactions", co.GetTransactionsOfBudget)
	}
}

// @Summary		Create budget
// @Description	Creates a new budget
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		models.BudgetCreate	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var create models.BudgetCreate
	if err := httputil.BindData(c, &create); err != nil {
		return
	}

	budget, err := co.Ledger.CreateBudget(c, create)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
}

// @Summary		Get budgets
// @Description	Returns all budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	budgets, err := co.Ledger.GetBudgets(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		uint64	true	"ID of the budget"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	budget, err := co.Ledger.GetBudget(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified. The recurrence is replaced as a whole.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		uint64				true	"ID of the budget"
// @Param			budget	body		models.BudgetCreate	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	budget, err := co.Ledger.GetBudget(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	recurring := budget.Recurring
	budget.Recurring = models.Recurring{}

	if err := httputil.BindData(c, &budget); err != nil {
		return
	}
	budget.ID = id

	if budget.Recurring == (models.Recurring{}) {
		budget.Recurring = recurring
	}

	budget, err = co.Ledger.UpdateBudget(c, budget)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// @Summary		Delete budget
// @Description	Deletes a budget and removes it from all transactions
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		uint64	true	"ID of the budget"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	err = co.Ledger.DeleteBudget(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get budget value
// @Description	Returns the signed sum of the transactions of the budget in a period
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	AmountResponse
// @Failure		400			{object}	AmountResponse
// @Failure		404			{object}	AmountResponse
// @Failure		500			{object}	AmountResponse
// @Param			id			path		uint64	true	"ID of the budget"
// @Param			offset		query		int		false	"Number of periods away from the period containing the reference, defaults to 0"
// @Param			reference	query		string	false	"RFC 3339 time, defaults to now"
// @Router			/v1/budgets/{id}/value [get]
func (co Controller) GetBudgetValue(c *gin.Context) {
	id, offset, reference, err := periodQuery(c)
	if err != nil {
		return
	}

	value, err := co.Ledger.GetBudgetValue(c, id, offset, reference)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AmountResponse{Data: &value})
}

// @Summary		Get budget timespan
// @Description	Returns the timespan of a period of the budget
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	TimespanResponse
// @Failure		400			{object}	TimespanResponse
// @Failure		404			{object}	TimespanResponse
// @Failure		500			{object}	TimespanResponse
// @Param			id			path		uint64	true	"ID of the budget"
// @Param			offset		query		int		false	"Number of periods away from the period containing the reference, defaults to 0"
// @Param			reference	query		string	false	"RFC 3339 time, defaults to now"
// @Router			/v1/budgets/{id}/timespan [get]
func (co Controller) GetBudgetTimespan(c *gin.Context) {
	id, offset, reference, err := periodQuery(c)
	if err != nil {
		return
	}

	timespan, err := co.Ledger.GetBudgetTimespan(c, id, offset, reference)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TimespanResponse{Data: &timespan})
}

// periodQuery parses the parameters selecting a budget period.
func periodQuery(c *gin.Context) (uint64, int32, time.Time, error) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return 0, 0, time.Time{}, err
	}

	offset, err := httputil.QueryOffset(c)
	if err != nil {
		return 0, 0, time.Time{}, err
	}

	reference, err := httputil.QueryTime(c, "reference", time.Now())
	if err != nil {
		return 0, 0, time.Time{}, err
	}

	return id, offset, reference, nil
}

// @Summary		Get transactions of budget
// @Description	Returns all transactions counting towards the budget
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		uint64	true	"ID of the budget"
// @Param			start	query		string	false	"RFC 3339 time, inclusive"
// @Param			end		query		string	false	"RFC 3339 time, inclusive"
// @Router			/v1/budgets/{id}/transactions [get]
func (co Controller) GetTransactionsOfBudget(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	timespan, err := httputil.QueryTimespan(c)
	if err != nil {
		return
	}

	transactions, err := co.Ledger.GetTransactionsOfBudget(c, id, timespan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}
