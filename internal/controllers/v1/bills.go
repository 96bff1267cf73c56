package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/httputil"
	"github.com/ledger-zero/backend/internal/models"
)

// RegisterBillRoutes registers the routes for bills with
// the RouterGroup that is passed.
func (co Controller) RegisterBillRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBills)
		r.POST("", co.CreateBill)
	}

	// Bill with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetBill)
		r.PATCH("/:id", co.UpdateBill)
		r.DELETE("/:id", co.DeleteBill)
		r.GET("/:id/sum", co.GetBillSum)
	}
}

// @Summary		Create bill
// @Description	Creates a new bill. All transactions on the bill must exist.
// @Tags			Bills
// @Accept			json
// @Produce		json
// @Success		201		{object}	BillResponse
// @Failure		400		{object}	BillResponse
// @Failure		500		{object}	BillResponse
// @Param			bill	body		models.BillCreate	true	"Bill"
// @Router			/v1/bills [post]
func (co Controller) CreateBill(c *gin.Context) {
	var create models.BillCreate
	if err := httputil.BindData(c, &create); err != nil {
		return
	}

	bill, err := co.Ledger.CreateBill(c, create)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BillResponse{Data: &bill})
}

// @Summary		Get bills
// @Description	Returns all bills
// @Tags			Bills
// @Produce		json
// @Success		200		{object}	BillListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	BillListResponse
// @Param			closed	query		bool	false	"Only return bills with this state"
// @Router			/v1/bills [get]
func (co Controller) GetBills(c *gin.Context) {
	closed, err := httputil.QueryBool(c, "closed")
	if err != nil {
		return
	}

	bills, err := co.Ledger.GetBills(c, closed)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BillListResponse{Data: bills})
}

// @Summary		Get bill
// @Description	Returns a specific bill
// @Tags			Bills
// @Produce		json
// @Success		200	{object}	BillResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	BillResponse
// @Failure		500	{object}	BillResponse
// @Param			id	path		uint64	true	"ID of the bill"
// @Router			/v1/bills/{id} [get]
func (co Controller) GetBill(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	bill, err := co.Ledger.GetBill(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: &bill})
}

// @Summary		Update bill
// @Description	Updates an existing bill. Only values to be updated need to be specified. The transactions are replaced as a whole.
// @Tags			Bills
// @Accept			json
// @Produce		json
// @Success		200		{object}	BillResponse
// @Failure		400		{object}	BillResponse
// @Failure		404		{object}	BillResponse
// @Failure		500		{object}	BillResponse
// @Param			id		path		uint64				true	"ID of the bill"
// @Param			bill	body		models.BillCreate	true	"Bill"
// @Router			/v1/bills/{id} [patch]
func (co Controller) UpdateBill(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	bill, err := co.Ledger.GetBill(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := httputil.BindData(c, &bill); err != nil {
		return
	}
	bill.ID = id

	bill, err = co.Ledger.UpdateBill(c, bill)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: &bill})
}

// @Summary		Delete bill
// @Description	Deletes a bill. The transactions on it are kept.
// @Tags			Bills
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		uint64	true	"ID of the bill"
// @Router			/v1/bills/{id} [delete]
func (co Controller) DeleteBill(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	err = co.Ledger.DeleteBill(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get bill sum
// @Description	Returns the signed sum of the transactions on the bill
// @Tags			Bills
// @Produce		json
// @Success		200	{object}	AmountResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	AmountResponse
// @Failure		500	{object}	AmountResponse
// @Param			id	path		uint64	true	"ID of the bill"
// @Router			/v1/bills/{id}/sum [get]
func (co Controller) GetBillSum(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	sum, err := co.Ledger.GetBillSum(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AmountResponse{Data: &sum})
}
