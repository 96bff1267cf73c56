package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/httputil"
	"github.com/ledger-zero/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
		r.GET("/:id/values", co.GetRelativeCategoryValues)
		r.GET("/:id/transactions", co.GetTransactionsOfCategory)
	}
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		models.CategoryCreate	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var create models.CategoryCreate
	if err := httputil.BindData(c, &create); err != nil {
		return
	}

	category, err := co.Ledger.CreateCategory(c, create)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// @Summary		Get categories
// @Description	Returns all categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	categories, err := co.Ledger.GetCategories(c)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	CategoryResponse
// @Failure		500	{object}	CategoryResponse
// @Param			id	path		uint64	true	"ID of the category"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := co.Ledger.GetCategory(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Update category
// @Description	Updates an existing category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		uint64					true	"ID of the category"
// @Param			category	body		models.CategoryCreate	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	category, err := co.Ledger.GetCategory(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := httputil.BindData(c, &category); err != nil {
		return
	}
	category.ID = id

	category, err = co.Ledger.UpdateCategory(c, category)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Delete category
// @Description	Deletes a category and removes it from all transactions
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		uint64	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	err = co.Ledger.DeleteCategory(c, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get category values
// @Description	Returns the cumulative value of the category for every day with transactions in the timespan
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryValuesResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	CategoryValuesResponse
// @Failure		500		{object}	CategoryValuesResponse
// @Param			id		path		uint64	true	"ID of the category"
// @Param			start	query		string	false	"RFC 3339 time, inclusive"
// @Param			end		query		string	false	"RFC 3339 time, inclusive"
// @Router			/v1/categories/{id}/values [get]
func (co Controller) GetRelativeCategoryValues(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	timespan, err := httputil.QueryTimespan(c)
	if err != nil {
		return
	}

	values, err := co.Ledger.GetRelativeCategoryValues(c, id, timespan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryValuesResponse{Data: values})
}

// @Summary		Get transactions of category
// @Description	Returns all transactions with the category
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	TransactionListResponse
// @Failure		500		{object}	TransactionListResponse
// @Param			id		path		uint64	true	"ID of the category"
// @Param			start	query		string	false	"RFC 3339 time, inclusive"
// @Param			end		query		string	false	"RFC 3339 time, inclusive"
// @Router			/v1/categories/{id}/transactions [get]
func (co Controller) GetTransactionsOfCategory(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return
	}

	timespan, err := httputil.QueryTimespan(c)
	if err != nil {
		return
	}

	transactions, err := co.Ledger.GetTransactionsOfCategory(c, id, timespan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}
