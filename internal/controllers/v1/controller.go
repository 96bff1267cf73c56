// Package v1 implements the HTTP API for the ledger.
//
// All responses use the same envelope: the resource in "data" and, if the
// request failed, a human readable message in "error".
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/ledger"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Controller serves the API for one ledger.
type Controller struct {
	Ledger *ledger.Controller
}

// RegisterRoutes registers all resource routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterBillRoutes(r.Group("/bills"))
}

// status returns the HTTP status code for the error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRelatedTransactionsExist):
		return http.StatusConflict
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidRecurrence):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data"`
}

// writeError writes the error response for err.
func writeError(c *gin.Context, err error) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	c.JSON(code, errorResponse{Error: err.Error()})
}
