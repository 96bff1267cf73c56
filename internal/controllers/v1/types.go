package v1

import (
	"github.com/ledger-zero/backend/internal/ledger"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// We use one type per endpoint so that swagger can parse them, it cannot handle generics.

type AccountResponse struct {
	Error *string         `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *models.Account `json:"data"`                                           // This field contains the Account data
}

type AccountListResponse struct {
	Error *string          `json:"error" example:"A human readable error message"`
	Data  []models.Account `json:"data"`
}

type TransactionResponse struct {
	Error *string             `json:"error" example:"A human readable error message"`
	Data  *models.Transaction `json:"data"`
}

type TransactionListResponse struct {
	Error *string              `json:"error" example:"A human readable error message"`
	Data  []models.Transaction `json:"data"`
}

type BudgetResponse struct {
	Error *string        `json:"error" example:"A human readable error message"`
	Data  *models.Budget `json:"data"`
}

type BudgetListResponse struct {
	Error *string         `json:"error" example:"A human readable error message"`
	Data  []models.Budget `json:"data"`
}

type CategoryResponse struct {
	Error *string          `json:"error" example:"A human readable error message"`
	Data  *models.Category `json:"data"`
}

type CategoryListResponse struct {
	Error *string           `json:"error" example:"A human readable error message"`
	Data  []models.Category `json:"data"`
}

type CategoryValuesResponse struct {
	Error *string                `json:"error" example:"A human readable error message"`
	Data  []ledger.CategoryValue `json:"data"` // Cumulative value per day, ordered by day
}

type BillResponse struct {
	Error *string      `json:"error" example:"A human readable error message"`
	Data  *models.Bill `json:"data"`
}

type BillListResponse struct {
	Error *string       `json:"error" example:"A human readable error message"`
	Data  []models.Bill `json:"data"`
}

type AmountResponse struct {
	Error *string         `json:"error" example:"A human readable error message"`
	Data  *types.Currency `json:"data"` // The computed amount
}

type TimespanResponse struct {
	Error *string         `json:"error" example:"A human readable error message"`
	Data  *types.Timespan `json:"data"`
}
