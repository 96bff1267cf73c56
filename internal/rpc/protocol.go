// Package rpc implements the protocol between the remote storage backend
// and a storage server.
//
// Every call is a JSON encoded Request answered by exactly one Response.
// The protocol is carried over HTTP or AMQP.
package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// Methods, one per operation of storage.Storage.
const (
	MethodCreateAssetAccount        = "CreateAssetAccount"
	MethodCreateBookCheckingAccount = "CreateBookCheckingAccount"
	MethodGetAccount                = "GetAccount"
	MethodGetAccounts               = "GetAccounts"
	MethodUpdateAccount             = "UpdateAccount"
	MethodDeleteAccount             = "DeleteAccount"
	MethodGetAccountSum             = "GetAccountSum"
	MethodCreateTransaction         = "CreateTransaction"
	MethodGetTransaction            = "GetTransaction"
	MethodUpdateTransaction         = "UpdateTransaction"
	MethodDeleteTransaction         = "DeleteTransaction"
	MethodGetTransactionsInTimespan = "GetTransactionsInTimespan"
	MethodGetTransactionsOfAccount  = "GetTransactionsOfAccount"
	MethodGetTransactionsOfBudget   = "GetTransactionsOfBudget"
	MethodGetTransactionsOfCategory = "GetTransactionsOfCategory"
	MethodCreateBudget              = "CreateBudget"
	MethodGetBudget                 = "GetBudget"
	MethodGetBudgets                = "GetBudgets"
	MethodUpdateBudget              = "UpdateBudget"
	MethodDeleteBudget              = "DeleteBudget"
	MethodCreateCategory            = "CreateCategory"
	MethodGetCategory               = "GetCategory"
	MethodGetCategories             = "GetCategories"
	MethodUpdateCategory            = "UpdateCategory"
	MethodDeleteCategory            = "DeleteCategory"
	MethodCreateBill                = "CreateBill"
	MethodGetBill                   = "GetBill"
	MethodGetBills                  = "GetBills"
	MethodUpdateBill                = "UpdateBill"
	MethodDeleteBill                = "DeleteBill"
)

type Request struct {
	Method string          `json:"method" example:"GetAccount"`
	Params json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// IDParams identifies a single resource.
type IDParams struct {
	ID uint64 `json:"id"`
}

// TimespanParams selects the transactions of a resource in a timespan.
// ID is ignored for GetTransactionsInTimespan.
type TimespanParams struct {
	ID       uint64         `json:"id"`
	Timespan types.Timespan `json:"timespan"`
}

type AccountSumParams struct {
	ID   uint64    `json:"id"`
	AsOf time.Time `json:"asOf"`
}

type BillsParams struct {
	Closed *bool `json:"closed"`
}

// ErrorCode classifies an Error so that clients can restore the error kind.
type ErrorCode string

const (
	CodeNotFound                 ErrorCode = "not_found"
	CodeValidation               ErrorCode = "validation"
	CodeInvalidRecurrence        ErrorCode = "invalid_recurrence"
	CodeRelatedTransactionsExist ErrorCode = "related_transactions_exist"
	CodeStorage                  ErrorCode = "storage"
	CodeBadRequest               ErrorCode = "bad_request"
)

// ErrBadRequest is returned for requests the server cannot decode.
// For callers of the storage, it is a storage error.
var ErrBadRequest = fmt.Errorf("%w: invalid remote procedure call", models.ErrStorage)

// Error is a failed call.
type Error struct {
	Code    ErrorCode `json:"code" example:"not_found"`
	Message string    `json:"message" example:"there is no account with ID 3"`
}

// NewError returns the Error for err.
func NewError(err error) *Error {
	code := CodeStorage
	switch {
	case errors.Is(err, ErrBadRequest):
		code = CodeBadRequest
	case errors.Is(err, models.ErrNotFound):
		code = CodeNotFound
	case errors.Is(err, models.ErrRelatedTransactionsExist):
		code = CodeRelatedTransactionsExist
	case errors.Is(err, models.ErrInvalidRecurrence):
		code = CodeInvalidRecurrence
	case errors.Is(err, models.ErrValidation):
		code = CodeValidation
	}

	return &Error{Code: code, Message: err.Error()}
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error kind the code stands for.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeNotFound:
		return models.ErrNotFound
	case CodeValidation:
		return models.ErrValidation
	case CodeInvalidRecurrence:
		return models.ErrInvalidRecurrence
	case CodeRelatedTransactionsExist:
		return models.ErrRelatedTransactionsExist
	case CodeBadRequest:
		return ErrBadRequest
	}

	return models.ErrStorage
}

// NewRequest encodes the parameters into a Request for the method.
func NewRequest(method string, params any) (Request, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Request{}, err
	}

	return Request{Method: method, Params: raw}, nil
}
