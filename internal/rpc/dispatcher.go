package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
)

type handler func(ctx context.Context, params json.RawMessage) (any, error)

// method adapts a typed storage operation to a handler.
func method[P, R any](fn func(context.Context, P) (R, error)) handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params P
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &params); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
			}
		}

		return fn(ctx, params)
	}
}

// none is the parameter type of methods without parameters.
type none struct{}

// Dispatcher serves requests from a storage backend.
//
// Requests are executed one at a time.
type Dispatcher struct {
	mu       sync.Mutex
	storage  storage.Storage
	handlers map[string]handler
}

// NewDispatcher returns a Dispatcher that executes requests on s.
func NewDispatcher(s storage.Storage) *Dispatcher {
	return &Dispatcher{
		storage: s,
		handlers: map[string]handler{
			MethodCreateAssetAccount:        method(s.CreateAssetAccount),
			MethodCreateBookCheckingAccount: method(s.CreateBookCheckingAccount),
			MethodGetAccount: method(func(ctx context.Context, p IDParams) (*models.Account, error) {
				return s.GetAccount(ctx, p.ID)
			}),
			MethodGetAccounts: method(func(ctx context.Context, _ none) ([]models.Account, error) {
				return s.GetAccounts(ctx)
			}),
			MethodUpdateAccount: method(s.UpdateAccount),
			MethodDeleteAccount: method(func(ctx context.Context, p IDParams) (none, error) {
				return none{}, s.DeleteAccount(ctx, p.ID)
			}),
			MethodGetAccountSum: method(func(ctx context.Context, p AccountSumParams) (types.Currency, error) {
				return s.GetAccountSum(ctx, p.ID, p.AsOf)
			}),

			MethodCreateTransaction: method(s.CreateTransaction),
			MethodGetTransaction: method(func(ctx context.Context, p IDParams) (*models.Transaction, error) {
				return s.GetTransaction(ctx, p.ID)
			}),
			MethodUpdateTransaction: method(s.UpdateTransaction),
			MethodDeleteTransaction: method(func(ctx context.Context, p IDParams) (none, error) {
				return none{}, s.DeleteTransaction(ctx, p.ID)
			}),
			MethodGetTransactionsInTimespan: method(func(ctx context.Context, p TimespanParams) ([]models.Transaction, error) {
				return s.GetTransactionsInTimespan(ctx, p.Timespan)
			}),
			MethodGetTransactionsOfAccount: method(func(ctx context.Context, p TimespanParams) ([]models.Transaction, error) {
				return s.GetTransactionsOfAccount(ctx, p.ID, p.Timespan)
			}),
			MethodGetTransactionsOfBudget: method(func(ctx context.Context, p TimespanParams) ([]models.Transaction, error) {
				return s.GetTransactionsOfBudget(ctx, p.ID, p.Timespan)
			}),
			MethodGetTransactionsOfCategory: method(func(ctx context.Context, p TimespanParams) ([]models.Transaction, error) {
				return s.GetTransactionsOfCategory(ctx, p.ID, p.Timespan)
			}),

			MethodCreateBudget: method(s.CreateBudget),
			MethodGetBudget: method(func(ctx context.Context, p IDParams) (*models.Budget, error) {
				return s.GetBudget(ctx, p.ID)
			}),
			MethodGetBudgets: method(func(ctx context.Context, _ none) ([]models.Budget, error) {
				return s.GetBudgets(ctx)
			}),
			MethodUpdateBudget: method(s.UpdateBudget),
			MethodDeleteBudget: method(func(ctx context.Context, p IDParams) (none, error) {
				return none{}, s.DeleteBudget(ctx, p.ID)
			}),

			MethodCreateCategory: method(s.CreateCategory),
			MethodGetCategory: method(func(ctx context.Context, p IDParams) (*models.Category, error) {
				return s.GetCategory(ctx, p.ID)
			}),
			MethodGetCategories: method(func(ctx context.Context, _ none) ([]models.Category, error) {
				return s.GetCategories(ctx)
			}),
			MethodUpdateCategory: method(s.UpdateCategory),
			MethodDeleteCategory: method(func(ctx context.Context, p IDParams) (none, error) {
				return none{}, s.DeleteCategory(ctx, p.ID)
			}),

			MethodCreateBill: method(s.CreateBill),
			MethodGetBill: method(func(ctx context.Context, p IDParams) (*models.Bill, error) {
				return s.GetBill(ctx, p.ID)
			}),
			MethodGetBills: method(func(ctx context.Context, p BillsParams) ([]models.Bill, error) {
				return s.GetBills(ctx, p.Closed)
			}),
			MethodUpdateBill: method(s.UpdateBill),
			MethodDeleteBill: method(func(ctx context.Context, p IDParams) (none, error) {
				return none{}, s.DeleteBill(ctx, p.ID)
			}),
		},
	}
}

// Ping checks that the storage backend answers.
func (d *Dispatcher) Ping(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.storage.GetCategories(ctx)
	return err
}

// Dispatch executes the request and returns its response.
func (d *Dispatcher) Dispatch(ctx context.Context, request Request) Response {
	h, ok := d.handlers[request.Method]
	if !ok {
		return Response{Error: NewError(fmt.Errorf("%w: unknown method %q", ErrBadRequest, request.Method))}
	}

	d.mu.Lock()
	result, err := h(ctx, request.Params)
	d.mu.Unlock()

	if err != nil {
		log.Debug().Str("method", request.Method).Err(err).Msg("storage call failed")
		return Response{Error: NewError(err)}
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return Response{Error: NewError(fmt.Errorf("%w: encoding result: %w", models.ErrStorage, err))}
	}

	return Response{Result: raw}
}

// DispatchJSON decodes the request from body and returns the encoded response.
func (d *Dispatcher) DispatchJSON(ctx context.Context, body []byte) []byte {
	var request Request
	response := Response{}

	if err := json.Unmarshal(body, &request); err != nil {
		response.Error = NewError(fmt.Errorf("%w: %w", ErrBadRequest, err))
	} else {
		response = d.Dispatch(ctx, request)
	}

	// Response only contains raw JSON and strings
	encoded, _ := json.Marshal(response)
	return encoded
}

// RegisterRoutes registers the HTTP endpoint for the dispatcher.
func (d *Dispatcher) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", d.Handle)
}

// Handle executes the call in the request body.
//
//	@Summary		Storage call
//	@Description	Executes a call on the storage backend of the server. Failed calls are reported in the error field of the response.
//	@Tags			Storage
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response
//	@Param			request	body		Request	true	"Call"
//	@Router			/rpc [post]
func (d *Dispatcher) Handle(c *gin.Context) {
	var request Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: NewError(fmt.Errorf("%w: %w", ErrBadRequest, err))})
		return
	}

	c.JSON(http.StatusOK, d.Dispatch(c.Request.Context(), request))
}
