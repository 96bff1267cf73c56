// Package ledger implements the controller that keeps the ledger consistent.
//
// Storage backends do not know about references between entities. The
// Controller validates every change against the stored state and performs
// the cascades that keep references intact when entities are deleted.
//
// All operations are serialized. An operation holds the lock for its whole
// unit of work, so no other operation can observe a cascade half done.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Controller is the single entry point for all reads and writes of a ledger.
type Controller struct {
	mu      sync.Mutex
	storage storage.Storage
}

// New returns a Controller owning s. Closing the Controller closes s.
func New(s storage.Storage) *Controller {
	return &Controller{storage: s}
}

// Ping checks that the storage backend answers.
func (c *Controller) Ping(ctx context.Context) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.storage.GetCategories(ctx); err != nil {
		return fmt.Errorf("storage backend is not reachable: %w", err)
	}

	return nil
}

// Close closes the storage backend.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.storage.Close()
}

// lock acquires the controller lock. The returned context is not cancelled
// with ctx: a caller that goes away must not abort a cascade in progress.
func (c *Controller) lock(ctx context.Context) (context.Context, func()) {
	c.mu.Lock()
	return context.WithoutCancel(ctx), c.mu.Unlock
}

var operationCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "How many modifying ledger operations were executed, partitioned by operation and result.",
	},
	[]string{"operation", "result"},
)

// Metrics are the Prometheus collectors of the package.
var Metrics = []prometheus.Collector{
	operationCount,
}

// record counts the operation and returns err unchanged.
func record(operation string, err error) error {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		result = "not_found"
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidRecurrence), errors.Is(err, models.ErrRelatedTransactionsExist):
		result = "rejected"
	default:
		result = "error"
		log.Error().Err(err).Str("operation", operation).Msg("ledger operation failed")
	}

	operationCount.WithLabelValues(operation, result).Inc()
	return err
}

// The following helpers must only be called with the lock held.

func (c *Controller) account(ctx context.Context, id uint64) (models.Account, error) {
	account, err := c.storage.GetAccount(ctx, id)
	if err != nil {
		return models.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}

	if account == nil {
		return models.Account{}, models.NotFound("account", id)
	}

	return *account, nil
}

func (c *Controller) transaction(ctx context.Context, id uint64) (models.Transaction, error) {
	transaction, err := c.storage.GetTransaction(ctx, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}

	if transaction == nil {
		return models.Transaction{}, models.NotFound("transaction", id)
	}

	return *transaction, nil
}

func (c *Controller) budget(ctx context.Context, id uint64) (models.Budget, error) {
	budget, err := c.storage.GetBudget(ctx, id)
	if err != nil {
		return models.Budget{}, fmt.Errorf("get budget %d: %w", id, err)
	}

	if budget == nil {
		return models.Budget{}, models.NotFound("budget", id)
	}

	return *budget, nil
}

func (c *Controller) category(ctx context.Context, id uint64) (models.Category, error) {
	category, err := c.storage.GetCategory(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}

	if category == nil {
		return models.Category{}, models.NotFound("category", id)
	}

	return *category, nil
}

func (c *Controller) bill(ctx context.Context, id uint64) (models.Bill, error) {
	bill, err := c.storage.GetBill(ctx, id)
	if err != nil {
		return models.Bill{}, fmt.Errorf("get bill %d: %w", id, err)
	}

	if bill == nil {
		return models.Bill{}, models.NotFound("bill", id)
	}

	return *bill, nil
}

// reference checks that a referenced resource exists. A missing resource
// is a validation error of the referencing resource, not a missing resource.
func reference[E any](ctx context.Context, get func(context.Context, uint64) (E, error), id uint64, invalid error) error {
	_, err := get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: %d", invalid, id)
	}
	return err
}
