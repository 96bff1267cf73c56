package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
)

func (c *Controller) CreateBudget(ctx context.Context, create models.BudgetCreate) (models.Budget, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if err := create.Validate(); err != nil {
		return models.Budget{}, record("create_budget", err)
	}

	budget, err := c.storage.CreateBudget(ctx, create)
	if err != nil {
		return models.Budget{}, record("create_budget", fmt.Errorf("create budget: %w", err))
	}

	return budget, record("create_budget", nil)
}

func (c *Controller) GetBudget(ctx context.Context, id uint64) (models.Budget, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	return c.budget(ctx, id)
}

func (c *Controller) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	budgets, err := c.storage.GetBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("get budgets: %w", err)
	}
	return budgets, nil
}

func (c *Controller) UpdateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	existing, err := c.budget(ctx, budget.ID)
	if err != nil {
		return models.Budget{}, record("update_budget", err)
	}

	if err := budget.Validate(); err != nil {
		return models.Budget{}, record("update_budget", err)
	}

	if budget.Total.Code != existing.Total.Code {
		transactions, err := c.storage.GetTransactionsOfBudget(ctx, budget.ID, types.Timespan{})
		if err != nil {
			return models.Budget{}, record("update_budget", fmt.Errorf("get transactions of budget %d: %w", budget.ID, err))
		}

		if err := checkTransactionsCurrency(budget.Total.Code, transactions); err != nil {
			return models.Budget{}, record("update_budget", err)
		}
	}

	updated, err := c.storage.UpdateBudget(ctx, budget)
	if err != nil {
		return models.Budget{}, record("update_budget", fmt.Errorf("update budget %d: %w", budget.ID, err))
	}

	return updated, record("update_budget", nil)
}

// DeleteBudget removes the budget association from all transactions
// counting towards the budget, then deletes it.
func (c *Controller) DeleteBudget(ctx context.Context, id uint64) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.budget(ctx, id); err != nil {
		return record("delete_budget", err)
	}

	transactions, err := c.storage.GetTransactionsOfBudget(ctx, id, types.Timespan{})
	if err != nil {
		return record("delete_budget", fmt.Errorf("get transactions of budget %d: %w", id, err))
	}

	for _, t := range transactions {
		t.Budget = nil
		if _, err := c.storage.UpdateTransaction(ctx, t); err != nil {
			return record("delete_budget", fmt.Errorf("remove budget %d from transaction %d: %w", id, t.ID, err))
		}
	}

	log.Debug().Uint64("budget", id).Int("transactions", len(transactions)).Msg("removed budget from transactions")

	if err := c.storage.DeleteBudget(ctx, id); err != nil {
		return record("delete_budget", fmt.Errorf("delete budget %d: %w", id, err))
	}

	return record("delete_budget", nil)
}

// GetBudgetTimespan returns the period of the budget that is offset periods
// away from the period containing reference.
func (c *Controller) GetBudgetTimespan(ctx context.Context, id uint64, offset int32, reference time.Time) (types.Timespan, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	budget, err := c.budget(ctx, id)
	if err != nil {
		return types.Timespan{}, err
	}

	return models.CalculateBudgetTimespan(budget, offset, reference)
}

// GetBudgetValue returns the sum of all transactions counting towards the
// budget in the period that is offset periods away from the period
// containing reference. Each amount is counted with the sign of its
// budget association.
func (c *Controller) GetBudgetValue(ctx context.Context, id uint64, offset int32, reference time.Time) (types.Currency, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	budget, err := c.budget(ctx, id)
	if err != nil {
		return types.Currency{}, err
	}

	timespan, err := models.CalculateBudgetTimespan(budget, offset, reference)
	if err != nil {
		return types.Currency{}, err
	}

	transactions, err := c.storage.GetTransactionsOfBudget(ctx, id, timespan)
	if err != nil {
		return types.Currency{}, fmt.Errorf("get transactions of budget %d: %w", id, err)
	}

	value := types.Zero(budget.Total.Code)
	for _, t := range transactions {
		value = value.Add(t.Budget.Sign.Apply(t.Amount))
	}

	return value, nil
}
