package ledger

import (
	"context"
	"fmt"

	"github.com/ledger-zero/backend/internal/filter"
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// validateTransaction checks the transaction and all resources it references.
// id is the ID of the transaction that is updated, zero for a new transaction.
func (c *Controller) validateTransaction(ctx context.Context, id uint64, t models.TransactionCreate) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := reference(ctx, c.account, t.SourceAccountID, models.ErrAccountDoesNotExist); err != nil {
		return err
	}

	if err := reference(ctx, c.account, t.DestinationAccountID, models.ErrAccountDoesNotExist); err != nil {
		return err
	}

	if t.Budget != nil {
		if err := reference(ctx, c.budget, t.Budget.BudgetID, models.ErrBudgetDoesNotExist); err != nil {
			return err
		}
	}

	for categoryID := range t.Categories {
		if err := reference(ctx, c.category, categoryID, models.ErrCategoryDoesNotExist); err != nil {
			return err
		}
	}

	return c.checkTransactionCurrency(ctx, id, t)
}

func (c *Controller) CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if err := c.validateTransaction(ctx, 0, create); err != nil {
		return models.Transaction{}, record("create_transaction", err)
	}

	transaction, err := c.storage.CreateTransaction(ctx, create)
	if err != nil {
		return models.Transaction{}, record("create_transaction", fmt.Errorf("create transaction: %w", err))
	}

	return transaction, record("create_transaction", nil)
}

func (c *Controller) GetTransaction(ctx context.Context, id uint64) (models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	return c.transaction(ctx, id)
}

func (c *Controller) UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.transaction(ctx, transaction.ID); err != nil {
		return models.Transaction{}, record("update_transaction", err)
	}

	if err := c.validateTransaction(ctx, transaction.ID, transaction.TransactionCreate); err != nil {
		return models.Transaction{}, record("update_transaction", err)
	}

	updated, err := c.storage.UpdateTransaction(ctx, transaction)
	if err != nil {
		return models.Transaction{}, record("update_transaction", fmt.Errorf("update transaction %d: %w", transaction.ID, err))
	}

	return updated, record("update_transaction", nil)
}

// DeleteTransaction removes the transaction from all bills and deletes it.
func (c *Controller) DeleteTransaction(ctx context.Context, id uint64) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.transaction(ctx, id); err != nil {
		return record("delete_transaction", err)
	}

	return record("delete_transaction", c.deleteTransaction(ctx, id))
}

// deleteTransaction removes the transaction from all bills referencing it,
// then deletes it. The lock must be held.
func (c *Controller) deleteTransaction(ctx context.Context, id uint64) error {
	bills, err := c.storage.GetBills(ctx, nil)
	if err != nil {
		return fmt.Errorf("get bills: %w", err)
	}

	for _, b := range bills {
		if !b.Contains(id) {
			continue
		}

		if _, err := c.storage.UpdateBill(ctx, b.Without(id)); err != nil {
			return fmt.Errorf("remove transaction %d from bill %d: %w", id, b.ID, err)
		}
		log.Debug().Uint64("transaction", id).Uint64("bill", b.ID).Msg("removed transaction from bill")
	}

	if err := c.storage.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}

	return nil
}

func (c *Controller) GetTransactionsInTimespan(ctx context.Context, timespan types.Timespan) ([]models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	transactions, err := c.storage.GetTransactionsInTimespan(ctx, timespan)
	if err != nil {
		return nil, fmt.Errorf("get transactions in %s: %w", timespan, err)
	}
	return transactions, nil
}

func (c *Controller) GetTransactionsOfAccount(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.account(ctx, id); err != nil {
		return nil, err
	}

	transactions, err := c.storage.GetTransactionsOfAccount(ctx, id, timespan)
	if err != nil {
		return nil, fmt.Errorf("get transactions of account %d: %w", id, err)
	}
	return transactions, nil
}

func (c *Controller) GetTransactionsOfBudget(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.budget(ctx, id); err != nil {
		return nil, err
	}

	transactions, err := c.storage.GetTransactionsOfBudget(ctx, id, timespan)
	if err != nil {
		return nil, fmt.Errorf("get transactions of budget %d: %w", id, err)
	}
	return transactions, nil
}

func (c *Controller) GetTransactionsOfCategory(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.category(ctx, id); err != nil {
		return nil, err
	}

	transactions, err := c.storage.GetTransactionsOfCategory(ctx, id, timespan)
	if err != nil {
		return nil, fmt.Errorf("get transactions of category %d: %w", id, err)
	}
	return transactions, nil
}

// FilterTransactions returns all transactions passing the filter, ordered by ID.
func (c *Controller) FilterTransactions(ctx context.Context, f filter.TransactionFilter) ([]models.Transaction, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	transactions, err := c.storage.GetTransactionsInTimespan(ctx, types.Timespan{})
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}

	var bills []models.Bill
	if f.NeedsBills() {
		bills, err = c.storage.GetBills(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("get bills: %w", err)
		}
	}

	return filter.Apply(f, transactions, bills), nil
}
