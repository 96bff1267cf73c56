package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// validateBill checks the bill and that all transactions on it exist and
// are in the currency of the bill.
func (c *Controller) validateBill(ctx context.Context, b models.BillCreate) error {
	if err := b.Validate(); err != nil {
		return err
	}

	for _, bt := range b.Transactions {
		if err := reference(ctx, c.transaction, bt.TransactionID, models.ErrTransactionDoesNotExist); err != nil {
			return err
		}

		t, err := c.transaction(ctx, bt.TransactionID)
		if err != nil {
			return err
		}

		if t.Amount.Code != b.Value.Code {
			return mismatch("transaction", t.ID, t.Amount.Code, b.Value.Code)
		}
	}

	return nil
}

func (c *Controller) CreateBill(ctx context.Context, create models.BillCreate) (models.Bill, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if err := c.validateBill(ctx, create); err != nil {
		return models.Bill{}, record("create_bill", err)
	}

	bill, err := c.storage.CreateBill(ctx, create)
	if err != nil {
		return models.Bill{}, record("create_bill", fmt.Errorf("create bill: %w", err))
	}

	return bill, record("create_bill", nil)
}

func (c *Controller) GetBill(ctx context.Context, id uint64) (models.Bill, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	return c.bill(ctx, id)
}

// GetBills returns all bills. If closed is set, only bills with the
// matching state are returned.
func (c *Controller) GetBills(ctx context.Context, closed *bool) ([]models.Bill, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	bills, err := c.storage.GetBills(ctx, closed)
	if err != nil {
		return nil, fmt.Errorf("get bills: %w", err)
	}
	return bills, nil
}

func (c *Controller) UpdateBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.bill(ctx, bill.ID); err != nil {
		return models.Bill{}, record("update_bill", err)
	}

	if err := c.validateBill(ctx, bill.BillCreate); err != nil {
		return models.Bill{}, record("update_bill", err)
	}

	updated, err := c.storage.UpdateBill(ctx, bill)
	if err != nil {
		return models.Bill{}, record("update_bill", fmt.Errorf("update bill %d: %w", bill.ID, err))
	}

	return updated, record("update_bill", nil)
}

func (c *Controller) DeleteBill(ctx context.Context, id uint64) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.bill(ctx, id); err != nil {
		return record("delete_bill", err)
	}

	if err := c.storage.DeleteBill(ctx, id); err != nil {
		return record("delete_bill", fmt.Errorf("delete bill %d: %w", id, err))
	}

	return record("delete_bill", nil)
}

// GetBillSum returns the sum of the transactions on the bill, each counted
// with its sign on the bill.
//
// A bill referencing a transaction that does not exist is an error.
func (c *Controller) GetBillSum(ctx context.Context, id uint64) (types.Currency, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	bill, err := c.bill(ctx, id)
	if err != nil {
		return types.Currency{}, err
	}

	sum := types.Zero(bill.Value.Code)
	for _, bt := range bill.Transactions {
		t, err := c.transaction(ctx, bt.TransactionID)
		if errors.Is(err, models.ErrNotFound) {
			return types.Currency{}, fmt.Errorf("bill %d references a transaction that does not exist: %w", id, err)
		}
		if err != nil {
			return types.Currency{}, err
		}

		sum = sum.Add(bt.Sign.Apply(t.Amount))
	}

	return sum, nil
}
