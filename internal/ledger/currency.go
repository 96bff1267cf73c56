package ledger

import (
	"context"
	"fmt"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
)

// The amounts summed up for an account, a budget, a category or a bill are
// always in one currency. Every write is checked against this.

func mismatch(resource string, id uint64, expected, actual string) error {
	return fmt.Errorf("%w: %s %d uses %s, not %s", models.ErrCurrencyMismatch, resource, id, expected, actual)
}

// otherCode returns the currency code of the first transaction that is not
// the excluded one, or "" if there is none.
func otherCode(transactions []models.Transaction, exclude uint64) string {
	for _, t := range transactions {
		if t.ID != exclude {
			return t.Amount.Code
		}
	}
	return ""
}

// checkTransactionCurrency checks that the currency of the transaction
// matches everything it is summed up with. id is the ID of the
// transaction that is updated, zero for a new transaction.
//
// All references must exist.
func (c *Controller) checkTransactionCurrency(ctx context.Context, id uint64, t models.TransactionCreate) error {
	code := t.Amount.Code

	if t.Budget != nil {
		budget, err := c.budget(ctx, t.Budget.BudgetID)
		if err != nil {
			return err
		}

		if budget.Total.Code != code {
			return mismatch("budget", budget.ID, budget.Total.Code, code)
		}
	}

	for _, accountID := range []uint64{t.SourceAccountID, t.DestinationAccountID} {
		account, err := c.account(ctx, accountID)
		if err != nil {
			return err
		}

		if account.Kind == models.AccountKindAsset {
			if account.Offset.Code != code {
				return mismatch("account", account.ID, account.Offset.Code, code)
			}
			continue
		}

		transactions, err := c.storage.GetTransactionsOfAccount(ctx, accountID, types.Timespan{})
		if err != nil {
			return fmt.Errorf("get transactions of account %d: %w", accountID, err)
		}

		if other := otherCode(transactions, id); other != "" && other != code {
			return mismatch("account", accountID, other, code)
		}
	}

	for categoryID := range t.Categories {
		transactions, err := c.storage.GetTransactionsOfCategory(ctx, categoryID, types.Timespan{})
		if err != nil {
			return fmt.Errorf("get transactions of category %d: %w", categoryID, err)
		}

		if other := otherCode(transactions, id); other != "" && other != code {
			return mismatch("category", categoryID, other, code)
		}
	}

	if id == 0 {
		return nil
	}

	bills, err := c.storage.GetBills(ctx, nil)
	if err != nil {
		return fmt.Errorf("get bills: %w", err)
	}

	for _, b := range bills {
		if b.Contains(id) && b.Value.Code != code {
			return mismatch("bill", b.ID, b.Value.Code, code)
		}
	}

	return nil
}

// checkTransactionsCurrency checks that all transactions are in the currency
// with the code.
func checkTransactionsCurrency(code string, transactions []models.Transaction) error {
	for _, t := range transactions {
		if t.Amount.Code != code {
			return mismatch("transaction", t.ID, t.Amount.Code, code)
		}
	}
	return nil
}
