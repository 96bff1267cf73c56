package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
)

func (c *Controller) CreateAssetAccount(ctx context.Context, create models.AssetAccountCreate) (models.Account, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if err := models.NewAssetAccount(0, create).Validate(); err != nil {
		return models.Account{}, record("create_account", err)
	}

	account, err := c.storage.CreateAssetAccount(ctx, create)
	if err != nil {
		return models.Account{}, record("create_account", fmt.Errorf("create asset account: %w", err))
	}

	return account, record("create_account", nil)
}

func (c *Controller) CreateBookCheckingAccount(ctx context.Context, create models.BookCheckingAccountCreate) (models.Account, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	account, err := c.storage.CreateBookCheckingAccount(ctx, create)
	if err != nil {
		return models.Account{}, record("create_account", fmt.Errorf("create book checking account: %w", err))
	}

	return account, record("create_account", nil)
}

func (c *Controller) GetAccount(ctx context.Context, id uint64) (models.Account, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	return c.account(ctx, id)
}

func (c *Controller) GetAccounts(ctx context.Context) ([]models.Account, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	accounts, err := c.storage.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount replaces the account. The kind of an account cannot change.
func (c *Controller) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	existing, err := c.account(ctx, account.ID)
	if err != nil {
		return models.Account{}, record("update_account", err)
	}

	if account.Kind == "" {
		account.Kind = existing.Kind
	}

	if account.Kind != existing.Kind {
		return models.Account{}, record("update_account", models.ErrAccountKindChange)
	}

	if err := account.Validate(); err != nil {
		return models.Account{}, record("update_account", err)
	}

	if account.Kind == models.AccountKindAsset && account.Offset.Code != existing.Offset.Code {
		transactions, err := c.storage.GetTransactionsOfAccount(ctx, account.ID, types.Timespan{})
		if err != nil {
			return models.Account{}, record("update_account", fmt.Errorf("get transactions of account %d: %w", account.ID, err))
		}

		if err := checkTransactionsCurrency(account.Offset.Code, transactions); err != nil {
			return models.Account{}, record("update_account", err)
		}
	}

	updated, err := c.storage.UpdateAccount(ctx, account)
	if err != nil {
		return models.Account{}, record("update_account", fmt.Errorf("update account %d: %w", account.ID, err))
	}

	return updated, record("update_account", nil)
}

// DeleteAccount deletes the account.
//
// If transactions reference the account, the account is only deleted when
// purgeTransactions is set. These transactions are deleted first.
// Otherwise, models.ErrRelatedTransactionsExist is returned and nothing is
// modified.
func (c *Controller) DeleteAccount(ctx context.Context, id uint64, purgeTransactions bool) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.account(ctx, id); err != nil {
		return record("delete_account", err)
	}

	transactions, err := c.storage.GetTransactionsOfAccount(ctx, id, types.Timespan{})
	if err != nil {
		return record("delete_account", fmt.Errorf("get transactions of account %d: %w", id, err))
	}

	if len(transactions) > 0 && !purgeTransactions {
		return record("delete_account", fmt.Errorf("%w: %d transactions reference account %d", models.ErrRelatedTransactionsExist, len(transactions), id))
	}

	for _, t := range transactions {
		if err := c.deleteTransaction(ctx, t.ID); err != nil {
			return record("delete_account", fmt.Errorf("purge transactions of account %d: %w", id, err))
		}
	}

	if len(transactions) > 0 {
		log.Debug().Uint64("account", id).Int("transactions", len(transactions)).Msg("purged transactions of account")
	}

	if err := c.storage.DeleteAccount(ctx, id); err != nil {
		return record("delete_account", fmt.Errorf("delete account %d: %w", id, err))
	}

	return record("delete_account", nil)
}

// GetAccountSum returns the balance of the account at asOf.
//
// For asset accounts, the offset of the account is included.
func (c *Controller) GetAccountSum(ctx context.Context, id uint64, asOf time.Time) (types.Currency, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	account, err := c.account(ctx, id)
	if err != nil {
		return types.Currency{}, err
	}

	sum, err := c.storage.GetAccountSum(ctx, id, asOf)
	if err != nil {
		return types.Currency{}, fmt.Errorf("get sum of account %d: %w", id, err)
	}

	if account.Kind == models.AccountKindAsset {
		sum = sum.Add(account.Offset)
	}

	return sum, nil
}
