package sqlstore

import (
	"context"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/storage"
	"github.com/ledger-zero/backend/internal/types"
	"gorm.io/gorm"
)

func (s *Storage) createAccount(ctx context.Context, account models.Account) (models.Account, error) {
	record := newAccountRecord(account)
	record.ID = 0

	err := s.write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return models.Account{}, err
	}

	account.ID = record.ID
	return account.Clone(), nil
}

func (s *Storage) CreateAssetAccount(ctx context.Context, create models.AssetAccountCreate) (models.Account, error) {
	return s.createAccount(ctx, models.NewAssetAccount(0, create))
}

func (s *Storage) CreateBookCheckingAccount(ctx context.Context, create models.BookCheckingAccountCreate) (models.Account, error) {
	return s.createAccount(ctx, models.NewBookCheckingAccount(0, create))
}

func (s *Storage) GetAccount(ctx context.Context, id uint64) (*models.Account, error) {
	var records []accountRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Limit(1).Find(&records).Error
	})
	if err != nil || len(records) == 0 {
		return nil, err
	}

	account, err := records[0].model()
	if err != nil {
		return nil, wrap(err)
	}
	return &account, nil
}

func (s *Storage) GetAccounts(ctx context.Context) ([]models.Account, error) {
	var records []accountRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]models.Account, 0, len(records))
	for _, r := range records {
		account, err := r.model()
		if err != nil {
			return nil, wrap(err)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	account = account.Clone()
	record := newAccountRecord(account)

	err := s.write(ctx, func(tx *gorm.DB) error {
		ok, err := exists(tx, &accountRecord{}, account.ID)
		if err != nil {
			return err
		}

		if !ok {
			return models.NotFound("account", account.ID)
		}

		return tx.Save(&record).Error
	})
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id uint64) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&accountRecord{}, id).Error
	})
}

func (s *Storage) GetAccountSum(ctx context.Context, id uint64, asOf time.Time) (types.Currency, error) {
	var records []transactionRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.
			Where("source_account_id = ? OR destination_account_id = ?", id, id).
			Where("date <= ?", toNano(models.ClampTime(asOf))).
			Order("id").
			Find(&records).Error
	})
	if err != nil {
		return types.Currency{}, err
	}

	// Amounts are summed here since the database only knows them as text
	sum := types.Currency{}
	for _, r := range records {
		t, err := r.model(nil)
		if err != nil {
			return types.Currency{}, wrap(err)
		}
		sum = sum.Add(storage.MovementOf(id, t))
	}

	return sum, nil
}
