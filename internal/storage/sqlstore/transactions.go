package sqlstore

import (
	"context"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"gorm.io/gorm"
)

func (s *Storage) CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	transaction := models.NewTransaction(0, create)

	err := s.write(ctx, func(tx *gorm.DB) error {
		record, _ := newTransactionRecord(transaction)
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		transaction.ID = record.ID
		_, categories := newTransactionRecord(transaction)
		return createAll(tx, categories)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

func (s *Storage) GetTransaction(ctx context.Context, id uint64) (*models.Transaction, error) {
	var transactions []models.Transaction
	err := s.read(ctx, func(tx *gorm.DB) (err error) {
		transactions, err = findTransactions(tx.Where("id = ?", id))
		return err
	})
	if err != nil || len(transactions) == 0 {
		return nil, err
	}

	return &transactions[0], nil
}

func (s *Storage) UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	transaction = transaction.Clone()
	record, categories := newTransactionRecord(transaction)

	err := s.write(ctx, func(tx *gorm.DB) error {
		ok, err := exists(tx, &transactionRecord{}, transaction.ID)
		if err != nil {
			return err
		}

		if !ok {
			return models.NotFound("transaction", transaction.ID)
		}

		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if err := tx.Where("transaction_id = ?", transaction.ID).Delete(&transactionCategoryRecord{}).Error; err != nil {
			return err
		}

		return createAll(tx, categories)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction deletes the transaction and its category associations.
// Bills are not modified.
func (s *Storage) DeleteTransaction(ctx context.Context, id uint64) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&transactionCategoryRecord{}).Error; err != nil {
			return err
		}

		return tx.Delete(&transactionRecord{}, id).Error
	})
}

func (s *Storage) GetTransactionsInTimespan(ctx context.Context, timespan types.Timespan) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, timespan, func(tx *gorm.DB) *gorm.DB {
		return tx
	})
}

func (s *Storage) GetTransactionsOfAccount(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, timespan, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("source_account_id = ? OR destination_account_id = ?", id, id)
	})
}

func (s *Storage) GetTransactionsOfBudget(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, timespan, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("budget_id = ?", id)
	})
}

func (s *Storage) GetTransactionsOfCategory(ctx context.Context, id uint64, timespan types.Timespan) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, timespan, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&transactionCategoryRecord{}).
			Select("transaction_id").
			Where("category_id = ?", id))
	})
}

// queryTransactions returns all transactions in the timespan that match the scope.
func (s *Storage) queryTransactions(ctx context.Context, timespan types.Timespan, scope func(*gorm.DB) *gorm.DB) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.read(ctx, func(tx *gorm.DB) (err error) {
		query := tx.Scopes(scope)

		if timespan.Start != nil {
			query = query.Where("date >= ?", toNano(models.ClampTime(*timespan.Start)))
		}

		if timespan.End != nil {
			query = query.Where("date <= ?", toNano(models.ClampTime(*timespan.End)))
		}

		transactions, err = findTransactions(query)
		return err
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// findTransactions loads the transactions matching the query together
// with their categories, ordered by ID.
func findTransactions(query *gorm.DB) ([]models.Transaction, error) {
	var records []transactionRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(records))
	if len(records) == 0 {
		return transactions, nil
	}

	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	categories := make(map[uint64][]transactionCategoryRecord, len(records))
	for _, chunk := range chunks(ids) {
		var rows []transactionCategoryRecord
		err := query.Session(&gorm.Session{NewDB: true}).Where("transaction_id IN ?", chunk).Find(&rows).Error
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			categories[row.TransactionID] = append(categories[row.TransactionID], row)
		}
	}

	for _, r := range records {
		t, err := r.model(categories[r.ID])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// chunkSize keeps the number of bound parameters below the limits of the
// database drivers.
const chunkSize = 500

func chunks(ids []uint64) [][]uint64 {
	var result [][]uint64
	for len(ids) > chunkSize {
		result = append(result, ids[:chunkSize])
		ids = ids[chunkSize:]
	}
	return append(result, ids)
}

// createAll inserts the records, if there are any.
func createAll[T any](tx *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return tx.Create(&records).Error
}
