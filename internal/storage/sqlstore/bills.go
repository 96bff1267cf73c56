package sqlstore

import (
	"context"

	"github.com/ledger-zero/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) CreateBill(ctx context.Context, create models.BillCreate) (models.Bill, error) {
	bill := models.NewBill(0, create)

	err := s.write(ctx, func(tx *gorm.DB) error {
		record, _ := newBillRecord(bill)
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		bill.ID = record.ID
		_, transactions := newBillRecord(bill)
		return createAll(tx, transactions)
	})
	if err != nil {
		return models.Bill{}, err
	}

	return bill, nil
}

func (s *Storage) GetBill(ctx context.Context, id uint64) (*models.Bill, error) {
	bills, err := s.findBills(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	})
	if err != nil || len(bills) == 0 {
		return nil, err
	}

	return &bills[0], nil
}

func (s *Storage) GetBills(ctx context.Context, closed *bool) ([]models.Bill, error) {
	return s.findBills(ctx, func(tx *gorm.DB) *gorm.DB {
		if closed == nil {
			return tx
		}
		return tx.Where("closed = ?", *closed)
	})
}

func (s *Storage) findBills(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Bill, error) {
	var records []billRecord
	var rows []billTransactionRecord

	err := s.read(ctx, func(tx *gorm.DB) error {
		if err := tx.Scopes(scope).Order("id").Find(&records).Error; err != nil {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		ids := make([]uint64, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.ID)
		}

		for _, chunk := range chunks(ids) {
			var chunkRows []billTransactionRecord
			if err := tx.Where("bill_id IN ?", chunk).Find(&chunkRows).Error; err != nil {
				return err
			}
			rows = append(rows, chunkRows...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	transactions := make(map[uint64][]billTransactionRecord, len(records))
	for _, row := range rows {
		transactions[row.BillID] = append(transactions[row.BillID], row)
	}

	bills := make([]models.Bill, 0, len(records))
	for _, r := range records {
		bill, err := r.model(transactions[r.ID])
		if err != nil {
			return nil, wrap(err)
		}
		bills = append(bills, bill)
	}

	return bills, nil
}

func (s *Storage) UpdateBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	bill = bill.Clone()
	record, transactions := newBillRecord(bill)

	err := s.write(ctx, func(tx *gorm.DB) error {
		ok, err := exists(tx, &billRecord{}, bill.ID)
		if err != nil {
			return err
		}

		if !ok {
			return models.NotFound("bill", bill.ID)
		}

		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if err := tx.Where("bill_id = ?", bill.ID).Delete(&billTransactionRecord{}).Error; err != nil {
			return err
		}

		return createAll(tx, transactions)
	})
	if err != nil {
		return models.Bill{}, err
	}

	return bill, nil
}

func (s *Storage) DeleteBill(ctx context.Context, id uint64) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&billTransactionRecord{}).Error; err != nil {
			return err
		}

		return tx.Delete(&billRecord{}, id).Error
	})
}
