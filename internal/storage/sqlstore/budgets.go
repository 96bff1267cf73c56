package sqlstore

import (
	"context"

	"github.com/ledger-zero/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) CreateBudget(ctx context.Context, create models.BudgetCreate) (models.Budget, error) {
	budget := models.NewBudget(0, create)
	record := newBudgetRecord(budget)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return models.Budget{}, err
	}

	budget.ID = record.ID
	return budget, nil
}

func (s *Storage) GetBudget(ctx context.Context, id uint64) (*models.Budget, error) {
	budgets, err := s.findBudgets(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	})
	if err != nil || len(budgets) == 0 {
		return nil, err
	}

	return &budgets[0], nil
}

func (s *Storage) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.findBudgets(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx
	})
}

func (s *Storage) findBudgets(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Budget, error) {
	var records []budgetRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(scope).Order("id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	budgets := make([]models.Budget, 0, len(records))
	for _, r := range records {
		budget, err := r.model()
		if err != nil {
			return nil, wrap(err)
		}
		budgets = append(budgets, budget)
	}

	return budgets, nil
}

func (s *Storage) UpdateBudget(ctx context.Context, budget models.Budget) (models.Budget, error) {
	budget = budget.Clone()
	record := newBudgetRecord(budget)

	err := s.write(ctx, func(tx *gorm.DB) error {
		ok, err := exists(tx, &budgetRecord{}, budget.ID)
		if err != nil {
			return err
		}

		if !ok {
			return models.NotFound("budget", budget.ID)
		}

		return tx.Save(&record).Error
	})
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// DeleteBudget deletes the budget. Transactions referencing it are not modified.
func (s *Storage) DeleteBudget(ctx context.Context, id uint64) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&budgetRecord{}, id).Error
	})
}
