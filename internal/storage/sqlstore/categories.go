package sqlstore

import (
	"context"

	"github.com/ledger-zero/backend/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) CreateCategory(ctx context.Context, create models.CategoryCreate) (models.Category, error) {
	category := models.NewCategory(0, create)
	record := categoryRecord{Name: category.Name}

	err := s.write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return models.Category{}, err
	}

	category.ID = record.ID
	return category, nil
}

func (s *Storage) GetCategory(ctx context.Context, id uint64) (*models.Category, error) {
	var records []categoryRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Limit(1).Find(&records).Error
	})
	if err != nil || len(records) == 0 {
		return nil, err
	}

	category := models.Category{ID: records[0].ID, CategoryCreate: models.CategoryCreate{Name: records[0].Name}}.Clone()
	return &category, nil
}

func (s *Storage) GetCategories(ctx context.Context) ([]models.Category, error) {
	var records []categoryRecord
	err := s.read(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, models.Category{ID: r.ID, CategoryCreate: models.CategoryCreate{Name: r.Name}}.Clone())
	}

	return categories, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category = category.Clone()

	err := s.write(ctx, func(tx *gorm.DB) error {
		ok, err := exists(tx, &categoryRecord{}, category.ID)
		if err != nil {
			return err
		}

		if !ok {
			return models.NotFound("category", category.ID)
		}

		return tx.Save(&categoryRecord{ID: category.ID, Name: category.Name}).Error
	})
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// DeleteCategory deletes the category. Transactions referencing it are not modified.
func (s *Storage) DeleteCategory(ctx context.Context, id uint64) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&categoryRecord{}, id).Error
	})
}
