package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// CategoryValue is the cumulative value of a category at the end of a day.
type CategoryValue struct {
	Date  time.Time      `json:"date" example:"2024-03-10T00:00:00Z"` // Start of the day, UTC
	Value types.Currency `json:"value"`
}

func (c *Controller) CreateCategory(ctx context.Context, create models.CategoryCreate) (models.Category, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	category, err := c.storage.CreateCategory(ctx, create)
	if err != nil {
		return models.Category{}, record("create_category", fmt.Errorf("create category: %w", err))
	}

	return category, record("create_category", nil)
}

func (c *Controller) GetCategory(ctx context.Context, id uint64) (models.Category, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	return c.category(ctx, id)
}

func (c *Controller) GetCategories(ctx context.Context) ([]models.Category, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	categories, err := c.storage.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}

func (c *Controller) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.category(ctx, category.ID); err != nil {
		return models.Category{}, record("update_category", err)
	}

	updated, err := c.storage.UpdateCategory(ctx, category)
	if err != nil {
		return models.Category{}, record("update_category", fmt.Errorf("update category %d: %w", category.ID, err))
	}

	return updated, record("update_category", nil)
}

// DeleteCategory removes the category from all transactions, then deletes it.
func (c *Controller) DeleteCategory(ctx context.Context, id uint64) error {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.category(ctx, id); err != nil {
		return record("delete_category", err)
	}

	transactions, err := c.storage.GetTransactionsOfCategory(ctx, id, types.Timespan{})
	if err != nil {
		return record("delete_category", fmt.Errorf("get transactions of category %d: %w", id, err))
	}

	for _, t := range transactions {
		delete(t.Categories, id)
		if _, err := c.storage.UpdateTransaction(ctx, t); err != nil {
			return record("delete_category", fmt.Errorf("remove category %d from transaction %d: %w", id, t.ID, err))
		}
	}

	log.Debug().Uint64("category", id).Int("transactions", len(transactions)).Msg("removed category from transactions")

	if err := c.storage.DeleteCategory(ctx, id); err != nil {
		return record("delete_category", fmt.Errorf("delete category %d: %w", id, err))
	}

	return record("delete_category", nil)
}

// GetRelativeCategoryValues returns the cumulative value of the category
// for every day in the timespan on which a transaction of the category took
// place, ordered by day. The last element holds the total.
//
// Each transaction contributes its amount with the sign of its category
// association.
func (c *Controller) GetRelativeCategoryValues(ctx context.Context, id uint64, timespan types.Timespan) ([]CategoryValue, error) {
	ctx, unlock := c.lock(ctx)
	defer unlock()

	if _, err := c.category(ctx, id); err != nil {
		return nil, err
	}

	transactions, err := c.storage.GetTransactionsOfCategory(ctx, id, timespan)
	if err != nil {
		return nil, fmt.Errorf("get transactions of category %d: %w", id, err)
	}

	slices.SortStableFunc(transactions, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	values := make([]CategoryValue, 0)
	sum := types.Currency{}
	for _, t := range transactions {
		sum = sum.Add(t.Categories[id].Apply(t.Amount))
		day := t.Date.UTC().Truncate(24 * time.Hour)

		if n := len(values); n > 0 && values[n-1].Date.Equal(day) {
			values[n-1].Value = sum
			continue
		}

		values = append(values, CategoryValue{Date: day, Value: sum})
	}

	return values, nil
}
