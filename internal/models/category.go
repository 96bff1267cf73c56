package models

import "strings"

// CategoryCreate contains all fields needed to create a category.
type CategoryCreate struct {
	Name string `json:"name" example:"Groceries"` // Name of the category
}

// Category is a free-form label for transactions.
type Category struct {
	ID uint64 `json:"id" example:"3"`
	CategoryCreate
}

// NewCategory returns the Category for the create request with the given ID.
func NewCategory(id uint64, create CategoryCreate) Category {
	return Category{ID: id, CategoryCreate: create}.Clone()
}

// Clone returns a canonical copy of the category.
func (c Category) Clone() Category {
	c.Name = strings.TrimSpace(c.Name)
	return c
}
