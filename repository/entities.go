// Package repository file: repository/entities.go
package repository

import (
	"catering-admin/models"

	"gorm.io/gorm"
)

// NewReviewRepository returns the reviews gateway, newest first.
func NewReviewRepository(db *gorm.DB) *Table[models.Review] {
	return NewTable[models.Review](db, "review", "created_at")
}

// NewMenuRepository returns the canonical menu gateway, newest first.
func NewMenuRepository(db *gorm.DB) *Table[models.MenuItem] {
	return NewTable[models.MenuItem](db, "menu item", "date_added")
}
