// Package models file: models/menu_item.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UncategorizedLabel groups menu items without a category.
const UncategorizedLabel = "Uncategorized"

// ----------------------- menu item model -----------------------

// MenuItem is the canonical catalog entry. Prices are decimal rupees.
type MenuItem struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HindiName   string          `json:"hindi_name" gorm:"not null"`
	EnglishName string          `json:"english_name,omitempty"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category,omitempty" gorm:"index"`
	Available   bool            `json:"available" gorm:"not null"`
	ImageURL    string          `json:"image,omitempty" gorm:"column:image"`
	DateAdded   time.Time       `json:"date_added" gorm:"autoCreateTime"`
}

func (MenuItem) TableName() string { return "menu_items" }

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// DisplayName prefers the English name when both are present.
func (m MenuItem) DisplayName() string {
	if m.EnglishName != "" {
		return m.EnglishName + " (" + m.HindiName + ")"
	}
	return m.HindiName
}

// CategoryLabel returns the category or the uncategorized bucket.
func (m MenuItem) CategoryLabel() string {
	if m.Category == "" {
		return UncategorizedLabel
	}
	return m.Category
}

// ----------------------- legacy menu item model -----------------------

// LegacyMenuItem is the first-generation menu row
// (name/price/available/image_url/created_at).
type LegacyMenuItem struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`
	Category    string
	Available   bool
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (LegacyMenuItem) TableName() string { return "menu_items_v1" }

func (l *LegacyMenuItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Normalize maps name->hindi_name, image_url->image, created_at->date_added.
func (l LegacyMenuItem) Normalize() MenuItem {
	return MenuItem{
		ID:          l.ID,
		HindiName:   l.Name,
		Description: l.Description,
		Price:       l.Price,
		Category:    l.Category,
		Available:   l.Available,
		ImageURL:    l.ImageURL,
		DateAdded:   l.CreatedAt,
	}
}
