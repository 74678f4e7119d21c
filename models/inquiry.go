// Package models file: models/inquiry.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generation tags which schema generation a row was read from.
type Generation int

const (
	// GenerationLegacy rows come from the original `contacts` / `menu_items_v1` tables.
	GenerationLegacy Generation = 1
	// GenerationCurrent rows come from the canonical tables.
	GenerationCurrent Generation = 2
)

// ----------------------- inquiry model -----------------------

// Inquiry is a customer or event enquiry submitted through the public site.
// Event fields are optional: legacy rows never carry them.
type Inquiry struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string     `json:"name" gorm:"not null"`
	Email       string     `json:"email" gorm:"not null"`
	Phone       string     `json:"phone"`
	EventType   string     `json:"event_type,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty" gorm:"type:date"`
	GuestCount  *int       `json:"guest_count,omitempty"`
	Message     string     `json:"message,omitempty" gorm:"type:text"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
	Generation  Generation `json:"generation" gorm:"-"`
}

func (Inquiry) TableName() string { return "contact_form" }

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// AfterFind tags rows read from the canonical table.
func (i *Inquiry) AfterFind(tx *gorm.DB) error {
	i.Generation = GenerationCurrent
	return nil
}

// IsEvent reports whether the enquiry is about a specific event.
func (i Inquiry) IsEvent() bool {
	return i.EventType != ""
}

// ----------------------- legacy contact model -----------------------

// LegacyContact is the first-generation `contacts` row.
type LegacyContact struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Phone     string
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LegacyContact) TableName() string { return "contacts" }

func (c *LegacyContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Normalize maps the legacy row onto the canonical Inquiry shape.
func (c LegacyContact) Normalize() Inquiry {
	return Inquiry{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Message:     c.Message,
		SubmittedAt: c.CreatedAt,
		Generation:  GenerationLegacy,
	}
}

// LegacyContactColumns are the columns an update may touch on a legacy row.
var LegacyContactColumns = map[string]bool{
	"name":    true,
	"email":   true,
	"phone":   true,
	"message": true,
}
