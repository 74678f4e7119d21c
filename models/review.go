// Package models file: models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a client testimonial shown on the public site.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientName string    `json:"client_name" gorm:"not null"`
	ReviewText string    `json:"review_text" gorm:"type:text;not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
