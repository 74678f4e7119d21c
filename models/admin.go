// Package models file: models/admin.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ----------------------- admin model -----------------------

// Admin is a dashboard account. PasswordHash holds a bcrypt hash.
type Admin struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username          string    `json:"username" gorm:"not null"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"column:password;not null"`
	ProfilePictureURL string    `json:"profile_picture,omitempty" gorm:"column:profile_picture"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName keeps the table name used by the hosted database.
func (Admin) TableName() string { return "admin" }

// BeforeCreate assigns the id and normalizes the email.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// Session projects the admin into the session record.
func (a Admin) Session() Session {
	return Session{
		ID:                a.ID,
		Username:          a.Username,
		Email:             a.Email,
		ProfilePictureURL: a.ProfilePictureURL,
	}
}

// NormalizeEmail lower-cases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ----------------------- password handling -----------------------

// SetPassword replaces PasswordHash with a bcrypt hash of plain.
func (a *Admin) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (a Admin) CheckPassword(plain string) bool {
	return CheckPasswordHash(plain, a.PasswordHash)
}

// HashPassword returns the bcrypt hash of plain at the default cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash verifies a plain-text password against a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
