// Package repository file: repository/admins.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"catering-admin/apperr"
	"catering-admin/models"

	"gorm.io/gorm"
)

// AdminRepository adds the lookups the auth gate needs on top of the admin table.
type AdminRepository struct {
	*Table[models.Admin]
}

// NewAdminRepository creates the admin gateway, ordered by created_at.
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{Table: NewTable[models.Admin](db, "admin", "created_at")}
}

// FindByEmail looks an admin up by email, ignoring case and surrounding spaces.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("admin %q: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Fetch("admin", err)
	}
	return &admin, nil
}
