// Package repository file: repository/inquiries.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/models"

	"gorm.io/gorm"
)

// InquiryRepository presents both inquiry generations as one table of
// canonical models.Inquiry rows. New rows always go to the current table;
// updates and deletes are routed to whichever table owns the id.
type InquiryRepository struct {
	current *Table[models.Inquiry]
	legacy  *Table[models.LegacyContact]
}

// NewInquiryRepository creates the merged inquiry gateway.
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{
		current: NewTable[models.Inquiry](db, "inquiry", "submitted_at"),
		legacy:  NewTable[models.LegacyContact](db, "inquiry", "created_at"),
	}
}

// List returns every inquiry of both generations, newest first. When only
// the legacy read fails, the current rows are returned with a partial error.
func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := r.current.List(ctx)
	if err != nil {
		return nil, err
	}
	legacy, err := r.legacy.List(ctx)
	if err != nil {
		logger.Warn.Printf("[InquiryRepository.List] Legacy inquiries unavailable: %v", err)
		return rows, apperr.Partial(apperr.Fetch("older inquiries", err))
	}

	for _, l := range legacy {
		rows = append(rows, l.Normalize())
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})
	return rows, nil
}

// Get loads one inquiry from whichever generation owns id.
func (r *InquiryRepository) Get(ctx context.Context, id string) (*models.Inquiry, error) {
	row, err := r.current.Get(ctx, id)
	if err == nil || !errors.Is(err, apperr.ErrNotFound) {
		return row, err
	}
	l, err := r.legacy.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inq := l.Normalize()
	return &inq, nil
}

// Insert always writes the current generation.
func (r *InquiryRepository) Insert(ctx context.Context, row *models.Inquiry) error {
	if err := r.current.Insert(ctx, row); err != nil {
		return err
	}
	row.Generation = models.GenerationCurrent
	return nil
}

// Update patches the owning row. Legacy rows only receive the columns they have.
func (r *InquiryRepository) Update(ctx context.Context, id string, patch map[string]any) error {
	n, err := r.current.updateRows(ctx, id, patch)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	legacyPatch := make(map[string]any, len(patch))
	for col, v := range patch {
		if models.LegacyContactColumns[col] {
			legacyPatch[col] = v
		}
	}
	n, err = r.legacy.updateRows(ctx, id, legacyPatch)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("inquiry %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// Delete removes the owning row.
func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	n, err := r.current.deleteRows(ctx, id)
	if err != nil || n > 0 {
		return err
	}
	_, err = r.legacy.deleteRows(ctx, id)
	return err
}

// Count returns the number of inquiries across both generations.
func (r *InquiryRepository) Count(ctx context.Context) (int64, error) {
	a, err := r.current.Count(ctx)
	if err != nil {
		return 0, err
	}
	b, err := r.legacy.Count(ctx)
	if err != nil {
		return 0, err
	}
	return a + b, nil
}
