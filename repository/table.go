// Package repository file: repository/table.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catering-admin/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is a gateway scoped to one gorm model. Reads are ordered by the
// recency column, newest first. Every failure comes back as an
// apperr.OpError naming the entity, except missing rows which wrap
// apperr.ErrNotFound.
type Table[T any] struct {
	db      *gorm.DB
	entity  string
	plural  string
	recency string
}

// NewTable builds a gateway for T. entity is the singular human name used in
// error messages ("menu item"), recency the column used for ordering.
func NewTable[T any](db *gorm.DB, entity, recency string) *Table[T] {
	return &Table[T]{db: db, entity: entity, plural: pluralize(entity), recency: recency}
}

func pluralize(s string) string {
	if strings.HasSuffix(s, "y") {
		return strings.TrimSuffix(s, "y") + "ies"
	}
	return s + "s"
}

// Entity returns the human name of the rows in this table.
func (t *Table[T]) Entity() string { return t.entity }

// Select returns the rows matching filter (column -> value), newest first.
// A nil filter selects everything.
func (t *Table[T]) Select(ctx context.Context, filter map[string]any) ([]T, error) {
	q := t.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(filter)
	}

	var rows []T
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: t.recency}, Desc: true}).Find(&rows).Error
	if err != nil {
		return nil, apperr.Fetch(t.plural, err)
	}
	return rows, nil
}

// List returns every row, newest first.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.Select(ctx, nil)
}

// Get loads one row by id.
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	row := new(T)
	err := t.db.WithContext(ctx).Where("id = ?", id).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %s: %w", t.entity, id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Fetch(t.entity, err)
	}
	return row, nil
}

// Insert creates row; ids and timestamps are assigned by the model hooks.
func (t *Table[T]) Insert(ctx context.Context, row *T) error {
	if err := t.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperr.Save(t.entity, err)
	}
	return nil
}

// Update applies patch (column -> value) to the row with the given id only.
func (t *Table[T]) Update(ctx context.Context, id string, patch map[string]any) error {
	n, err := t.updateRows(ctx, id, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", t.entity, id, apperr.ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id. Deleting a missing row is not an error.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	_, err := t.deleteRows(ctx, id)
	return err
}

// Count returns the number of rows.
func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, apperr.Fetch(t.plural, err)
	}
	return n, nil
}

func (t *Table[T]) updateRows(ctx context.Context, id string, patch map[string]any) (int64, error) {
	if len(patch) == 0 {
		var n int64
		if err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
			return 0, apperr.Save(t.entity, err)
		}
		return n, nil
	}
	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return 0, apperr.Save(t.entity, res.Error)
	}
	return res.RowsAffected, nil
}

func (t *Table[T]) deleteRows(ctx context.Context, id string) (int64, error) {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return 0, apperr.Delete(t.entity, res.Error)
	}
	return res.RowsAffected, nil
}
