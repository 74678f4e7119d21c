// Package testutil holds helpers shared by package tests.
// File: testutil/db.go
package testutil

import (
	"strings"
	"testing"

	"catering-admin/config"
	"catering-admin/models"
	"catering-admin/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database named after the test,
// with every table migrated. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := repository.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { _ = repository.Close(db) })
	return db
}

// CreateAdmin inserts an admin with a bcrypt-hashed password.
func CreateAdmin(t testing.TB, db *gorm.DB, username, email, password string) *models.Admin {
	t.Helper()
	a := &models.Admin{Username: username, Email: email}
	require.NoError(t, a.SetPassword(password))
	require.NoError(t, db.Create(a).Error)
	return a
}
