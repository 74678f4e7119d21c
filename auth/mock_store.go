// Package auth file: auth/mock_store.go
package auth

import (
	"catering-admin/models"

	"github.com/stretchr/testify/mock"
)

var _ Store = (*MockStore)(nil)

// MockStore is a testify mock of Store.
type MockStore struct {
	mock.Mock
}

// Save (Mocked)
func (m *MockStore) Save(s models.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

// Load (Mocked)
func (m *MockStore) Load() (*models.Session, error) {
	args := m.Called()
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

// Clear (Mocked)
func (m *MockStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
