// Package services file: services/mock_metrics.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ MetricsPublisher = (*MockMetricsPublisher)(nil)

// MockMetricsPublisher is a testify mock of MetricsPublisher.
type MockMetricsPublisher struct {
	mock.Mock
}

// Publish (Mocked)
func (m *MockMetricsPublisher) Publish(ctx context.Context, name string, value float64, unit string, dims map[string]string) {
	m.Called(name, value, unit, dims)
}
