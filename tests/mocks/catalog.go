// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"catalog-backend/domain/product"

	"github.com/stretchr/testify/mock"
)

// MockProductStore is a mock implementation of ports.ProductStore
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) CreateWithStock(ctx context.Context, p product.Product, count int) error {
	args := m.Called(ctx, p, count)
	return args.Error(0)
}

func (m *MockProductStore) GetProduct(ctx context.Context, id string) (product.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductStore) ListProducts(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCreated(ctx context.Context, p product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockUploadSigner is a mock implementation of ports.UploadSigner
type MockUploadSigner struct {
	mock.Mock
}

func (m *MockUploadSigner) SignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

// MockMetrics is a mock implementation of ports.MetricsRecorder
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOutcome(ctx context.Context, operation, outcome string) {
	m.Called(ctx, operation, outcome)
}
