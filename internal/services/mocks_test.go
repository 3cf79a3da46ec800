package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of storage.Store
type MockStore struct {
	mock.Mock
	backend string
}

func newMockStore(backend string) *MockStore {
	return &MockStore{backend: backend}
}

func (m *MockStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, name, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Backend() string {
	return m.backend
}
