package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/oreline/careers-api/internal/models"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockApplicationService implements ApplicationServiceInterface for testing
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, app *models.Application, cv *models.Attachment) (*models.ApplyResponse, error) {
	args := m.Called(ctx, app, cv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplyResponse), args.Error(1)
}

// MockProductService implements ProductServiceInterface for testing
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}
