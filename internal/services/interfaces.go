package services

import (
	"context"

	"github.com/oreline/careers-api/internal/models"
)

// ApplicationServiceInterface defines the interface for the apply endpoint
type ApplicationServiceInterface interface {
	Apply(ctx context.Context, app *models.Application, cv *models.Attachment) (*models.ApplyResponse, error)
}

// ProductServiceInterface defines the interface for product search
type ProductServiceInterface interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// Ensure services implement their interfaces
var _ ApplicationServiceInterface = (*ApplicationService)(nil)
var _ ProductServiceInterface = (*ProductService)(nil)
