package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/outfit-finder/internal/mock"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

var (
	ErrSearchNotConfigured = errors.New("shopping search is not configured")
	ErrUnexpectedStatus    = errors.New("unexpected status code")
)

// ProductRepository finds products for an outfit category
type ProductRepository interface {
	Search(ctx context.Context, category models.Category) ([]models.Product, error)
}

// MockProductRepository serves generated products and never fails
type MockProductRepository struct {
	generator *mock.Generator
}

// NewMockProductRepository creates a repository backed by the mock generator
func NewMockProductRepository(generator *mock.Generator) *MockProductRepository {
	return &MockProductRepository{
		generator: generator,
	}
}

// Search returns exactly mock.ProductsPerCategory generated products
func (r *MockProductRepository) Search(ctx context.Context, category models.Category) ([]models.Product, error) {
	return r.generator.Products(category), nil
}
