package repository

import (
	"context"
	"errors"

	"artisan-market/internal/models"
)

var (
	// ErrNotFound means the id did not resolve to a product.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidID means the id is not a valid object id.
	ErrInvalidID = errors.New("invalid product ID")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create persists a new product, assigning its id and timestamps.
	Create(ctx context.Context, product *models.Product) error

	// FindAll returns products, restricted to approved ones unless
	// includeUnapproved is set.
	FindAll(ctx context.Context, includeUnapproved bool) ([]models.Product, error)

	// FindByID returns a single product.
	FindByID(ctx context.Context, id string) (*models.Product, error)

	// Update applies the set fields of the partial update and returns
	// the updated product.
	Update(ctx context.Context, id string, update *models.ProductUpdate) (*models.Product, error)

	// SetApproval flips the approval gate and returns the updated
	// product. The transition is unconditional and idempotent.
	SetApproval(ctx context.Context, id string, approved bool) (*models.Product, error)

	// Delete removes a product permanently.
	Delete(ctx context.Context, id string) error

	// DecrementQuantity atomically lowers the stock of a product by n,
	// flooring at zero. It reports whether the product existed; a
	// missing product is not an error.
	DecrementQuantity(ctx context.Context, id string, n int) (bool, error)

	// PurgeDepleted deletes products among the given ids whose quantity
	// has reached zero, returning how many were removed.
	PurgeDepleted(ctx context.Context, ids []string) (int64, error)

	// Rate replaces any existing rating by the same user and appends
	// the new one, returning the updated product.
	Rate(ctx context.Context, id, user string, value float64) (*models.Product, error)
}
