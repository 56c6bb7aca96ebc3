package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"artisan-market/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository for tests and database-less local runs.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

var _ ProductRepository = (*MemoryProductRepository)(nil)

func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID()
	product.Approved = false
	if product.Ratings == nil {
		product.Ratings = []models.Rating{}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID.Hex()] = *product
	return nil
}

func (r *MemoryProductRepository) FindAll(_ context.Context, includeUnapproved bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !includeUnapproved && !p.Approved {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, id string, update *models.ProductUpdate) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	product.UpdatedAt = time.Now()

	r.products[id] = product
	return &product, nil
}

func (r *MemoryProductRepository) SetApproval(_ context.Context, id string, approved bool) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	product.Approved = approved
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) DecrementQuantity(_ context.Context, id string, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return false, nil
	}

	product.Quantity -= n
	if product.Quantity < 0 {
		product.Quantity = 0
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return true, nil
}

func (r *MemoryProductRepository) PurgeDepleted(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.Quantity <= 0 {
			delete(r.products, id)
			purged++
		}
	}
	return purged, nil
}

func (r *MemoryProductRepository) Rate(_ context.Context, id, user string, value float64) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	kept := product.Ratings[:0:0]
	for _, rating := range product.Ratings {
		if rating.User != user {
			kept = append(kept, rating)
		}
	}
	product.Ratings = append(kept, models.Rating{User: user, Value: value})
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}
