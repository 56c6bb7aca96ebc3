package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan-market/internal/models"
	"artisan-market/internal/repository"
)

func newProduct(name string, quantity int) *models.Product {
	return &models.Product{
		Name:     name,
		Price:    10,
		Artisan:  "art1",
		Quantity: quantity,
		Category: "Pottery",
	}
}

func TestMemoryRepository_CreateAssignsIdentity(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	product.Approved = true // must be reset, submissions start pending
	require.NoError(t, repo.Create(ctx, product))

	assert.False(t, product.ID.IsZero())
	assert.False(t, product.Approved)
	assert.NotNil(t, product.Ratings)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestMemoryRepository_FindAllFiltersApproval(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	approved := newProduct("Vase", 5)
	pending := newProduct("Basket", 3)
	require.NoError(t, repo.Create(ctx, approved))
	require.NoError(t, repo.Create(ctx, pending))

	_, err := repo.SetApproval(ctx, approved.ID.Hex(), true)
	require.NoError(t, err)

	public, err := repo.FindAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, approved.ID, public[0].ID)

	all, err := repo.FindAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryRepository_SetApprovalUnconditional(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()

	updated, err := repo.SetApproval(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved)

	updated, err = repo.SetApproval(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, updated.Approved)

	_, err = repo.SetApproval(ctx, "64f000000000000000000000", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.SetApproval(ctx, "nope", true)
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestMemoryRepository_UpdateAppliesOnlySetFields(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	require.NoError(t, repo.Create(ctx, product))

	price := 19.99
	updated, err := repo.Update(ctx, product.ID.Hex(), &models.ProductUpdate{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Vase", updated.Name)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Pottery", updated.Category)
}

func TestMemoryRepository_DecrementFloorsAtZero(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()

	found, err := repo.DecrementQuantity(ctx, id, 3)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	found, err = repo.DecrementQuantity(ctx, id, 10)
	require.NoError(t, err)
	assert.True(t, found)

	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	found, err = repo.DecrementQuantity(ctx, "64f000000000000000000000", 1)
	require.NoError(t, err)
	assert.False(t, found, "missing products are skipped, not an error")
}

func TestMemoryRepository_PurgeDepletedIsScoped(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	depletedInCart := newProduct("Bowl", 0)
	depletedOutside := newProduct("Scarf", 0)
	stocked := newProduct("Vase", 5)
	for _, p := range []*models.Product{depletedInCart, depletedOutside, stocked} {
		require.NoError(t, repo.Create(ctx, p))
	}

	purged, err := repo.PurgeDepleted(ctx, []string{depletedInCart.ID.Hex(), stocked.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByID(ctx, depletedInCart.ID.Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// stocked product in the id set keeps its inventory
	_, err = repo.FindByID(ctx, stocked.ID.Hex())
	assert.NoError(t, err)

	// depleted product outside the settled cart is untouched
	_, err = repo.FindByID(ctx, depletedOutside.ID.Hex())
	assert.NoError(t, err)
}

func TestMemoryRepository_RateReplacesPerUser(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()

	rated, err := repo.Rate(ctx, id, "alice", 5)
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 1)

	rated, err = repo.Rate(ctx, id, "alice", 3)
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 1)
	assert.Equal(t, models.Rating{User: "alice", Value: 3}, rated.Ratings[0])

	rated, err = repo.Rate(ctx, id, "bob", 4)
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 2)

	_, err = repo.Rate(ctx, "64f000000000000000000000", "alice", 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	ctx := context.Background()

	product := newProduct("Vase", 5)
	require.NoError(t, repo.Create(ctx, product))
	id := product.ID.Hex()

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}
