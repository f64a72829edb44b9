package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *Repository {
	repo, err := NewRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("migrations"))
	return repo
}

func TestRepository_SeedAndGetAll(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	products := testProducts()
	for i := range products {
		products[i].CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	require.NoError(t, repo.Seed(ctx, products))

	got, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestRepository_GetProduct(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	products := testProducts()
	for i := range products {
		products[i].CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	require.NoError(t, repo.Seed(ctx, products))

	p, err := repo.GetProduct(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Maasai shuka", p.Name)
	assert.Equal(t, int64(3000), p.DiscountPrice)
}

func TestRepository_GetProductNotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.GetProduct(context.Background(), 999)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRepository_Count(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Seed(ctx, testProducts()))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
