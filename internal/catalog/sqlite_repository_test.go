package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repository {
	repo, err := NewRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.RunMigrations("./migrations")
	require.NoError(t, err)
	return repo
}

func insertProduct(t *testing.T, repo *Repository, ownerID, name string, price float64, unit domain.UnitKind, stockQuantity *int64) int64 {
	res, err := repo.db.Exec(`
		INSERT INTO products (owner_id, name, selling_price, cost_price, unit, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ownerID, name, price, price/2, string(unit), stockQuantity)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestListProducts_ScopedToOwner(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	insertProduct(t, repo, "o1", "coffee", 3.50, domain.UnitItem, stock(10))
	insertProduct(t, repo, "o1", "beans", 4.50, domain.UnitKilogram, nil)
	insertProduct(t, repo, "o2", "tea", 2.00, domain.UnitItem, nil)

	products, err := repo.ListProducts(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "coffee", products[0].Name)
	require.NotNil(t, products[0].StockQuantity)
	assert.Equal(t, int64(10), *products[0].StockQuantity)
	assert.Nil(t, products[1].StockQuantity)
	assert.Equal(t, domain.UnitKilogram, products[1].Unit)
}

func TestGetProduct(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id := insertProduct(t, repo, "o1", "coffee", 3.50, domain.UnitItem, stock(10))

	p, err := repo.GetProduct(ctx, "o1", id)
	require.NoError(t, err)
	assert.Equal(t, "coffee", p.Name)
	assert.InDelta(t, 3.50, p.SellingPrice, 1e-9)

	_, err = repo.GetProduct(ctx, "o1", id+100)
	require.ErrorIs(t, err, ErrProductNotFound)
}

// Another owner's id must look like a missing product.
func TestGetProduct_WrongOwner(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id := insertProduct(t, repo, "o1", "coffee", 3.50, domain.UnitItem, stock(10))

	_, err := repo.GetProduct(ctx, "o2", id)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateStock(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id := insertProduct(t, repo, "o1", "coffee", 3.50, domain.UnitItem, stock(10))

	err := repo.UpdateStock(ctx, "o1", id, 4)
	require.NoError(t, err)

	p, err := repo.GetProduct(ctx, "o1", id)
	require.NoError(t, err)
	require.NotNil(t, p.StockQuantity)
	assert.Equal(t, int64(4), *p.StockQuantity)
}

func TestUpdateStock_UnknownProduct(t *testing.T) {
	repo := setupTestRepo(t)
	err := repo.UpdateStock(context.Background(), "o1", 999, 4)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateStock_WrongOwner(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id := insertProduct(t, repo, "o1", "coffee", 3.50, domain.UnitItem, stock(10))

	err := repo.UpdateStock(ctx, "o2", id, 0)
	require.ErrorIs(t, err, ErrProductNotFound)

	p, err := repo.GetProduct(ctx, "o1", id)
	require.NoError(t, err)
	require.NotNil(t, p.StockQuantity)
	assert.Equal(t, int64(10), *p.StockQuantity, "stock must be untouched")
}

func TestUpdateStock_RejectsNegative(t *testing.T) {
	repo := setupTestRepo(t)
	err := repo.UpdateStock(context.Background(), "o1", 1, -1)
	require.ErrorIs(t, err, ErrNegativeStock)
}
