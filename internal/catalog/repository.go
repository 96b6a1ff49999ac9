package catalog

import (
	"context"
	"errors"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("stock quantity must not be negative")
)

// ProductRepository defines the interface for product catalog storage.
// Consumers define this interface, not the SQLite implementation.
// Every operation is owner-scoped: a product id belonging to another
// owner behaves as if it did not exist.
type ProductRepository interface {
	ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, ownerID string, id int64) (*domain.Product, error)
	UpdateStock(ctx context.Context, ownerID string, id int64, newStock int64) error
	RunMigrations(migrationsPath string) error
	Close() error
}
