package catalog

import (
	"context"
	"errors"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

type CatalogCache interface {
	Get(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Set(ctx context.Context, ownerID string, products []*domain.Product) error
	Delete(ctx context.Context, ownerID string) error
}

var ErrCacheMiss = errors.New("cache miss")
