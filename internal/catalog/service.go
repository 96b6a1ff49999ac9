package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service is the read path the POS screens go through: a cached,
// tenant-scoped view of the product catalog. Stock updates invalidate the
// owner's cache entry, which is what makes displayed stock levels reflect
// a deduction after checkout.
type Service struct {
	repo  ProductRepository
	cache CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo ProductRepository, cache CatalogCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) ListProducts(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same owner
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {

		products, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return products, nil // catalog is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		products, errList := s.repo.ListProducts(ctx, ownerID)
		if errList != nil {
			return nil, errList
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), ownerID, products)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

func (s *Service) GetProduct(ctx context.Context, ownerID string, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, ownerID, id)
}

// UpdateStock writes the new stock level and invalidates the owner's
// cached catalog so the next list re-reads it.
func (s *Service) UpdateStock(ctx context.Context, ownerID string, productID int64, newStock int64) error {
	errUpdate := s.repo.UpdateStock(ctx, ownerID, productID, newStock)
	if errUpdate != nil {
		log.Printf("repo update stock error: %v \n", errUpdate)
		return errUpdate
	}

	invalidateCache(s, ownerID)
	return nil
}

func invalidateCache(s *Service, ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, ownerID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
