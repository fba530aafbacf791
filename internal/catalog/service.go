package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

// API is the product slice of the upstream client.
type API interface {
	Products(ctx context.Context, p upstream.ListParams) (*domain.ProductPage, error)
	AdminProducts(ctx context.Context, p upstream.ListParams) (*domain.ProductPage, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type Service struct {
	api   API
	cache ProductCache

	group    singleflight.Group
	detail   *gobreaker.CircuitBreaker[*domain.Product]
	listings *gobreaker.CircuitBreaker[*domain.ProductPage]
}

func NewService(api API, cache ProductCache) *Service {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("catalog breaker %s: %s -> %s", name, from, to)
			},
		}
	}
	return &Service{
		api:      api,
		cache:    cache,
		detail:   gobreaker.NewCircuitBreaker[*domain.Product](settings("product-detail")),
		listings: gobreaker.NewCircuitBreaker[*domain.ProductPage](settings("product-listing")),
	}
}

// Get serves a product from cache when possible. Concurrent misses for
// the same id are coalesced into a single upstream request.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("product cache read failed: %v", err)
	}

	v, err, _ := s.group.Do(cacheKey(id), func() (any, error) {
		product, err := s.detail.Execute(func() (*domain.Product, error) {
			return s.api.Product(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, product); err != nil {
			log.Printf("product cache write failed: %v", err)
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// List fetches a catalog page and warms the per-product cache, so the
// detail view that follows a listing click is a cache hit.
func (s *Service) List(ctx context.Context, p upstream.ListParams) (*domain.ProductPage, error) {
	v, err, _ := s.group.Do(listKey(p), func() (any, error) {
		page, err := s.listings.Execute(func() (*domain.ProductPage, error) {
			return s.api.Products(ctx, p)
		})
		if err != nil {
			return nil, err
		}
		s.warm(ctx, page.Content)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ProductPage), nil
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.api.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.warm(ctx, products)
	return products, nil
}

// AdminList bypasses the breaker and the cache: it includes hidden
// products the public cache must never hold.
func (s *Service) AdminList(ctx context.Context, p upstream.ListParams) (*domain.ProductPage, error) {
	return s.api.AdminProducts(ctx, p)
}

func (s *Service) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	created, err := s.api.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, created); err != nil {
		log.Printf("product cache write failed: %v", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	updated, err := s.api.UpdateProduct(ctx, id, product)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, updated); err != nil {
		log.Printf("product cache write failed: %v", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("product cache evict failed: %v", err)
	}
	return nil
}

func (s *Service) warm(ctx context.Context, products []domain.Product) {
	for i := range products {
		if err := s.cache.Set(ctx, &products[i]); err != nil {
			log.Printf("product cache write failed: %v", err)
			return
		}
	}
}

func listKey(p upstream.ListParams) string {
	return fmt.Sprintf("list:%d:%d:%s:%s", p.Page, p.Size, p.Search, p.Sort)
}
