package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nvelasco/trendboard/internal/api"
	"github.com/nvelasco/trendboard/internal/model"
)

// ProductAPI is the slice of the product API client the store depends
// on. *api.Client satisfies it; tests substitute a fake.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, req api.CreateProductRequest) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, req api.UpdateProductRequest) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductStore is the single source of truth for the product collection
// and the sole caller of the product API. It keeps the last-known
// server state; on fetch failure the previous collection stays visible
// alongside the error (stale-but-available).
//
// The mutex guards state access only, never whole API round-trips:
// overlapping fetches race and the last response to settle wins the
// collection replacement, matching the accepted looseness of the
// single-writer UI this store serves.
type ProductStore struct {
	api   ProductAPI
	cache *Cache // optional; nil means in-memory only

	mu         sync.Mutex
	products   []model.Product
	loading    bool
	lastErr    string
	generation *model.GenerationProgress
}

// NewProductStore creates a ProductStore backed by the given API
// client. When cache is non-nil, the store seeds its collection from
// the cached snapshot so the dashboard has data before the first fetch.
func NewProductStore(client ProductAPI, cache *Cache) *ProductStore {
	s := &ProductStore{api: client, cache: cache}

	if cache != nil {
		products, err := cache.GetProducts(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("seeding products from cache failed")
		} else {
			s.products = products
		}
	}

	return s
}

// Products returns a copy of the current collection.
func (s *ProductStore) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// IsLoading reports whether an API operation is in flight.
func (s *ProductStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the stored error message, empty when the last
// operation succeeded.
func (s *ProductStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError resets the stored error message.
func (s *ProductStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// GenerationProgress returns the current mock-generation progress, nil
// when no generation is running.
func (s *ProductStore) GenerationProgress() *model.GenerationProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == nil {
		return nil
	}
	p := *s.generation
	return &p
}

// SetGenerationProgress replaces the generation progress value. Pass
// nil to clear it.
func (s *ProductStore) SetGenerationProgress(p *model.GenerationProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation = p
}

// FetchProducts requests the full collection. On success the local
// collection is replaced and the error cleared; on failure the
// previous collection is preserved and the error message stored.
// Callers read the outcome from Products() and Error().
func (s *ProductStore) FetchProducts(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.products = products
	s.lastErr = ""
	s.mu.Unlock()

	s.persistSnapshot(ctx, products)
}

// AddProduct creates a product via the API and appends the server's
// version (with assigned ID and timestamps) to the collection. On
// failure the collection is left unchanged and the error is both
// stored and returned so the caller can react (e.g. keep a form open).
func (s *ProductStore) AddProduct(
	ctx context.Context,
	input model.ProductInput,
) (model.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = model.PlaceholderImage
	}

	created, err := s.api.CreateProduct(ctx, api.CreateProductRequest{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    imageURL,
		Keywords:    input.Keywords,
	})
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return model.Product{}, err
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.lastErr = ""
	s.mu.Unlock()

	s.persistProduct(ctx, created)
	return created, nil
}

// UpdateProduct merges the patch into the cached entity and sends the
// full replacement the API requires. Fails when the ID is not in the
// local collection: an update implies the caller believed it existed.
func (s *ProductStore) UpdateProduct(
	ctx context.Context,
	id string,
	patch model.ProductPatch,
) (model.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		err := fmt.Errorf("product %s not found", id)
		s.lastErr = err.Error()
		s.mu.Unlock()
		return model.Product{}, err
	}
	merged := patch.Apply(s.products[idx])
	s.mu.Unlock()

	updated, err := s.api.UpdateProduct(ctx, id, api.UpdateProductRequest{
		Name:               merged.Name,
		Category:           merged.Category,
		Description:        merged.Description,
		Price:              merged.Price,
		ImageURL:           merged.ImageURL,
		IsTrend:            merged.IsTrend,
		TrendingPercentage: merged.TrendingPercentage,
		Keywords:           merged.Keywords,
	})
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return model.Product{}, err
	}

	s.mu.Lock()
	// Re-resolve the index: the collection may have shifted while the
	// request was in flight.
	if idx := s.indexOf(id); idx >= 0 {
		s.products[idx] = updated
	}
	s.lastErr = ""
	s.mu.Unlock()

	s.persistProduct(ctx, updated)
	return updated, nil
}

// DeleteProduct removes the product via the API and, on success, from
// the local collection.
func (s *ProductStore) DeleteProduct(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.products = append(s.products[:idx], s.products[idx+1:]...)
	}
	s.lastErr = ""
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteProduct(ctx, id); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("evicting cached product failed")
		}
	}
	return nil
}

// GetProductByID returns the cached entity when present; otherwise it
// fetches from the API and caches the result. A missing product is an
// explicit (nil, nil) result, not an error — callers must branch on
// absence.
func (s *ProductStore) GetProductByID(
	ctx context.Context,
	id string,
) (*model.Product, error) {
	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		p := s.products[idx]
		s.mu.Unlock()
		return &p, nil
	}
	s.mu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	fetched, err := s.api.GetProduct(ctx, id)
	if errors.Is(err, api.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	// Insert only if a concurrent call has not already cached it.
	if s.indexOf(id) < 0 {
		s.products = append(s.products, fetched)
	}
	s.mu.Unlock()

	s.persistProduct(ctx, fetched)
	return &fetched, nil
}

// indexOf returns the position of the product with the given ID, or -1.
// Callers must hold s.mu.
func (s *ProductStore) indexOf(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// setLoading flips the loading flag.
func (s *ProductStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// persistSnapshot writes the full collection to the cache, best effort.
func (s *ProductStore) persistSnapshot(ctx context.Context, products []model.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ReplaceProducts(ctx, products); err != nil {
		log.Warn().Err(err).Msg("persisting product snapshot failed")
	}
}

// persistProduct writes a single product to the cache, best effort.
func (s *ProductStore) persistProduct(ctx context.Context, p model.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertProduct(ctx, p); err != nil {
		log.Warn().Err(err).Str("id", p.ID).Msg("persisting product failed")
	}
}
