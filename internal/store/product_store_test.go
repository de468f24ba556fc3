package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/api"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/store"
	"github.com/nvelasco/trendboard/tests/testutil"
)

// fakeAPI is an in-memory ProductAPI backed by a slice.
type fakeAPI struct {
	mu       sync.Mutex
	products []model.Product
	nextID   int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("GET /api/product/%s: %w", id, api.ErrNotFound)
}

func (f *fakeAPI) CreateProduct(ctx context.Context, req api.CreateProductRequest) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Product{}, f.createErr
	}
	f.nextID++
	p := model.Product{
		ID:          fmt.Sprintf("p-%d", f.nextID),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Keywords:    req.Keywords,
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, req api.UpdateProductRequest) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return model.Product{}, f.updateErr
	}
	for i, p := range f.products {
		if p.ID != id {
			continue
		}
		p.Name = req.Name
		p.Category = req.Category
		p.Description = req.Description
		p.Price = req.Price
		p.ImageURL = req.ImageURL
		p.IsTrend = req.IsTrend
		p.TrendingPercentage = req.TrendingPercentage
		p.Keywords = req.Keywords
		f.products[i] = p
		return p, nil
	}
	return model.Product{}, fmt.Errorf("PUT /api/product/%s: %w", id, api.ErrNotFound)
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("DELETE /api/product/%s: %w", id, api.ErrNotFound)
}

func seedInput(name string) model.ProductInput {
	return model.ProductInput{
		Name:        name,
		Description: "a product used in tests",
		Category:    "Electronics",
		Price:       19.99,
	}
}

func TestProductStoreAddAndFetch(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{}
	s := store.NewProductStore(f, nil)

	created, err := s.AddProduct(ctx, seedInput("Widget"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", created.Name)
	// Empty image URLs fall back to the shared placeholder.
	assert.Equal(t, model.PlaceholderImage, created.ImageURL)

	s.FetchProducts(ctx)
	require.Empty(t, s.Error())
	require.Len(t, s.Products(), 1)
	assert.False(t, s.IsLoading())
}

func TestProductStoreFetchFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{}
	s := store.NewProductStore(f, nil)

	_, err := s.AddProduct(ctx, seedInput("Widget"))
	require.NoError(t, err)

	f.mu.Lock()
	f.listErr = errors.New("connection refused")
	f.mu.Unlock()

	s.FetchProducts(ctx)

	// Stale data stays visible alongside the error.
	assert.Len(t, s.Products(), 1)
	assert.Contains(t, s.Error(), "connection refused")
	assert.False(t, s.IsLoading())

	f.mu.Lock()
	f.listErr = nil
	f.mu.Unlock()

	s.FetchProducts(ctx)
	assert.Empty(t, s.Error())
}

func TestProductStoreUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{}
	s := store.NewProductStore(f, nil)

	created, err := s.AddProduct(ctx, seedInput("Widget"))
	require.NoError(t, err)

	newName := "Widget Pro"
	updated, err := s.UpdateProduct(ctx, created.ID, model.ProductPatch{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)
	// Unpatched fields keep their previous values.
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Category, updated.Category)

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Widget Pro", products[0].Name)
}

func TestProductStoreUpdateUnknownIDFails(t *testing.T) {
	ctx := context.Background()
	s := store.NewProductStore(&fakeAPI{}, nil)

	name := "nope"
	_, err := s.UpdateProduct(ctx, "missing", model.ProductPatch{Name: &name})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, s.Error(), "not found")
}

func TestProductStoreDelete(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{}
	s := store.NewProductStore(f, nil)

	created, err := s.AddProduct(ctx, seedInput("Widget"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, created.ID))
	assert.Empty(t, s.Products())
}

func TestProductStoreGetByIDMissingIsNilNil(t *testing.T) {
	ctx := context.Background()
	s := store.NewProductStore(&fakeAPI{}, nil)

	p, err := s.GetProductByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, p)
	// A missing product is absence, not failure.
	assert.Empty(t, s.Error())
}

func TestProductStoreGetByIDCachesFetched(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{products: []model.Product{
		{ID: "p-1", Name: "Remote"},
	}}
	s := store.NewProductStore(f, nil)

	p, err := s.GetProductByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Remote", p.Name)

	// Second lookup is served from the collection.
	require.Len(t, s.Products(), 1)
	again, err := s.GetProductByID(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Len(t, s.Products(), 1)
}

func TestProductStoreSeedsFromCache(t *testing.T) {
	ctx := context.Background()
	cache := testutil.NewTestCache(t)

	f := &fakeAPI{}
	first := store.NewProductStore(f, cache)
	_, err := first.AddProduct(ctx, seedInput("Persisted"))
	require.NoError(t, err)

	// A fresh store over the same cache sees the snapshot before any
	// network fetch.
	second := store.NewProductStore(&fakeAPI{listErr: errors.New("offline")}, cache)
	products := second.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Persisted", products[0].Name)
}

func TestProductStoreGenerationProgress(t *testing.T) {
	s := store.NewProductStore(&fakeAPI{}, nil)
	require.Nil(t, s.GenerationProgress())

	s.SetGenerationProgress(&model.GenerationProgress{
		Step: 1, TotalSteps: 4, CurrentTask: "Analyzing product trends...",
	})
	p := s.GenerationProgress()
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Step)

	s.SetGenerationProgress(nil)
	assert.Nil(t, s.GenerationProgress())
}
