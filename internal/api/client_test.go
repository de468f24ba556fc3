package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
)

// envelope wraps data the way the product API does.
func envelope(t *testing.T, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]interface{}{
		"status":  "success",
		"message": "ok",
		"data":    json.RawMessage(raw),
	})
	require.NoError(t, err)
	return body
}

func TestListProducts(t *testing.T) {
	var gotVersion, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		gotVersion = r.Header.Get("api-version")
		gotAuth = r.Header.Get("Authorization")

		w.Write(envelope(t, []model.Product{
			{ID: "p-1", Name: "Widget", Price: 9.99},
		}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "secret")
	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "1.0.0", gotVersion)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "")
	_, err := c.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Widget", req.Name)

		w.Write(envelope(t, model.Product{
			ID:       "p-1",
			Name:     req.Name,
			Category: req.Category,
			Price:    req.Price,
			ImageURL: req.ImageURL,
		}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "")
	created, err := c.CreateProduct(context.Background(), CreateProductRequest{
		Name:     "Widget",
		Category: "Electronics",
		Price:    9.99,
		ImageURL: model.PlaceholderImage,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)
}

func TestServerErrorUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "")
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500 Internal Server Error")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestRetryOn429(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(envelope(t, []model.Product{}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "")
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDeleteProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product/p-1", r.URL.Path)
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1.0.0", "")
	require.NoError(t, c.DeleteProduct(context.Background(), "p-1"))
}
