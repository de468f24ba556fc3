package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nvelasco/trendboard/internal/model"
)

// ErrNotFound is returned when the server has no product with the
// requested identifier.
var ErrNotFound = errors.New("product not found")

// Client is a thin HTTP client for the product REST API. It handles the
// api-version header, JSON marshaling, and automatic retry with
// exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	version    string
	token      string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new product API client. The baseURL should be the
// root URL of the service (e.g. http://localhost:8000); version is sent
// as the api-version header. The token is an optional bearer token and
// may be empty.
func NewClient(baseURL, version, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
	}
}

// ListProducts retrieves the full product collection.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := c.do(ctx, http.MethodGet, "/api/product", nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product by ID. Returns ErrNotFound when
// the server responds 404.
func (c *Client) GetProduct(
	ctx context.Context,
	id string,
) (model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodGet, "/api/product/"+id, nil, &product)
	if err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// CreateProduct creates a new product and returns the server's version
// of it, including the assigned ID and timestamps.
func (c *Client) CreateProduct(
	ctx context.Context,
	req CreateProductRequest,
) (model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodPost, "/api/product", req, &product)
	if err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// UpdateProduct performs a full replacement of the product with the
// given ID and returns the server's updated version.
func (c *Client) UpdateProduct(
	ctx context.Context,
	id string,
	req UpdateProductRequest,
) (model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodPut, "/api/product/"+id, req, &product)
	if err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes the product with the given ID. No response body
// is expected on success.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/product/"+id, nil, nil)
}

// do is the core HTTP method that builds the request, decodes the
// response envelope, and retries with backoff on rate limiting.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Rebuild the body reader on retries since it was consumed.
		if attempt > 0 && body != nil {
			data, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("api-version", c.version)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			waitDuration := retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (429) on %s %s", method, path)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		}

		// All other non-2xx responses are treated uniformly as failure;
		// the status text is the error message.
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf(
				"%s %s failed: %s", method, path, resp.Status,
			)
		}

		// No content to parse (e.g. DELETE, 204).
		if result == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}

		var env Envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return fmt.Errorf(
				"unmarshaling response from %s %s: %w", method, path, err,
			)
		}

		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf(
				"unmarshaling response data from %s %s: %w", method, path, err,
			)
		}

		return nil
	}

	return fmt.Errorf(
		"max retries (%d) exceeded: %w", c.maxRetries, lastErr,
	)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
