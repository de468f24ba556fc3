package api

import "encoding/json"

// Envelope is the `{status, message, data}` wrapper every product API
// response uses. Data is decoded in a second step so list and single
// responses can share the same envelope type.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateProductRequest is the body of POST /api/product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Keywords    string  `json:"keywords,omitempty"`
}

// UpdateProductRequest is the body of PUT /api/product/{id}. The API
// performs a full replacement, so callers send every field.
type UpdateProductRequest struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	ImageURL           string  `json:"imageUrl"`
	IsTrend            bool    `json:"isTrend"`
	TrendingPercentage int     `json:"trendingPercentage"`
	Keywords           string  `json:"keywords,omitempty"`
}
