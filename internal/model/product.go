package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// PlaceholderImage is used when a product has no image of its own.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Product+Image"

// Categories is the closed set of product categories accepted by the
// dashboard. Free-text categories from the API are displayed as-is, but
// everything created locally picks from this list.
var Categories = []string{
	"Electronics",
	"Clothing & Apparel",
	"Home & Garden",
	"Health & Beauty",
	"Sports & Outdoors",
	"Books & Media",
	"Toys & Games",
	"Food & Beverages",
	"Automotive",
	"Other",
}

// IsValidCategory reports whether name is one of the known categories.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Product is a catalog item as returned by the product API. The ID and
// timestamps are server-assigned; the ID never changes once assigned.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`

	// Price is a non-negative decimal amount.
	Price float64 `json:"price"`

	// ImageURL points at the product image. Empty values are replaced
	// with PlaceholderImage before display.
	ImageURL string `json:"imageUrl"`

	// IsTrend marks the product as currently trending.
	// TrendingPercentage (0-100) is only meaningful when IsTrend is set.
	IsTrend            bool `json:"isTrend"`
	TrendingPercentage int  `json:"trendingPercentage"`

	// Keywords is a comma-joined keyword list, empty when unset.
	Keywords string `json:"keywords"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput is the client-side payload for creating a product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	Keywords    string
}

// Validate runs the client-side form checks. A failed check rejects the
// input before any network call is made.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if in.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if in.ImageURL != "" {
		if err := validateHTTPURL(in.ImageURL); err != nil {
			return fmt.Errorf("image URL: %w", err)
		}
	}
	return nil
}

// ProductPatch is a partial update. Nil fields keep the cached value;
// the store merges the patch into the cached entity before sending the
// full replacement the API requires.
type ProductPatch struct {
	Name               *string
	Description        *string
	Category           *string
	Price              *float64
	ImageURL           *string
	IsTrend            *bool
	TrendingPercentage *int
	Keywords           *string
}

// Apply merges the patch into p and returns the result.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.IsTrend != nil {
		p.IsTrend = *patch.IsTrend
	}
	if patch.TrendingPercentage != nil {
		p.TrendingPercentage = *patch.TrendingPercentage
	}
	if patch.Keywords != nil {
		p.Keywords = *patch.Keywords
	}
	return p
}

// validateHTTPURL checks that raw parses as an absolute http(s) URL.
func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
