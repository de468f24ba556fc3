// Package extract derives mock product data from a product-page URL.
// No page is actually fetched: the extraction is a canned simulation
// keyed off the URL's domain, matching the demo behavior of the
// URL-import flow.
package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nvelasco/trendboard/internal/model"
)

// SupportedDomains lists the marketplaces the extractor claims to
// understand. Any other domain falls back to generic data.
var SupportedDomains = []string{
	"amazon.com",
	"ebay.com",
	"shopify.com",
	"etsy.com",
	"walmart.com",
	"target.com",
	"alibaba.com",
	"aliexpress.com",
}

// Extracted holds the mock product data pulled from a URL, along with
// extraction metadata.
type Extracted struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Images      []string

	Domain      string
	SourceURL   string
	ExtractedAt time.Time
}

// Input converts the extracted data into a product creation payload.
func (e Extracted) Input() model.ProductInput {
	image := ""
	if len(e.Images) > 0 {
		image = e.Images[0]
	}
	return model.ProductInput{
		Name:        e.Title,
		Description: e.Description,
		Category:    e.Category,
		Price:       e.Price,
		ImageURL:    image,
	}
}

// IsSupportedDomain reports whether domain is in SupportedDomains.
func IsSupportedDomain(domain string) bool {
	for _, d := range SupportedDomains {
		if strings.HasSuffix(domain, d) {
			return true
		}
	}
	return false
}

// FromURL validates the URL and returns domain-keyed mock product data.
func FromURL(raw string) (Extracted, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Extracted{}, fmt.Errorf("parsing URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Extracted{}, fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return Extracted{}, fmt.Errorf("%q has no host", raw)
	}

	domain := strings.TrimPrefix(u.Hostname(), "www.")

	e := mockFor(domain)
	e.Domain = domain
	e.SourceURL = raw
	e.ExtractedAt = time.Now()
	return e, nil
}

// mockFor returns the canned product data for a domain.
func mockFor(domain string) Extracted {
	switch {
	case strings.Contains(domain, "amazon"):
		return Extracted{
			Title: "Samsung Galaxy S24 Ultra Smartphone",
			Description: "Latest flagship smartphone with advanced camera system, " +
				"5G connectivity, and all-day battery life. Features a stunning " +
				"6.8-inch display and premium build quality.",
			Category: "Electronics",
			Price:    1199.99,
			Images: []string{
				"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400",
			},
		}
	case strings.Contains(domain, "shopify"):
		return Extracted{
			Title: "Premium Organic Cotton T-Shirt",
			Description: "Sustainable and comfortable organic cotton t-shirt made " +
				"from 100% GOTS certified organic cotton. Perfect for everyday " +
				"wear with a relaxed fit.",
			Category: "Clothing & Apparel",
			Price:    39.99,
			Images: []string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
			},
		}
	case strings.Contains(domain, "etsy"):
		return Extracted{
			Title: "Handmade Wooden Coffee Table",
			Description: "Beautiful handcrafted coffee table made from reclaimed " +
				"oak wood. Each piece is unique and features natural wood grain " +
				"patterns. Perfect for modern homes.",
			Category: "Home & Garden",
			Price:    299.99,
			Images: []string{
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
			},
		}
	default:
		return Extracted{
			Title: "Wireless Bluetooth Headphones",
			Description: "High-quality wireless headphones with noise cancellation, " +
				"premium sound quality, and up to 30 hours of battery life. " +
				"Perfect for music lovers and professionals.",
			Category: "Electronics",
			Price:    149.99,
			Images: []string{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
			},
		}
	}
}
