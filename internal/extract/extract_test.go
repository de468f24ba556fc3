package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURLDomainKeyedData(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantTitle string
		wantPrice float64
	}{
		{
			name:      "amazon",
			url:       "https://www.amazon.com/dp/B0ABC123",
			wantTitle: "Samsung Galaxy S24 Ultra Smartphone",
			wantPrice: 1199.99,
		},
		{
			name:      "shopify",
			url:       "https://mystore.shopify.com/products/tee",
			wantTitle: "Premium Organic Cotton T-Shirt",
			wantPrice: 39.99,
		},
		{
			name:      "etsy",
			url:       "https://www.etsy.com/listing/12345",
			wantTitle: "Handmade Wooden Coffee Table",
			wantPrice: 299.99,
		},
		{
			name:      "unknown domain falls back to generic",
			url:       "https://shop.example.org/item/9",
			wantTitle: "Wireless Bluetooth Headphones",
			wantPrice: 149.99,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := FromURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, e.Title)
			assert.Equal(t, tc.wantPrice, e.Price)
			assert.Equal(t, tc.url, e.SourceURL)
			assert.NotEmpty(t, e.Category)
			assert.NotEmpty(t, e.Images)
			assert.False(t, e.ExtractedAt.IsZero())
		})
	}
}

func TestFromURLStripsWWW(t *testing.T) {
	e, err := FromURL("https://www.amazon.com/dp/B0ABC123")
	require.NoError(t, err)
	assert.Equal(t, "amazon.com", e.Domain)
}

func TestFromURLRejectsBadInput(t *testing.T) {
	for _, raw := range []string{
		"not a url at all",
		"ftp://amazon.com/thing",
		"https://",
		"/relative/path",
	} {
		_, err := FromURL(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestInputUsesFirstImage(t *testing.T) {
	e, err := FromURL("https://www.etsy.com/listing/12345")
	require.NoError(t, err)

	in := e.Input()
	assert.Equal(t, e.Title, in.Name)
	assert.Equal(t, e.Images[0], in.ImageURL)
	require.NoError(t, in.Validate())
}

func TestIsSupportedDomain(t *testing.T) {
	assert.True(t, IsSupportedDomain("amazon.com"))
	assert.True(t, IsSupportedDomain("shop.etsy.com"))
	assert.False(t, IsSupportedDomain("example.org"))
}
