package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ProductInput {
	return ProductInput{
		Name:        "Widget",
		Description: "A useful widget",
		Category:    "Electronics",
		Price:       9.99,
		ImageURL:    "https://example.com/w.png",
	}
}

func TestProductInputValidate(t *testing.T) {
	require.NoError(t, validInput().Validate())

	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr string
	}{
		{"empty name", func(in *ProductInput) { in.Name = "  " }, "name is required"},
		{"empty description", func(in *ProductInput) { in.Description = "" }, "description is required"},
		{"empty category", func(in *ProductInput) { in.Category = "" }, "category is required"},
		{"negative price", func(in *ProductInput) { in.Price = -0.01 }, "negative"},
		{"non-http image", func(in *ProductInput) { in.ImageURL = "ftp://x/y.png" }, "image URL"},
		{"image without host", func(in *ProductInput) { in.ImageURL = "https://" }, "image URL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	// Zero price and empty image URL are both acceptable.
	in := validInput()
	in.Price = 0
	in.ImageURL = ""
	assert.NoError(t, in.Validate())
}

func TestProductPatchApply(t *testing.T) {
	p := Product{
		ID:       "p-1",
		Name:     "Widget",
		Category: "Electronics",
		Price:    9.99,
		Keywords: "widget",
	}

	name := "Widget Pro"
	trend := true
	pct := 55
	got := ProductPatch{
		Name:               &name,
		IsTrend:            &trend,
		TrendingPercentage: &pct,
	}.Apply(p)

	assert.Equal(t, "Widget Pro", got.Name)
	assert.True(t, got.IsTrend)
	assert.Equal(t, 55, got.TrendingPercentage)
	// Nil fields keep the original values, and the ID never changes.
	assert.Equal(t, "Electronics", got.Category)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, "p-1", got.ID)

	// Empty patch is the identity.
	assert.Equal(t, p, ProductPatch{}.Apply(p))
}

func TestSettingsPatchApply(t *testing.T) {
	s := DefaultNotificationSettings()

	off := false
	on := true
	got := SettingsPatch{
		TrendAlerts:   &off,
		SystemUpdates: &on,
	}.Apply(s)

	assert.False(t, got.TrendAlerts)
	assert.True(t, got.SystemUpdates)
	assert.True(t, got.EmailNotifications)
	assert.True(t, got.CampaignUpdates)
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Electronics"))
	assert.True(t, IsValidCategory("Other"))
	assert.False(t, IsValidCategory("electronics"))
	assert.False(t, IsValidCategory(""))
}
