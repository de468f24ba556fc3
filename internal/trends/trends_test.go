package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
)

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	require.NotEmpty(t, first)

	first[0].Keyword = "mutated"
	assert.NotEqual(t, "mutated", All()[0].Keyword)
}

func TestForProductsOnlyTrending(t *testing.T) {
	products := []model.Product{
		{ID: "p-1", Name: "Plain"},
		{ID: "p-2", Name: "Hot", IsTrend: true, TrendingPercentage: 80, Keywords: "earbuds, audio"},
		{ID: "p-3", Name: "Hotter", IsTrend: true, TrendingPercentage: 91},
	}

	got := ForProducts(products)
	require.Len(t, got, 2)

	assert.Equal(t, "p-2", got[0].ProductID)
	assert.Equal(t, "earbuds", got[0].Keyword)
	assert.Equal(t, 80, got[0].Score)

	// Products without keywords keep the canned keyword.
	assert.Equal(t, "p-3", got[1].ProductID)
	assert.NotEmpty(t, got[1].Keyword)
	assert.Equal(t, 91, got[1].Score)
}

func TestForProductsEmpty(t *testing.T) {
	assert.Empty(t, ForProducts(nil))
	assert.Empty(t, ForProducts([]model.Product{{ID: "p-1"}}))
}
