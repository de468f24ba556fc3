package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
)

func sampleProduct() model.Product {
	return model.Product{
		ID:       "p-1",
		Name:     "Wireless Earbuds",
		Category: "Electronics",
		Price:    79.99,
		Keywords: "earbuds, bluetooth, audio",
	}
}

func TestProgressSequence(t *testing.T) {
	total := TotalSteps()
	require.Equal(t, 4, total)

	for i := 0; i < total; i++ {
		p := ProgressAt(i)
		assert.Equal(t, i+1, p.Step)
		assert.Equal(t, total, p.TotalSteps)
		assert.NotEmpty(t, p.CurrentTask)
		assert.False(t, p.IsComplete)
	}

	done := ProgressAt(total)
	assert.True(t, done.IsComplete)
	assert.Equal(t, "Generation complete!", done.CurrentTask)

	// Past-the-end indexes stay pinned to the completed state.
	assert.Equal(t, done, ProgressAt(total+3))
}

func TestRegenProgress(t *testing.T) {
	start := RegenStart(model.PlatformInstagram)
	assert.False(t, start.IsComplete)
	assert.Contains(t, start.CurrentTask, "instagram")

	done := RegenDone()
	assert.True(t, done.IsComplete)
}

func TestContentOnlySelectedPlatforms(t *testing.T) {
	p := sampleProduct()

	content := Content(p, []model.Platform{model.PlatformFacebook})
	require.NotNil(t, content.Facebook)
	assert.Nil(t, content.Instagram)
	assert.Nil(t, content.YouTube)

	all := Content(p, model.Platforms)
	require.NotNil(t, all.Facebook)
	require.NotNil(t, all.Instagram)
	require.NotNil(t, all.YouTube)

	// Copy is parameterized on the product.
	assert.Contains(t, all.Facebook.Post, p.Name)
	assert.Contains(t, all.YouTube.Script, p.Name)
	assert.NotEmpty(t, all.Facebook.AdCopy)
	assert.NotEmpty(t, all.Instagram.ImageDescription)
	assert.NotEmpty(t, all.YouTube.ThumbnailDescription)
}

func TestNewCampaign(t *testing.T) {
	p := sampleProduct()

	c := NewCampaign(p, []model.Platform{model.PlatformFacebook, model.PlatformYouTube})
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, p.ID, c.ProductID)
	assert.Equal(t, "Wireless Earbuds Campaign", c.Name)
	assert.Equal(t, model.CampaignStatusDraft, c.Status)
	assert.Len(t, c.Platforms, 2)
	assert.NotNil(t, c.Content.Facebook)
	assert.Nil(t, c.Content.Instagram)
	assert.False(t, c.CreatedAt.IsZero())

	// Two campaigns never share an ID.
	c2 := NewCampaign(p, model.Platforms)
	assert.NotEqual(t, c.ID, c2.ID)
}
