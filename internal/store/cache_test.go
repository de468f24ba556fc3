package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/tests/testutil"
)

func TestCacheReplaceProducts(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestCache(t)

	base := time.Now().Add(-time.Hour)
	snapshot := []model.Product{
		{ID: "p-1", Name: "Widget", Category: "Electronics", Price: 9.99, IsTrend: true, TrendingPercentage: 42, CreatedAt: base},
		{ID: "p-2", Name: "Gadget", Category: "Other", Price: 19.99, CreatedAt: base.Add(time.Minute)},
	}
	require.NoError(t, c.ReplaceProducts(ctx, snapshot))

	got, err := c.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Widget", got[0].Name)
	assert.True(t, got[0].IsTrend)
	assert.Equal(t, 42, got[0].TrendingPercentage)

	// A replace with a smaller snapshot evicts the rest.
	require.NoError(t, c.ReplaceProducts(ctx, snapshot[:1]))
	got, err = c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCacheUpsertAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestCache(t)

	p := model.Product{ID: "p-1", Name: "Widget", Price: 9.99}
	require.NoError(t, c.UpsertProduct(ctx, p))

	p.Name = "Widget Pro"
	require.NoError(t, c.UpsertProduct(ctx, p))

	got, err := c.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Widget Pro", got[0].Name)

	require.NoError(t, c.DeleteProduct(ctx, "p-1"))
	got, err = c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCacheNotificationsOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestCache(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, c.SaveNotification(ctx, model.Notification{
			ID:        title,
			Title:     title,
			Message:   "m",
			Type:      model.NotificationInfo,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := c.GetNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestCacheSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewTestCache(t)

	// No row yet: explicit nil, not an error.
	got, err := c.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := model.DefaultNotificationSettings()
	want.SystemUpdates = true
	require.NoError(t, c.SaveSettings(ctx, want))

	got, err = c.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}
