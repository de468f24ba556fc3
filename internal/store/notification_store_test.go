package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/store"
	"github.com/nvelasco/trendboard/tests/testutil"
)

// countUnread recomputes the unread count from the feed so tests can
// assert the counter never drifts from the entries.
func countUnread(feed []model.Notification) int {
	n := 0
	for _, e := range feed {
		if !e.Read {
			n++
		}
	}
	return n
}

func addInfo(s *store.NotificationStore, title string) model.Notification {
	return s.AddNotification(model.Notification{
		Title:   title,
		Message: "test message",
		Type:    model.NotificationInfo,
	})
}

func TestNotificationStoreAdd(t *testing.T) {
	s := store.NewNotificationStore(nil)

	n := addInfo(s, "first")
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.False(t, n.Read)

	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, countUnread(s.Notifications()), s.UnreadCount())
}

func TestNotificationStoreAddForcesUnread(t *testing.T) {
	s := store.NewNotificationStore(nil)

	n := s.AddNotification(model.Notification{
		Title: "pre-read", Message: "m", Type: model.NotificationInfo,
		Read: true,
	})
	assert.False(t, n.Read)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestNotificationStoreOrdering(t *testing.T) {
	s := store.NewNotificationStore(nil)
	addInfo(s, "oldest")
	addInfo(s, "middle")
	addInfo(s, "newest")

	feed := s.Notifications()
	require.Len(t, feed, 3)
	assert.Equal(t, "newest", feed[0].Title)
	assert.Equal(t, "oldest", feed[2].Title)
}

func TestNotificationStoreMarkAsReadIdempotent(t *testing.T) {
	s := store.NewNotificationStore(nil)
	n := addInfo(s, "one")
	addInfo(s, "two")

	s.MarkAsRead(n.ID)
	assert.Equal(t, 1, s.UnreadCount())

	// Second mark of the same entry must not decrement again.
	s.MarkAsRead(n.ID)
	assert.Equal(t, 1, s.UnreadCount())

	// Unknown IDs leave state untouched.
	s.MarkAsRead("no-such-id")
	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, countUnread(s.Notifications()), s.UnreadCount())
}

func TestNotificationStoreMarkAllAsRead(t *testing.T) {
	s := store.NewNotificationStore(nil)
	addInfo(s, "one")
	addInfo(s, "two")
	addInfo(s, "three")

	s.MarkAllAsRead()
	assert.Equal(t, 0, s.UnreadCount())
	for _, n := range s.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestNotificationStoreDelete(t *testing.T) {
	s := store.NewNotificationStore(nil)
	unreadEntry := addInfo(s, "unread")
	readEntry := addInfo(s, "read")
	s.MarkAsRead(readEntry.ID)
	require.Equal(t, 1, s.UnreadCount())

	// Deleting a read entry leaves the counter alone.
	s.DeleteNotification(readEntry.ID)
	assert.Equal(t, 1, s.UnreadCount())
	assert.Len(t, s.Notifications(), 1)

	// Deleting an unread entry decrements it.
	s.DeleteNotification(unreadEntry.ID)
	assert.Equal(t, 0, s.UnreadCount())
	assert.Empty(t, s.Notifications())

	// Unknown IDs are a no-op.
	s.DeleteNotification("no-such-id")
	assert.Equal(t, 0, s.UnreadCount())
}

func TestNotificationStoreClearAll(t *testing.T) {
	s := store.NewNotificationStore(nil)
	addInfo(s, "one")
	addInfo(s, "two")

	s.ClearAll()
	assert.Empty(t, s.Notifications())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestNotificationStoreDefaultSettings(t *testing.T) {
	s := store.NewNotificationStore(nil)

	got := s.Settings()
	assert.True(t, got.EmailNotifications)
	assert.True(t, got.PushNotifications)
	assert.True(t, got.TrendAlerts)
	assert.True(t, got.CampaignUpdates)
	assert.True(t, got.ProductUpdates)
	assert.False(t, got.SystemUpdates)
}

func TestNotificationStoreUpdateSettingsShallowMerge(t *testing.T) {
	s := store.NewNotificationStore(nil)

	off := false
	merged := s.UpdateSettings(model.SettingsPatch{TrendAlerts: &off})
	assert.False(t, merged.TrendAlerts)
	// Untouched toggles survive the merge.
	assert.True(t, merged.EmailNotifications)
	assert.True(t, merged.PushNotifications)

	assert.Equal(t, merged, s.Settings())
}

func TestNotificationStoreSimulate(t *testing.T) {
	s := store.NewNotificationStore(nil)

	n := s.Simulate()
	assert.NotEmpty(t, n.Title)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestNotificationStorePersistence(t *testing.T) {
	cache := testutil.NewTestCache(t)

	first := store.NewNotificationStore(cache)
	kept := addInfo(first, "kept")
	gone := addInfo(first, "gone")
	first.MarkAsRead(kept.ID)
	first.DeleteNotification(gone.ID)

	off := false
	first.UpdateSettings(model.SettingsPatch{PushNotifications: &off})

	// A fresh store over the same cache restores feed, counter and
	// settings.
	second := store.NewNotificationStore(cache)
	feed := second.Notifications()
	require.Len(t, feed, 1)
	assert.Equal(t, "kept", feed[0].Title)
	assert.True(t, feed[0].Read)
	assert.Equal(t, 0, second.UnreadCount())
	assert.False(t, second.Settings().PushNotifications)
}

func TestNotifyTrendingProductRespectsSettings(t *testing.T) {
	s := store.NewNotificationStore(nil)

	s.NotifyTrendingProduct("Widget", 87)
	require.Equal(t, 1, s.UnreadCount())
	feed := s.Notifications()
	assert.Equal(t, model.NotificationTrend, feed[0].Type)
	assert.Equal(t, "87", feed[0].Data["trendScore"])

	off := false
	s.UpdateSettings(model.SettingsPatch{TrendAlerts: &off})

	// With trend alerts off, no entry is produced.
	s.NotifyTrendingProduct("Widget", 90)
	assert.Equal(t, 1, s.UnreadCount())
}
