package store

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nvelasco/trendboard/internal/model"
)

// NotificationStore owns the in-memory notification feed and the
// delivery-preference settings. It never touches the network.
//
// The feed is ordered most-recent-first, and after every public
// operation UnreadCount() equals the number of entries with Read set
// false; every mutation that flips a read flag or removes an entry
// adjusts the counter in the same critical section.
type NotificationStore struct {
	cache *Cache // optional; nil means in-memory only

	mu            sync.Mutex
	notifications []model.Notification
	settings      model.NotificationSettings
	unread        int
}

// NewNotificationStore creates a NotificationStore with default
// settings. When cache is non-nil, the persisted feed and settings are
// loaded and the unread counter recomputed from the entries.
func NewNotificationStore(cache *Cache) *NotificationStore {
	s := &NotificationStore{
		cache:    cache,
		settings: model.DefaultNotificationSettings(),
	}

	if cache != nil {
		ctx := context.Background()

		notifications, err := cache.GetNotifications(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("loading notification feed from cache failed")
		} else {
			s.notifications = notifications
			for _, n := range notifications {
				if !n.Read {
					s.unread++
				}
			}
		}

		settings, err := cache.GetSettings(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("loading settings from cache failed")
		} else if settings != nil {
			s.settings = *settings
		}
	}

	return s
}

// Notifications returns a copy of the feed, most recent first.
func (s *NotificationStore) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the number of unread entries.
func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Settings returns the current delivery settings.
func (s *NotificationStore) Settings() model.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// AddNotification assigns a fresh ID and timestamp, prepends the entry
// to the feed, and bumps the unread counter. New notifications are
// always unread regardless of the Read value passed in.
func (s *NotificationStore) AddNotification(n model.Notification) model.Notification {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	n.Read = false

	s.mu.Lock()
	s.notifications = append([]model.Notification{n}, s.notifications...)
	s.unread++
	s.mu.Unlock()

	s.persist(n)
	return n
}

// MarkAsRead sets the read flag for the matching entry. Idempotent:
// entries already read, and unknown IDs, leave state untouched.
func (s *NotificationStore) MarkAsRead(id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			if s.unread > 0 {
				s.unread--
			}
		}
		break
	}
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.MarkNotificationRead(context.Background(), id); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("persisting read flag failed")
		}
	}
}

// MarkAllAsRead flips every entry to read and zeroes the counter.
func (s *NotificationStore) MarkAllAsRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unread = 0
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.MarkAllNotificationsRead(context.Background()); err != nil {
			log.Warn().Err(err).Msg("persisting read flags failed")
		}
	}
}

// DeleteNotification removes the entry, decrementing the unread counter
// only when the removed entry was unread. Unknown IDs are a no-op.
func (s *NotificationStore) DeleteNotification(id string) {
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		if !s.notifications[i].Read && s.unread > 0 {
			s.unread--
		}
		s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
		break
	}
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteNotification(context.Background(), id); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("deleting persisted notification failed")
		}
	}
}

// ClearAll empties the feed and resets the counter.
func (s *NotificationStore) ClearAll() {
	s.mu.Lock()
	s.notifications = nil
	s.unread = 0
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.ClearNotifications(context.Background()); err != nil {
			log.Warn().Err(err).Msg("clearing persisted notifications failed")
		}
	}
}

// UpdateSettings shallow-merges the patch into the settings and returns
// the result. No validation: any toggle may be set to any value.
func (s *NotificationStore) UpdateSettings(patch model.SettingsPatch) model.NotificationSettings {
	s.mu.Lock()
	s.settings = patch.Apply(s.settings)
	merged := s.settings
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveSettings(context.Background(), merged); err != nil {
			log.Warn().Err(err).Msg("persisting settings failed")
		}
	}
	return merged
}

// simulated is the fixed set of canned notifications used by Simulate.
var simulated = []model.Notification{
	{
		Title:       "New Product Added",
		Message:     "iPhone 15 Pro has been added to your catalog",
		Type:        model.NotificationSuccess,
		ActionRoute: "products",
		ActionLabel: "View Product",
	},
	{
		Title:       "Trend Alert",
		Message:     "MacBook Air is gaining popularity (+23%)",
		Type:        model.NotificationTrend,
		ActionRoute: "trends",
		ActionLabel: "View Trends",
	},
	{
		Title:       "Campaign Scheduled",
		Message:     "Black Friday campaign will start in 2 hours",
		Type:        model.NotificationCampaign,
		ActionRoute: "campaigns",
		ActionLabel: "View Campaign",
	},
}

// Simulate adds a randomly chosen canned notification to the feed. It
// exists for demos and routes through AddNotification like any other
// producer.
func (s *NotificationStore) Simulate() model.Notification {
	return s.AddNotification(simulated[rand.IntN(len(simulated))])
}

// persist writes a notification to the cache, best effort.
func (s *NotificationStore) persist(n model.Notification) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveNotification(context.Background(), n); err != nil {
		log.Warn().Err(err).Str("id", n.ID).Msg("persisting notification failed")
	}
}
