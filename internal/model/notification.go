package model

import "time"

// NotificationType categorizes a notification for display and for the
// per-category delivery toggles in NotificationSettings.
type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationSuccess  NotificationType = "success"
	NotificationWarning  NotificationType = "warning"
	NotificationError    NotificationType = "error"
	NotificationTrend    NotificationType = "trend"
	NotificationCampaign NotificationType = "campaign"
)

// Notification is a transient user-facing event kept in the local feed.
type Notification struct {
	// ID is unique within the feed.
	ID string `json:"id"`

	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`

	// Read only ever transitions false -> true; there is no way to mark
	// an entry unread again.
	Read bool `json:"read"`

	CreatedAt time.Time `json:"created_at"`

	// ActionRoute is an optional navigable view route (e.g. "products",
	// "trends") with a human-readable ActionLabel.
	ActionRoute string `json:"action_route,omitempty"`
	ActionLabel string `json:"action_label,omitempty"`

	// Data holds an optional opaque payload from the producer.
	Data map[string]string `json:"data,omitempty"`
}

// NotificationSettings is a flat set of independent delivery toggles.
// Replaced whole-object on update; no relationships to other entities.
type NotificationSettings struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	TrendAlerts        bool `json:"trend_alerts"`
	CampaignUpdates    bool `json:"campaign_updates"`
	ProductUpdates     bool `json:"product_updates"`
	SystemUpdates      bool `json:"system_updates"`
}

// DefaultNotificationSettings returns the fixed first-use defaults.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		PushNotifications:  true,
		TrendAlerts:        true,
		CampaignUpdates:    true,
		ProductUpdates:     true,
		SystemUpdates:      false,
	}
}

// SettingsPatch shallow-merges into NotificationSettings. Nil fields
// keep the current value; any boolean may be set for any key.
type SettingsPatch struct {
	EmailNotifications *bool
	PushNotifications  *bool
	TrendAlerts        *bool
	CampaignUpdates    *bool
	ProductUpdates     *bool
	SystemUpdates      *bool
}

// Apply merges the patch into s and returns the result.
func (patch SettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	if patch.EmailNotifications != nil {
		s.EmailNotifications = *patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		s.PushNotifications = *patch.PushNotifications
	}
	if patch.TrendAlerts != nil {
		s.TrendAlerts = *patch.TrendAlerts
	}
	if patch.CampaignUpdates != nil {
		s.CampaignUpdates = *patch.CampaignUpdates
	}
	if patch.ProductUpdates != nil {
		s.ProductUpdates = *patch.ProductUpdates
	}
	if patch.SystemUpdates != nil {
		s.SystemUpdates = *patch.SystemUpdates
	}
	return s
}
