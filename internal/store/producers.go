package store

import (
	"fmt"
	"strconv"

	"github.com/nvelasco/trendboard/internal/model"
)

// Producer helpers used across the application to raise notifications
// for domain events. Each routes through AddNotification.

// addMethodLabels maps a product-add method to its display wording.
var addMethodLabels = map[string]string{
	"manual": "manually",
	"csv":    "from CSV",
	"url":    "from URL",
}

// NotifyProductAdded raises a success notification for a newly added
// product. Method is one of "manual", "csv", or "url".
func (s *NotificationStore) NotifyProductAdded(productName, method string) {
	label, ok := addMethodLabels[method]
	if !ok {
		label = "to your catalog"
	}
	s.AddNotification(model.Notification{
		Title:       "Product Added Successfully",
		Message:     fmt.Sprintf("%q has been added %s", productName, label),
		Type:        model.NotificationSuccess,
		ActionRoute: "products",
		ActionLabel: "View Products",
	})
}

// NotifyBulkProductsImported raises a success notification after a CSV
// batch import finishes.
func (s *NotificationStore) NotifyBulkProductsImported(count int) {
	s.AddNotification(model.Notification{
		Title:       "Bulk Import Completed",
		Message:     fmt.Sprintf("%d products have been successfully imported", count),
		Type:        model.NotificationSuccess,
		ActionRoute: "products",
		ActionLabel: "View Products",
	})
}

// NotifyProductUpdated raises a success notification after an update.
func (s *NotificationStore) NotifyProductUpdated(productName string) {
	s.AddNotification(model.Notification{
		Title:       "Product Updated",
		Message:     fmt.Sprintf("%q has been updated successfully", productName),
		Type:        model.NotificationSuccess,
		ActionRoute: "products",
		ActionLabel: "View Products",
	})
}

// NotifyTrendingProduct raises a trend alert. Honors the trend-alerts
// delivery toggle: when it is off the notification is suppressed.
func (s *NotificationStore) NotifyTrendingProduct(productName string, trendScore int) {
	if !s.Settings().TrendAlerts {
		return
	}
	s.AddNotification(model.Notification{
		Title:       "Trending Product Alert",
		Message:     fmt.Sprintf("%s is trending up %d%% this week", productName, trendScore),
		Type:        model.NotificationTrend,
		ActionRoute: "trends",
		ActionLabel: "View Trends",
		Data: map[string]string{
			"productName": productName,
			"trendScore":  strconv.Itoa(trendScore),
		},
	})
}

// campaignStatusMessages maps a campaign status to its display wording.
var campaignStatusMessages = map[string]string{
	model.CampaignStatusScheduled: "has been scheduled",
	model.CampaignStatusPublished: "is now live",
	model.CampaignStatusCompleted: "has finished running",
}

// NotifyCampaignStatusChange raises a campaign update notification.
// Honors the campaign-updates delivery toggle.
func (s *NotificationStore) NotifyCampaignStatusChange(campaignName, status string) {
	if !s.Settings().CampaignUpdates {
		return
	}
	msg, ok := campaignStatusMessages[status]
	if !ok {
		msg = "status updated"
	}
	s.AddNotification(model.Notification{
		Title:       "Campaign Update",
		Message:     fmt.Sprintf("%q %s", campaignName, msg),
		Type:        model.NotificationCampaign,
		ActionRoute: "campaigns",
		ActionLabel: "View Campaign",
	})
}

// NotifyError raises an error notification with no action target.
func (s *NotificationStore) NotifyError(title, message string) {
	s.AddNotification(model.Notification{
		Title:   title,
		Message: message,
		Type:    model.NotificationError,
	})
}

// NotifyWarning raises a warning notification.
func (s *NotificationStore) NotifyWarning(title, message, actionRoute, actionLabel string) {
	s.AddNotification(model.Notification{
		Title:       title,
		Message:     message,
		Type:        model.NotificationWarning,
		ActionRoute: actionRoute,
		ActionLabel: actionLabel,
	})
}

// NotifyInfo raises an informational notification.
func (s *NotificationStore) NotifyInfo(title, message, actionRoute, actionLabel string) {
	s.AddNotification(model.Notification{
		Title:       title,
		Message:     message,
		Type:        model.NotificationInfo,
		ActionRoute: actionRoute,
		ActionLabel: actionLabel,
	})
}
