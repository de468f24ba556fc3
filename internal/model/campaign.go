package model

import "time"

// Platform identifies a campaign distribution channel.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// Platforms is the closed set of supported campaign platforms.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformYouTube,
}

// Campaign status constants.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusPublished = "published"
	CampaignStatusCompleted = "completed"
)

// PostContent is the generated copy for a feed-style platform.
type PostContent struct {
	Post             string   `json:"post"`
	ImageDescription string   `json:"image_description"`
	AdCopy           []string `json:"ad_copy"`
}

// VideoContent is the generated copy for a video platform.
type VideoContent struct {
	Script               string   `json:"script"`
	ThumbnailDescription string   `json:"thumbnail_description"`
	AdCopy               []string `json:"ad_copy"`
}

// CampaignContent holds the per-platform generated copy. Platforms the
// user did not select are left nil.
type CampaignContent struct {
	Facebook  *PostContent  `json:"facebook,omitempty"`
	Instagram *PostContent  `json:"instagram,omitempty"`
	YouTube   *VideoContent `json:"youtube,omitempty"`
}

// Campaign ties generated content to a product.
type Campaign struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Platforms     []Platform      `json:"platforms"`
	Content       CampaignContent `json:"content"`
	Status        string          `json:"status"`
	ScheduledDate *time.Time      `json:"scheduled_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GenerationProgress describes the state of the mocked campaign
// generation pipeline. It is owned by the UI layer and never persisted.
type GenerationProgress struct {
	Step        int
	TotalSteps  int
	CurrentTask string
	IsComplete  bool
}
