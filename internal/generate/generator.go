// Package generate implements the mocked campaign-copy pipeline. The
// "generation" is a timer-driven simulation: the UI advances through a
// fixed step list and the content comes from canned templates keyed off
// the product. A real generation backend would replace this package
// wholesale.
package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvelasco/trendboard/internal/model"
)

// StepInterval is the delay between pipeline steps.
const StepInterval = 1500 * time.Millisecond

// steps are the pipeline stages in order.
var steps = []string{
	"Analyzing product trends...",
	"Generating Facebook content...",
	"Creating Instagram posts...",
	"Writing YouTube script...",
}

// TotalSteps returns the number of pipeline stages.
func TotalSteps() int {
	return len(steps)
}

// ProgressAt returns the progress value for the zero-based stage index.
// Indexes at or past the end yield the completed state.
func ProgressAt(i int) model.GenerationProgress {
	if i >= len(steps) {
		return model.GenerationProgress{
			Step:        len(steps),
			TotalSteps:  len(steps),
			CurrentTask: "Generation complete!",
			IsComplete:  true,
		}
	}
	return model.GenerationProgress{
		Step:        i + 1,
		TotalSteps:  len(steps),
		CurrentTask: steps[i],
		IsComplete:  false,
	}
}

// RegenStart returns the progress shown while a single platform's
// content is being regenerated.
func RegenStart(platform model.Platform) model.GenerationProgress {
	return model.GenerationProgress{
		Step:        2,
		TotalSteps:  len(steps),
		CurrentTask: fmt.Sprintf("Regenerating %s content...", platform),
		IsComplete:  false,
	}
}

// RegenDone returns the progress shown after a regeneration finishes.
func RegenDone() model.GenerationProgress {
	return model.GenerationProgress{
		Step:        len(steps),
		TotalSteps:  len(steps),
		CurrentTask: "Regeneration complete!",
		IsComplete:  true,
	}
}

// Content assembles the per-platform campaign copy for the selected
// platforms. Unselected platforms stay nil.
func Content(p model.Product, platforms []model.Platform) model.CampaignContent {
	var content model.CampaignContent
	for _, platform := range platforms {
		switch platform {
		case model.PlatformFacebook:
			content.Facebook = facebookContent(p)
		case model.PlatformInstagram:
			content.Instagram = instagramContent(p)
		case model.PlatformYouTube:
			content.YouTube = youtubeContent(p)
		}
	}
	return content
}

// NewCampaign creates a draft campaign with freshly generated content.
func NewCampaign(p model.Product, platforms []model.Platform) model.Campaign {
	return model.Campaign{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		Name:      fmt.Sprintf("%s Campaign", p.Name),
		Platforms: platforms,
		Content:   Content(p, platforms),
		Status:    model.CampaignStatusDraft,
		CreatedAt: time.Now(),
	}
}
