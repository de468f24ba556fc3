package generate

import (
	"fmt"

	"github.com/nvelasco/trendboard/internal/model"
)

// facebookContent renders the canned Facebook copy for a product.
func facebookContent(p model.Product) *model.PostContent {
	return &model.PostContent{
		Post: fmt.Sprintf(
			"🎵 Experience %s! %s Perfect for your daily routine. #TrendingNow #MustHave",
			p.Name, p.Description,
		),
		ImageDescription: fmt.Sprintf(
			"Professional product shot of %s on a modern desk with soft lighting",
			p.Name,
		),
		AdCopy: []string{
			fmt.Sprintf("Discover %s — now available.", p.Name),
			fmt.Sprintf("%s: the upgrade you have been waiting for.", p.Name),
			fmt.Sprintf("Limited stock: get your %s today.", p.Name),
		},
	}
}

// instagramContent renders the canned Instagram copy for a product.
func instagramContent(p model.Product) *model.PostContent {
	return &model.PostContent{
		Post: fmt.Sprintf(
			"✨ %s just dropped ✨\n%s\nTap the link in bio to shop. #NewArrival #%s",
			p.Name, p.Description, hashtag(p.Category),
		),
		ImageDescription: fmt.Sprintf(
			"Lifestyle flat-lay featuring %s with bright natural light",
			p.Name,
		),
		AdCopy: []string{
			fmt.Sprintf("Your feed called. It wants %s.", p.Name),
			fmt.Sprintf("Meet %s — swipe up to shop.", p.Name),
		},
	}
}

// youtubeContent renders the canned YouTube copy for a product.
func youtubeContent(p model.Product) *model.VideoContent {
	return &model.VideoContent{
		Script: fmt.Sprintf(
			"Are you still settling for less? Meet %s — the game-changer "+
				"you have been waiting for!\n\n[Hold up product] %s\n\n"+
				"Don't settle for average. Upgrade to %s today!",
			p.Name, p.Description, p.Name,
		),
		ThumbnailDescription: fmt.Sprintf(
			"Split screen: left side shows the old way, right side shows %s "+
				"with an excited person",
			p.Name,
		),
		AdCopy: []string{
			fmt.Sprintf("Watch why everyone is switching to %s.", p.Name),
			fmt.Sprintf("%s, reviewed in 60 seconds.", p.Name),
		},
	}
}

// hashtag strips a category down to a single hashtag-safe word.
func hashtag(category string) string {
	out := make([]rune, 0, len(category))
	for _, r := range category {
		if r == ' ' || r == '&' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
