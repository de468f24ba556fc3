// Package trends supplies the mocked trending signals shown on the
// trends view. The dataset is fixed demo data; ForProducts overlays it
// onto whatever products are currently in the catalog.
package trends

import (
	"github.com/nvelasco/trendboard/internal/model"
)

// dataset is the canned trend data the dashboard cycles through.
var dataset = []model.TrendData{
	{
		Keyword:    "wireless earbuds",
		Score:      95,
		Percentage: 340,
		TimeData: []model.TrendPoint{
			{Date: "2024-01-01", Value: 45},
			{Date: "2024-01-15", Value: 62},
			{Date: "2024-02-01", Value: 78},
			{Date: "2024-02-15", Value: 95},
			{Date: "2024-03-01", Value: 89},
		},
		RelatedKeywords: []string{
			"bluetooth headphones", "noise cancelling",
			"apple airpods", "wireless audio",
		},
		Reason: "New iPhone release and holiday shopping season driving " +
			"demand for premium audio accessories",
	},
	{
		Keyword:    "halloween decorations",
		Score:      88,
		Percentage: 280,
		TimeData: []model.TrendPoint{
			{Date: "2024-08-01", Value: 15},
			{Date: "2024-09-01", Value: 35},
			{Date: "2024-09-15", Value: 65},
			{Date: "2024-10-01", Value: 88},
			{Date: "2024-10-15", Value: 92},
		},
		RelatedKeywords: []string{
			"spooky lights", "halloween party",
			"outdoor decorations", "led string lights",
		},
		Reason: "October seasonal trend with increased searches for " +
			"Halloween decorating ideas",
	},
	{
		Keyword:    "home fitness equipment",
		Score:      76,
		Percentage: 180,
		TimeData: []model.TrendPoint{
			{Date: "2023-12-01", Value: 30},
			{Date: "2023-12-15", Value: 45},
			{Date: "2024-01-01", Value: 76},
			{Date: "2024-01-15", Value: 68},
			{Date: "2024-02-01", Value: 52},
		},
		RelatedKeywords: []string{
			"resistance training", "home workout",
			"fitness bands", "new year fitness",
		},
		Reason: "New Year fitness resolutions and continued home workout " +
			"trend post-pandemic",
	},
}

// All returns the full mocked trend dataset.
func All() []model.TrendData {
	out := make([]model.TrendData, len(dataset))
	copy(out, dataset)
	return out
}

// ForProducts assigns the canned trend entries round-robin to the given
// products so each trending product gets a chart to show.
func ForProducts(products []model.Product) []model.TrendData {
	var out []model.TrendData
	i := 0
	for _, p := range products {
		if !p.IsTrend {
			continue
		}
		td := dataset[i%len(dataset)]
		td.ProductID = p.ID
		if p.Keywords != "" {
			td.Keyword = firstKeyword(p.Keywords)
		}
		if p.TrendingPercentage > 0 {
			td.Score = p.TrendingPercentage
		}
		out = append(out, td)
		i++
	}
	return out
}

// firstKeyword returns the first entry of a comma-joined keyword list.
func firstKeyword(keywords string) string {
	for i := 0; i < len(keywords); i++ {
		if keywords[i] == ',' {
			return keywords[:i]
		}
	}
	return keywords
}
