package model

// TrendPoint is a single sample in a trend time series.
type TrendPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// TrendData is a mocked trending signal for a product keyword.
type TrendData struct {
	ProductID string `json:"product_id"`
	Keyword   string `json:"keyword"`

	// Score is the current interest score (0-100).
	Score int `json:"score"`

	// Percentage is the growth over the observed window.
	Percentage int `json:"percentage"`

	TimeData        []TrendPoint `json:"time_data"`
	RelatedKeywords []string     `json:"related_keywords"`

	// Reason is a human-readable explanation for the trend.
	Reason string `json:"reason"`
}
