package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScore_Boundaries(t *testing.T) {
	tests := []struct {
		score     int
		tier      Tier
		color     string
		indicator string
	}{
		{score: -3, tier: TierLow, color: "red", indicator: "🔴"},
		{score: 0, tier: TierLow, color: "red", indicator: "🔴"},
		{score: 5, tier: TierLow, color: "red", indicator: "🔴"},
		{score: 6, tier: TierMedium, color: "yellow", indicator: "🟡"},
		{score: 7, tier: TierMedium, color: "yellow", indicator: "🟡"},
		{score: 8, tier: TierHigh, color: "green", indicator: "🟢"},
		{score: 10, tier: TierHigh, color: "green", indicator: "🟢"},
		{score: 42, tier: TierHigh, color: "green", indicator: "🟢"},
	}

	for _, tt := range tests {
		tier := ClassifyScore(tt.score)
		assert.Equal(t, tt.tier, tier, "score %d", tt.score)
		assert.Equal(t, tt.color, tier.Color(), "score %d", tt.score)
		assert.Equal(t, tt.indicator, tier.Indicator(), "score %d", tt.score)
	}
}

func TestNewExportRecord(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	req := TicketRequest{ReviewText: "Great pizza", SourcePlatform: SourceYelp}
	res := TicketResult{
		SentimentScore:    9,
		SentimentLabel:    "Positive",
		Summary:           "Happy customer",
		SuggestedResponse: "Thanks!",
	}

	rec := NewExportRecord(at, req, res)

	assert.Equal(t, ExportRecord{
		Date:              at,
		Source:            "Yelp",
		Review:            "Great pizza",
		Sentiment:         "Positive",
		Score:             9,
		Summary:           "Happy customer",
		SuggestedResponse: "Thanks!",
	}, rec)
}

func TestDefaultTicketResult(t *testing.T) {
	res := DefaultTicketResult()
	assert.Equal(t, 0, res.SentimentScore)
	assert.Equal(t, "Unknown", res.SentimentLabel)
	assert.Equal(t, "No summary provided.", res.Summary)
	assert.Equal(t, "No response generated.", res.SuggestedResponse)
}
