package webhook

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/spec-kit/review-router/internal/domain"
)

// Response keys understood by ParseResult.
const (
	KeySentimentScore    = "sentiment_score"
	KeySentimentLabel    = "sentiment_label"
	KeySummary           = "summary"
	KeySuggestedResponse = "suggested_response"
)

// ParseResult builds a fully populated TicketResult from a decoded webhook body.
// It never fails: absent, null or unusable values fall back to the defaults.
func ParseResult(raw any) domain.TicketResult {
	result := domain.DefaultTicketResult()
	result.RawResponse = raw

	fields := payloadObject(raw)
	if fields == nil {
		return result
	}

	result.SentimentScore = coerceScore(fields[KeySentimentScore])
	result.SentimentLabel = stringOr(fields[KeySentimentLabel], domain.DefaultSentimentLabel)
	result.Summary = stringOr(fields[KeySummary], domain.DefaultSummary)
	result.SuggestedResponse = stringOr(fields[KeySuggestedResponse], domain.DefaultSuggestedResponse)
	return result
}

// payloadObject returns the object holding the analysis. Automation tools
// often wrap their output in a one-element array.
func payloadObject(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return obj
			}
		}
	}
	return nil
}

func coerceScore(v any) int {
	if v == nil {
		return domain.DefaultSentimentScore
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.DefaultSentimentScore
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func stringOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	switch v.(type) {
	case map[string]any, []any:
		return fallback
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback
	}
	return s
}
