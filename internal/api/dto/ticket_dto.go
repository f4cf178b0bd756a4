package dto

import (
	"time"

	"github.com/spec-kit/review-router/internal/domain"
)

// SubmitTicketRequest payload for both the JSON API and the HTML form. Review
// length is bounded only by the HTTP body limit.
type SubmitTicketRequest struct {
	ReviewText     string `json:"reviewText" form:"reviewText"`
	SourcePlatform string `json:"sourcePlatform" form:"sourcePlatform" validate:"max=64"`
	HasAttachment  bool   `json:"hasAttachment" form:"-"`
}

// SubmissionResponse mirrors service.Submission for API clients.
type SubmissionResponse struct {
	ID                string      `json:"id"`
	Outcome           string      `json:"outcome"`
	Report            string      `json:"report"`
	SuggestedResponse string      `json:"suggested_response"`
	Tier              domain.Tier `json:"tier,omitempty"`
	Indicator         string      `json:"indicator,omitempty"`
	ExportURL         string      `json:"export_url,omitempty"`
	Raw               any         `json:"raw"`
}

// ExportRecordResponse is the latest export row as JSON.
type ExportRecordResponse struct {
	Date              time.Time `json:"date"`
	Source            string    `json:"source"`
	Review            string    `json:"review"`
	Sentiment         string    `json:"sentiment"`
	Score             int       `json:"score"`
	Summary           string    `json:"summary"`
	SuggestedResponse string    `json:"suggested_response"`
}

// SourceResponse lists a selectable platform.
type SourceResponse struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}
