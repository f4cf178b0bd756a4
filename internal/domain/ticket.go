package domain

import "time"

// SubmittedAtLayout is the wire format of TicketRequest.SubmittedAt.
const SubmittedAtLayout = "2006-01-02 15:04:05"

// Defaults applied when the webhook omits a field.
const (
	DefaultSentimentScore    = 0
	DefaultSentimentLabel    = "Unknown"
	DefaultSummary           = "No summary provided."
	DefaultSuggestedResponse = "No response generated."
)

// SourcePlatform names where a review came from. Any string is accepted on the wire.
type SourcePlatform string

const (
	SourceGoogleReviews   SourcePlatform = "Google Reviews"
	SourceYelp            SourcePlatform = "Yelp"
	SourceEmailSupport    SourcePlatform = "Email Support"
	SourceTwitter         SourcePlatform = "Twitter"
	SourcePhoneTranscript SourcePlatform = "Phone Transcript"
)

// SourcePlatforms lists the platforms offered by the form, in display order.
func SourcePlatforms() []SourcePlatform {
	return []SourcePlatform{
		SourceGoogleReviews,
		SourceYelp,
		SourceEmailSupport,
		SourceTwitter,
		SourcePhoneTranscript,
	}
}

// TicketRequest is the payload forwarded to the automation webhook.
type TicketRequest struct {
	ReviewText     string
	SourcePlatform SourcePlatform
	HasAttachment  bool
	SubmittedAt    time.Time
}

// TicketResult is the webhook analysis with every field populated.
type TicketResult struct {
	SentimentScore    int
	SentimentLabel    string
	Summary           string
	SuggestedResponse string
	RawResponse       any
}

// DefaultTicketResult returns a result carrying only defaults.
func DefaultTicketResult() TicketResult {
	return TicketResult{
		SentimentScore:    DefaultSentimentScore,
		SentimentLabel:    DefaultSentimentLabel,
		Summary:           DefaultSummary,
		SuggestedResponse: DefaultSuggestedResponse,
	}
}

// ExportRecord is the flattened row written to the export artifact.
type ExportRecord struct {
	Date              time.Time `json:"date"`
	Source            string    `json:"source"`
	Review            string    `json:"review"`
	Sentiment         string    `json:"sentiment"`
	Score             int       `json:"score"`
	Summary           string    `json:"summary"`
	SuggestedResponse string    `json:"suggested_response"`
}

// NewExportRecord flattens a request and its result.
func NewExportRecord(at time.Time, req TicketRequest, res TicketResult) ExportRecord {
	return ExportRecord{
		Date:              at,
		Source:            string(req.SourcePlatform),
		Review:            req.ReviewText,
		Sentiment:         res.SentimentLabel,
		Score:             res.SentimentScore,
		Summary:           res.Summary,
		SuggestedResponse: res.SuggestedResponse,
	}
}
