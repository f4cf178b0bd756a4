package events

import (
	"time"

	"github.com/spec-kit/review-router/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketAnalyzed EventType = "ticket_analyzed"
	EventTicketFailed   EventType = "ticket_failed"
)

// Event represents an outcome emitted by the submission service.
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	SubmissionID string    `json:"submission_id"`
	Timestamp    time.Time `json:"timestamp"`
	Payload      any       `json:"payload"`
}

// TicketAnalyzedPayload payload.
type TicketAnalyzedPayload struct {
	Source     domain.SourcePlatform `json:"source"`
	Tier       domain.Tier           `json:"tier"`
	Score      int                   `json:"score"`
	Label      string                `json:"label"`
	ExportPath string                `json:"export_path,omitempty"`
	Record     domain.ExportRecord   `json:"record"`
}

// TicketFailedPayload payload.
type TicketFailedPayload struct {
	Source     domain.SourcePlatform `json:"source"`
	Outcome    string                `json:"outcome"`
	StatusCode int                   `json:"status_code,omitempty"`
	Reason     string                `json:"reason"`
}
