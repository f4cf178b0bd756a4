package webhook

import (
	"encoding/json"

	"github.com/spec-kit/review-router/internal/domain"
)

// messagePayload carries the review. has_attachment sits next to content and
// source because that is the shape the automation flow reads.
type messagePayload struct {
	Content       string `json:"content"`
	Source        string `json:"source"`
	HasAttachment bool   `json:"has_attachment"`
}

type requestPayload struct {
	Message   messagePayload `json:"message"`
	Timestamp string         `json:"timestamp"`
}

// EncodeRequest serializes a ticket into the webhook body.
func EncodeRequest(req domain.TicketRequest) ([]byte, error) {
	return json.Marshal(requestPayload{
		Message: messagePayload{
			Content:       req.ReviewText,
			Source:        string(req.SourcePlatform),
			HasAttachment: req.HasAttachment,
		},
		Timestamp: req.SubmittedAt.Format(domain.SubmittedAtLayout),
	})
}
