package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/review-router/internal/api/dto"
	"github.com/spec-kit/review-router/internal/api/validation"
	"github.com/spec-kit/review-router/internal/domain"
	"github.com/spec-kit/review-router/internal/service"
	apperrors "github.com/spec-kit/review-router/pkg/util"
)

// TicketsHandler manages the JSON ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// SubmitTicket POST /api/v1/tickets. Every submission outcome is a 200;
// failures are described in the report and raw payload.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	if err := validation.SubmitTicketJSON(c.Body()); err != nil {
		return err
	}
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	sub := h.service.Submit(c.UserContext(), submitInput(req))
	return c.JSON(fiber.Map{"data": submissionResponse(sub)})
}

// ListSources GET /api/v1/sources.
func (h *TicketsHandler) ListSources(c *fiber.Ctx) error {
	platforms := domain.SourcePlatforms()
	items := make([]dto.SourceResponse, 0, len(platforms))
	for i, p := range platforms {
		items = append(items, dto.SourceResponse{Name: string(p), Default: i == 0})
	}
	return c.JSON(fiber.Map{"data": items})
}

func submissionResponse(sub service.Submission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		ID:                sub.ID,
		Outcome:           string(sub.Outcome),
		Report:            sub.Report,
		SuggestedResponse: sub.SuggestedResponse,
		Tier:              sub.Tier,
		Raw:               sub.Raw,
	}
	if sub.Tier != "" {
		resp.Indicator = sub.Tier.Color()
	}
	if url := exportURL(sub); url != "" {
		resp.ExportURL = "/api/v1/tickets/export"
	}
	return resp
}
