package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/review-router/internal/api/dto"
	"github.com/spec-kit/review-router/internal/api/validation"
	"github.com/spec-kit/review-router/internal/domain"
	"github.com/spec-kit/review-router/internal/service"
	apperrors "github.com/spec-kit/review-router/pkg/util"
)

const pageTitle = "Smart Customer Service Router"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type sourceOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Title             string
	Sources           []sourceOption
	ReviewText        string
	Submitted         bool
	Report            string
	SuggestedResponse string
	ExportURL         string
	RawJSON           string
}

// FormHandler serves the HTML form and renders submission results.
type FormHandler struct {
	service *service.TicketService
}

// NewFormHandler constructs handler.
func NewFormHandler(ticketService *service.TicketService) *FormHandler {
	return &FormHandler{service: ticketService}
}

// Index GET /.
func (h *FormHandler) Index(c *fiber.Ctx) error {
	return render(c, pageData{
		Title:   pageTitle,
		Sources: sourceOptions(string(domain.SourceGoogleReviews)),
	})
}

// Submit POST /tickets. Only the presence of an image is forwarded.
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	req := dto.SubmitTicketRequest{
		ReviewText:     c.FormValue("reviewText"),
		SourcePlatform: sourceOrDefault(c.FormValue("sourcePlatform")),
	}
	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		req.HasAttachment = true
	}
	if err := validation.Struct(req); err != nil {
		return render(c.Status(fiber.StatusBadRequest), pageData{
			Title:      pageTitle,
			Sources:    sourceOptions(string(domain.SourceGoogleReviews)),
			ReviewText: req.ReviewText,
			Submitted:  true,
			Report:     invalidFormReport(err),
		})
	}

	sub := h.service.Submit(c.UserContext(), submitInput(req))

	rawJSON, err := json.MarshalIndent(sub.Raw, "", "  ")
	if err != nil {
		rawJSON = []byte(err.Error())
	}
	return render(c, pageData{
		Title:             pageTitle,
		Sources:           sourceOptions(req.SourcePlatform),
		ReviewText:        req.ReviewText,
		Submitted:         true,
		Report:            sub.Report,
		SuggestedResponse: sub.SuggestedResponse,
		ExportURL:         exportURL(sub),
		RawJSON:           string(rawJSON),
	})
}

func invalidFormReport(err error) string {
	msg := err.Error()
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		msg = domainErr.Message
		for field, reason := range domainErr.Details {
			msg += fmt.Sprintf("; %s %v", field, reason)
		}
	}
	return "⚠️ Error: " + msg
}

func render(c *fiber.Ctx, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index", data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func sourceOptions(selected string) []sourceOption {
	platforms := domain.SourcePlatforms()
	opts := make([]sourceOption, 0, len(platforms)+1)
	known := false
	for _, p := range platforms {
		isSelected := string(p) == selected
		known = known || isSelected
		opts = append(opts, sourceOption{Name: string(p), Selected: isSelected})
	}
	if !known && selected != "" {
		opts = append(opts, sourceOption{Name: selected, Selected: true})
	}
	return opts
}

func sourceOrDefault(source string) string {
	if source == "" {
		return string(domain.SourceGoogleReviews)
	}
	return source
}

func submitInput(req dto.SubmitTicketRequest) service.SubmitInput {
	return service.SubmitInput{
		ReviewText:     req.ReviewText,
		SourcePlatform: sourceOrDefault(req.SourcePlatform),
		HasAttachment:  req.HasAttachment,
	}
}

func exportURL(sub service.Submission) string {
	if sub.ExportPath == "" {
		return ""
	}
	return "/export/latest.csv"
}
