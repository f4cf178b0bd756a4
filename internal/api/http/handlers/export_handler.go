package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/review-router/internal/api/dto"
	"github.com/spec-kit/review-router/internal/domain"
	"github.com/spec-kit/review-router/internal/export"
	apperrors "github.com/spec-kit/review-router/pkg/util"
)

// ExportHandler serves the latest-ticket artifact.
type ExportHandler struct {
	files  *export.FileExporter
	mirror *export.LatestCache
	logger *zap.Logger
}

// NewExportHandler constructs handler. mirror may be nil.
func NewExportHandler(files *export.FileExporter, mirror *export.LatestCache, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{files: files, mirror: mirror, logger: logger}
}

// Download GET /export/latest.csv and GET /api/v1/tickets/export.
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	data, err := h.files.Read()
	if errors.Is(err, export.ErrNoExport) {
		data, err = h.fromMirror(c)
	}
	if err != nil {
		return err
	}

	c.Attachment(h.files.FileName())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

// Latest GET /api/v1/tickets/latest.
func (h *ExportHandler) Latest(c *fiber.Ctx) error {
	rec, err := h.files.Latest()
	if errors.Is(err, export.ErrNoExport) {
		rec, err = h.mirror.Load(c.UserContext())
	}
	if errors.Is(err, export.ErrNoExport) {
		return apperrors.NewNotFound("export", nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": exportRecordResponse(rec)})
}

func (h *ExportHandler) fromMirror(c *fiber.Ctx) ([]byte, error) {
	rec, err := h.mirror.Load(c.UserContext())
	if errors.Is(err, export.ErrNoExport) {
		return nil, apperrors.NewNotFound("export", nil)
	}
	if err != nil {
		h.logger.Warn("load mirrored export", zap.Error(err))
		return nil, apperrors.NewNotFound("export", nil)
	}
	var buf bytes.Buffer
	if err := export.EncodeCSV(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRecordResponse(rec domain.ExportRecord) dto.ExportRecordResponse {
	return dto.ExportRecordResponse{
		Date:              rec.Date,
		Source:            rec.Source,
		Review:            rec.Review,
		Sentiment:         rec.Sentiment,
		Score:             rec.Score,
		Summary:           rec.Summary,
		SuggestedResponse: rec.SuggestedResponse,
	}
}
