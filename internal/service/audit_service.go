package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/review-router/internal/domain"
	"github.com/spec-kit/review-router/internal/events"
)

// LatestStore mirrors the most recent export record outside the local disk.
type LatestStore interface {
	Save(ctx context.Context, rec domain.ExportRecord) error
}

// AuditService logs submission outcomes and mirrors the latest record.
type AuditService struct {
	dispatcher events.Dispatcher
	latest     LatestStore
	logger     *zap.Logger
}

// NewAuditService creates the service. latest may be nil.
func NewAuditService(dispatcher events.Dispatcher, latest LatestStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		latest:     latest,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketAnalyzed, a.handleTicketAnalyzed)
	a.dispatcher.Subscribe(events.EventTicketFailed, a.handleTicketFailed)
}

func (a *AuditService) handleTicketAnalyzed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAnalyzedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	a.logger.Info("TicketAnalyzed",
		zap.String("submission_id", event.SubmissionID),
		zap.String("source", string(payload.Source)),
		zap.String("tier", string(payload.Tier)),
		zap.Int("score", payload.Score),
		zap.String("label", payload.Label),
		zap.String("export_path", payload.ExportPath))

	if a.latest == nil {
		return nil
	}
	if err := a.latest.Save(ctx, payload.Record); err != nil {
		return fmt.Errorf("mirror latest export: %w", err)
	}
	return nil
}

func (a *AuditService) handleTicketFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketFailedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	a.logger.Warn("TicketFailed",
		zap.String("submission_id", event.SubmissionID),
		zap.String("source", string(payload.Source)),
		zap.String("outcome", payload.Outcome),
		zap.Int("status_code", payload.StatusCode),
		zap.String("reason", payload.Reason))
	return nil
}
