package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/review-router/internal/domain"
	"github.com/spec-kit/review-router/internal/events"
	"github.com/spec-kit/review-router/internal/observability"
	"github.com/spec-kit/review-router/internal/webhook"
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeAnalyzed         Outcome = "analyzed"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeRemoteError      Outcome = "remote_error"
	OutcomeTransportError   Outcome = "transport_error"
)

// EmptyReviewWarning is returned when no review text was entered.
const EmptyReviewWarning = "⚠️ Error: Please enter a review to analyze."

// Exporter replaces the latest-ticket artifact. Discard drops it when a newer
// ticket could not be written.
type Exporter interface {
	Export(rec domain.ExportRecord) (string, error)
	Discard() error
}

// SubmitInput is what the form collects.
type SubmitInput struct {
	ReviewText     string
	SourcePlatform string
	HasAttachment  bool
}

// Submission is everything a caller displays after submitting. Failures are
// folded into Report and Raw; Submit never returns an error.
type Submission struct {
	ID                string               `json:"id"`
	Outcome           Outcome              `json:"outcome"`
	Report            string               `json:"report"`
	SuggestedResponse string               `json:"suggestedResponse"`
	ExportPath        string               `json:"exportPath,omitempty"`
	Raw               any                  `json:"raw"`
	Tier              domain.Tier          `json:"tier,omitempty"`
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Sender     webhook.Sender
	Exporter   Exporter
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// TicketService forwards reviews to the automation webhook and turns its
// answer into a report and an export record.
type TicketService struct {
	// publishMu orders the export write with the ticket_analyzed event, so
	// the file and the Redis mirror always end on the same ticket.
	publishMu sync.Mutex

	sender     webhook.Sender
	exporter   Exporter
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{
		sender:     deps.Sender,
		exporter:   deps.Exporter,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        clock,
	}
}

// Submit runs one synchronous submission: validate, post, interpret, export.
func (s *TicketService) Submit(ctx context.Context, input SubmitInput) Submission {
	sub := Submission{ID: generateSubmissionID()}
	log := s.logger.With(zap.String("submission_id", sub.ID), zap.String("source", input.SourcePlatform))

	if strings.TrimSpace(input.ReviewText) == "" {
		sub.Outcome = OutcomeValidationFailed
		sub.Report = EmptyReviewWarning
		sub.Raw = errorPayload(EmptyReviewWarning)
		s.metrics.RecordSubmission(string(sub.Outcome), 0)
		log.Info("submission rejected", zap.String("reason", "empty review"))
		return sub
	}

	req := domain.TicketRequest{
		ReviewText:     input.ReviewText,
		SourcePlatform: domain.SourcePlatform(input.SourcePlatform),
		HasAttachment:  input.HasAttachment,
		SubmittedAt:    s.now(),
	}

	start := time.Now()
	raw, err := s.sender.Send(ctx, req)
	latency := time.Since(start)
	if err != nil {
		s.fail(ctx, log, &sub, req, err)
		s.metrics.RecordSubmission(string(sub.Outcome), latency)
		return sub
	}

	result := webhook.ParseResult(raw)
	tier := domain.ClassifyScore(result.SentimentScore)

	sub.Outcome = OutcomeAnalyzed
	sub.Tier = tier
	sub.Report = RenderReport(req, result, tier)
	sub.SuggestedResponse = result.SuggestedResponse
	sub.Raw = raw

	record := domain.NewExportRecord(s.now(), req, result)

	s.metrics.RecordSubmission(string(sub.Outcome), latency)
	s.metrics.RecordTier(string(tier))
	log.Info("ticket analyzed",
		zap.Int("score", result.SentimentScore),
		zap.String("label", result.SentimentLabel),
		zap.String("tier", string(tier)),
		zap.Duration("webhook_latency", latency))

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	sub.ExportPath = s.export(log, record)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketAnalyzed,
		SubmissionID: sub.ID,
		Payload: events.TicketAnalyzedPayload{
			Source:     req.SourcePlatform,
			Tier:       tier,
			Score:      result.SentimentScore,
			Label:      result.SentimentLabel,
			ExportPath: sub.ExportPath,
			Record:     record,
		},
	})
	return sub
}

// export writes the artifact and returns its path, or "" when it could not be
// written. A failed write discards the previous artifact.
func (s *TicketService) export(log *zap.Logger, record domain.ExportRecord) string {
	if s.exporter == nil {
		return ""
	}
	path, err := s.exporter.Export(record)
	if err == nil {
		return path
	}
	log.Warn("export failed", zap.Error(err))
	if err := s.exporter.Discard(); err != nil {
		log.Error("discard stale export", zap.Error(err))
	}
	return ""
}

func (s *TicketService) fail(ctx context.Context, log *zap.Logger, sub *Submission, req domain.TicketRequest, err error) {
	payload := events.TicketFailedPayload{Source: req.SourcePlatform}

	var statusErr *webhook.StatusError
	if errors.As(err, &statusErr) {
		sub.Outcome = OutcomeRemoteError
		sub.Report = fmt.Sprintf("❌ Error %d: %s", statusErr.StatusCode, statusErr.Body)
		payload.StatusCode = statusErr.StatusCode
		log.Warn("webhook rejected ticket", zap.Int("status", statusErr.StatusCode))
	} else {
		sub.Outcome = OutcomeTransportError
		sub.Report = fmt.Sprintf("❌ Connection Failed: %s", err.Error())
		log.Warn("webhook unreachable", zap.Error(err))
	}
	sub.Raw = errorPayload(sub.Report)

	payload.Outcome = string(sub.Outcome)
	payload.Reason = err.Error()
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketFailed,
		SubmissionID: sub.ID,
		Payload:      payload,
	})
}

func errorPayload(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func generateSubmissionID() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
