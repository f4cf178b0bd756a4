package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/review-router/internal/config"
	"github.com/spec-kit/review-router/internal/domain"
)

// maxResponseBytes caps how much of a webhook body is read.
const maxResponseBytes = 4 << 20

// Sender forwards a ticket to the automation webhook.
type Sender interface {
	Send(ctx context.Context, req domain.TicketRequest) (any, error)
}

// Client posts tickets to a single configured endpoint. It never retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client for cfg.URL. A zero cfg timeout leaves only the
// caller's context to bound the call.
func NewClient(cfg config.WebhookConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// Endpoint returns the configured webhook URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts the ticket and returns the decoded JSON body. Failures are
// either *StatusError or *TransportError.
func (c *Client) Send(ctx context.Context, ticket domain.TicketRequest) (any, error) {
	body, err := EncodeRequest(ticket)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("encode webhook request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("webhook request failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read webhook response: %w", err)}
	}

	c.logger.Debug("webhook responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	decoded, err := decodeJSON(raw)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode webhook response: %w", err)}
	}
	return decoded, nil
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return out, nil
}
