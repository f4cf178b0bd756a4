package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/review-router/internal/config"
	"github.com/spec-kit/review-router/internal/domain"
)

func testTicket() domain.TicketRequest {
	return domain.TicketRequest{
		ReviewText:     "The waiter was rude",
		SourcePlatform: domain.SourceGoogleReviews,
		HasAttachment:  true,
		SubmittedAt:    time.Date(2026, 5, 1, 18, 4, 5, 0, time.Local),
	}
}

func newTestClient(t *testing.T, url string, timeoutSeconds int) *Client {
	return NewClient(config.WebhookConfig{URL: url, TimeoutSeconds: timeoutSeconds}, zaptest.NewLogger(t))
}

func TestEncodeRequest_Shape(t *testing.T) {
	body, err := EncodeRequest(testTicket())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, map[string]any{
		"message": map[string]any{
			"content":        "The waiter was rude",
			"source":         "Google Reviews",
			"has_attachment": true,
		},
		"timestamp": "2026-05-01 18:04:05",
	}, decoded)
}

func TestClient_Send_Success(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sentiment_score": 3, "sentiment_label": "Negative"}`))
	}))
	defer server.Close()

	raw, err := newTestClient(t, server.URL, 5).Send(context.Background(), testTicket())
	require.NoError(t, err)

	obj, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("3"), obj["sentiment_score"])
	assert.Equal(t, "Negative", obj["sentiment_label"])
	assert.Equal(t, "The waiter was rude", got["message"].(map[string]any)["content"])
}

func TestClient_Send_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`webhook "abc" is not registered`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 5).Send(context.Background(), testTicket())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, `webhook "abc" is not registered`, statusErr.Body)
}

func TestClient_Send_CreatedIsNotSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 5).Send(context.Background(), testTicket())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusCreated, statusErr.StatusCode)
}

func TestClient_Send_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url, 5).Send(context.Background(), testTicket())
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClient_Send_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>Workflow was started</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 5).Send(context.Background(), testTicket())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "decode webhook response")
}

func TestClient_Send_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 5).Send(context.Background(), testTicket())

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestClient_Send_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, server.URL, 0).Send(ctx, testTicket())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Send_ClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	start := time.Now()
	_, err := newTestClient(t, server.URL, 1).Send(context.Background(), testTicket())
	elapsed := time.Since(start)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Contains(t, err.Error(), "Client.Timeout exceeded")
	assert.GreaterOrEqual(t, elapsed, time.Second)
	assert.Less(t, elapsed, 2*time.Second)
}
