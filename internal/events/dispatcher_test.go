package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventTicketAnalyzed, func(ctx context.Context, e Event) error {
		calls = append(calls, "first:"+e.SubmissionID)
		return nil
	})
	d.Subscribe(EventTicketAnalyzed, func(ctx context.Context, e Event) error {
		calls = append(calls, "second:"+e.SubmissionID)
		return nil
	})
	d.Subscribe(EventTicketFailed, func(ctx context.Context, e Event) error {
		calls = append(calls, "failed")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketAnalyzed, SubmissionID: "s1"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"first:s1", "second:s1"}, calls)
}

func TestDispatcher_HandlerErrorsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("redis down")
	reached := false

	d.Subscribe(EventTicketAnalyzed, func(ctx context.Context, e Event) error { return boom })
	d.Subscribe(EventTicketAnalyzed, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketAnalyzed})

	assert.True(t, reached)
	assert.ErrorIs(t, err, boom)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketFailed}))
}

func TestDispatcher_PanickingHandlerBecomesError(t *testing.T) {
	d := NewInMemoryDispatcher()
	reached := false

	d.Subscribe(EventTicketFailed, func(ctx context.Context, e Event) error { panic("nil mirror") })
	d.Subscribe(EventTicketFailed, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	var err error
	assert.NotPanics(t, func() {
		err = d.Publish(context.Background(), Event{Type: EventTicketFailed})
	})
	assert.True(t, reached)
	assert.ErrorContains(t, err, "panic: nil mirror")
	assert.ErrorContains(t, err, "ticket_failed handler 0")
}
