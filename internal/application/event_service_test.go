package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
)

func newEventService() (*EventService, *stubEventRepo) {
	events := newStubEventRepo()
	return NewEventService(events, nil, nil, nil, "", nil, ""), events
}

func sampleEvent(status entity.EventStatus) *entity.Event {
	now := time.Now()
	return &entity.Event{
		Title:         "Go Conference",
		Description:   "Talks and workshops",
		StartDateTime: now.Add(24 * time.Hour),
		EndDateTime:   now.Add(26 * time.Hour),
		Location:      "Berlin",
		MaxAttendees:  200,
		TicketPrice:   49.99,
		Status:        status,
		CategoryID:    1,
	}
}

func TestEventCreateCoercesStatusToPublished(t *testing.T) {
	svc, _ := newEventService()
	ctx := context.Background()

	for _, status := range []entity.EventStatus{"", entity.EventDraft, entity.EventPending} {
		e, err := svc.Create(ctx, sampleEvent(status), 7)
		require.NoError(t, err)
		require.Equal(t, entity.EventPublished, e.Status, "input status %q", status)
		require.Equal(t, int64(7), e.OrganizerID)
	}
}

func TestEventCreateKeepsExplicitStatus(t *testing.T) {
	svc, _ := newEventService()

	e, err := svc.Create(context.Background(), sampleEvent(entity.EventRejected), 7)
	require.NoError(t, err)
	require.Equal(t, entity.EventRejected, e.Status)
}

func TestEventSubmitForcesPending(t *testing.T) {
	svc, _ := newEventService()

	e, err := svc.Submit(context.Background(), sampleEvent(entity.EventPublished), 3)
	require.NoError(t, err)
	require.Equal(t, entity.EventPending, e.Status)
	require.Equal(t, int64(3), e.OrganizerID)
}

func TestEventModerationTransitions(t *testing.T) {
	svc, events := newEventService()
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, sampleEvent(""), 3)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, entity.EventPublished, approved.Status)

	stored, err := events.GetByID(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, entity.EventPublished, stored.Status)

	rejected, err := svc.Reject(ctx, submitted.ID)
	require.NoError(t, err)
	require.Equal(t, entity.EventRejected, rejected.Status)
}

func TestEventModerationUnknownID(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.Approve(context.Background(), 9999)
	require.ErrorIs(t, err, repo.ErrNotFound)
	_, err = svc.Reject(context.Background(), 9999)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestEventListPublishedFiltersByStatus(t *testing.T) {
	svc, _ := newEventService()
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleEvent(""), 1)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sampleEvent(""), 1)
	require.NoError(t, err)

	published, total, err := svc.ListPublished(ctx, repo.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, published, 1)
	require.Equal(t, entity.EventPublished, published[0].Status)

	pending, total, err := svc.ListPending(ctx, repo.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, entity.EventPending, pending[0].Status)
}

func TestEventSearchFallsBackToSQLWithoutES(t *testing.T) {
	svc, _ := newEventService()
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleEvent(""), 1)
	require.NoError(t, err)

	hits, total, err := svc.Search(ctx, "conference", repo.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, hits, 1)
}

func TestEventUpdate(t *testing.T) {
	svc, _ := newEventService()
	ctx := context.Background()

	e, err := svc.Create(ctx, sampleEvent(""), 1)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, e.ID, UpdateEventInput{
		Title:         "Go Conference 2027",
		Description:   e.Description,
		StartDateTime: e.StartDateTime,
		EndDateTime:   e.EndDateTime,
		Location:      "Munich",
		MaxAttendees:  300,
		TicketPrice:   59.99,
		Status:        e.Status,
		CategoryID:    e.CategoryID,
	})
	require.NoError(t, err)
	require.Equal(t, "Go Conference 2027", updated.Title)
	require.Equal(t, "Munich", updated.Location)
	require.Equal(t, 59.99, updated.TicketPrice)
}

func TestEventDelete(t *testing.T) {
	svc, events := newEventService()
	ctx := context.Background()

	e, err := svc.Create(ctx, sampleEvent(""), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = events.GetByID(ctx, e.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, e.ID), repo.ErrNotFound)
}
