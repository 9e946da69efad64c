package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func newTicketServiceFixture(t *testing.T) (*TicketService, *fakeTicketRepo, *fakeCategoryRepo, *recordingDispatcher) {
	t.Helper()
	tickets := newFakeTicketRepo()
	categories := newFakeCategoryRepo()
	require.NoError(t, categories.Create(context.Background(), &domain.Category{ID: "category-1", Name: "Hardware"}))
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:   tickets,
		ReplyRepo:    newFakeReplyRepo(tickets),
		CategoryRepo: categories,
		Dispatcher:   dispatcher,
	})
	return svc, tickets, categories, dispatcher
}

func endUser() *domain.Profile {
	return &domain.Profile{ID: "creator-1", Name: "Dana", Email: "dana@example.com", Role: domain.RoleEndUser}
}

func TestTicketCreateAppliesDefaults(t *testing.T) {
	svc, _, categories, dispatcher := newTicketServiceFixture(t)

	ticket, err := svc.Create(context.Background(), endUser(), TicketCreateInput{
		Title:       "  Printer offline  ",
		Description: "The third floor printer stopped responding.",
		CategoryID:  "category-1",
		Tags:        "printer, hardware, ,urgent",
	})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Equal(t, "Printer offline", ticket.Title)
	require.Equal(t, []string{"printer", "hardware", "urgent"}, ticket.Tags)
	require.Equal(t, 0, ticket.Upvotes)
	require.Equal(t, 0, ticket.ReplyCount)
	require.True(t, strings.HasPrefix(ticket.ExternalKey, "HDT-"))
	require.Len(t, ticket.ExternalKey, 12)

	category, err := categories.GetByID(context.Background(), "category-1")
	require.NoError(t, err)
	require.Equal(t, 1, category.TicketCount)

	published := dispatcher.published()
	require.Len(t, published, 1)
	require.Equal(t, events.EventTicketCreated, published[0].Type)
	payload, ok := published[0].Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	require.Equal(t, "Printer offline", payload.Title)
}

func TestTicketCreateValidation(t *testing.T) {
	svc, _, _, dispatcher := newTicketServiceFixture(t)

	tests := []struct {
		name  string
		input TicketCreateInput
		field string
	}{
		{
			name:  "short title",
			input: TicketCreateInput{Title: "Hey", Description: "long enough description", CategoryID: "category-1"},
			field: "title",
		},
		{
			name:  "short description",
			input: TicketCreateInput{Title: "Printer offline", Description: "short", CategoryID: "category-1"},
			field: "description",
		},
		{
			name:  "missing category",
			input: TicketCreateInput{Title: "Printer offline", Description: "long enough description"},
			field: "category_id",
		},
		{
			name:  "whitespace only title",
			input: TicketCreateInput{Title: "        ", Description: "long enough description", CategoryID: "category-1"},
			field: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), endUser(), tt.input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			require.Contains(t, domainErr.Details, tt.field)
		})
	}

	// nothing persisted, nothing published
	require.Empty(t, dispatcher.published())
}

func TestTicketCreateUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTicketServiceFixture(t)

	_, err := svc.Create(context.Background(), endUser(), TicketCreateInput{
		Title:       "Printer offline",
		Description: "The third floor printer stopped responding.",
		CategoryID:  "category-missing",
	})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Details, "category_id")
}

func TestTicketCreateBoundaryLengths(t *testing.T) {
	svc, _, _, _ := newTicketServiceFixture(t)

	// exactly at the minimums is accepted
	ticket, err := svc.Create(context.Background(), endUser(), TicketCreateInput{
		Title:       "12345",
		Description: "1234567890",
		CategoryID:  "category-1",
	})
	require.NoError(t, err)
	require.Equal(t, "12345", ticket.Title)
}

func TestTicketGetDetail(t *testing.T) {
	svc, tickets, _, _ := newTicketServiceFixture(t)
	ticket := seedTicket(t, tickets)

	detail, err := svc.GetDetail(context.Background(), "caller-1", ticket.ID)
	require.NoError(t, err)
	require.Equal(t, ticket.ID, detail.Ticket.ID)
	require.Equal(t, domain.VoteStateNone, detail.CallerVote)
	require.Empty(t, detail.Replies)

	_, err = svc.GetDetail(context.Background(), "caller-1", "missing")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestTicketListFiltersByStatus(t *testing.T) {
	svc, tickets, _, _ := newTicketServiceFixture(t)
	open := seedTicket(t, tickets)
	closed := seedTicket(t, tickets)
	_, err := tickets.SetStatus(context.Background(), closed.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	result, err := svc.List(context.Background(), TicketListFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusOpen},
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, open.ID, result[0].ID)
}
