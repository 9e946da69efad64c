package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func seedTicket(t *testing.T, repo *fakeTicketRepo) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		ExternalKey: "HDT-TEST0001",
		CreatorID:   "creator-1",
		CreatorName: "Dana",
		CategoryID:  "category-1",
		Title:       "Printer offline",
		Description: "The third floor printer stopped responding.",
		Status:      domain.TicketStatusOpen,
	}
	require.NoError(t, repo.Create(context.Background(), ticket))
	return ticket
}

func TestVoteToggleCreatesAndRemoves(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewVoteService(repo, dispatcher)
	ticket := seedTicket(t, repo)

	result, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindUp)
	require.NoError(t, err)
	require.Equal(t, domain.VoteStateUp, result.State)
	require.Equal(t, 1, result.Upvotes)
	require.Equal(t, 0, result.Downvotes)

	// same kind again removes the vote
	result, err = svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindUp)
	require.NoError(t, err)
	require.Equal(t, domain.VoteStateNone, result.State)
	require.Equal(t, 0, result.Upvotes)

	published := dispatcher.published()
	require.Len(t, published, 2)
	require.Equal(t, events.EventVoteChanged, published[0].Type)
}

func TestVoteToggleSwitchesDirection(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewVoteService(repo, &recordingDispatcher{})
	ticket := seedTicket(t, repo)

	_, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindDown)
	require.NoError(t, err)

	result, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindUp)
	require.NoError(t, err)
	require.Equal(t, domain.VoteStateUp, result.State)
	require.Equal(t, 1, result.Upvotes)
	require.Equal(t, 0, result.Downvotes)
}

func TestVoteToggleConcurrentVotersAllCounted(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewVoteService(repo, &recordingDispatcher{})
	ticket := seedTicket(t, repo)

	const voters = 32
	var wg sync.WaitGroup
	wg.Add(voters)
	for i := 0; i < voters; i++ {
		go func(n int) {
			defer wg.Done()
			voterID := string(rune('a'+n%26)) + string(rune('A'+n/26))
			_, err := svc.Toggle(context.Background(), voterID, ticket.ID, domain.VoteKindUp)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Equal(t, voters, stored.Upvotes)
}

func TestVoteToggleRejectsUnknownKind(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewVoteService(repo, &recordingDispatcher{})
	ticket := seedTicket(t, repo)

	_, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKind("SIDEWAYS"))
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestVoteToggleMissingTicket(t *testing.T) {
	svc := NewVoteService(newFakeTicketRepo(), &recordingDispatcher{})

	_, err := svc.Toggle(context.Background(), "voter-1", "missing", domain.VoteKindUp)
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestVoteCountsNeverNegative(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewVoteService(repo, &recordingDispatcher{})
	ticket := seedTicket(t, repo)

	// toggle on and off repeatedly; counters must settle at zero, not below
	for i := 0; i < 5; i++ {
		_, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindDown)
		require.NoError(t, err)
		result, err := svc.Toggle(context.Background(), "voter-1", ticket.ID, domain.VoteKindDown)
		require.NoError(t, err)
		require.Equal(t, 0, result.Downvotes)
		require.Equal(t, 0, result.Upvotes)
	}
}
