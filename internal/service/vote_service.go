package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// VoteService handles vote toggles on tickets.
type VoteService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewVoteService constructs the service.
func NewVoteService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *VoteService {
	return &VoteService{tickets: tickets, dispatcher: dispatcher}
}

// VoteResult is returned to the caller for immediate display.
type VoteResult struct {
	State     domain.VoteState
	Upvotes   int
	Downvotes int
}

// Toggle applies the voter's requested kind against their current vote:
// repeating the current kind removes the vote, the opposite kind switches it,
// and a clean state creates it. The vote row and the ticket counters move in
// one transaction, so concurrent voters cannot lose increments.
func (s *VoteService) Toggle(ctx context.Context, voterID, ticketID string, kind domain.VoteKind) (*VoteResult, error) {
	if !domain.ValidVoteKind(kind) {
		return nil, apperrors.NewValidationError("invalid vote kind", map[string]any{"kind": string(kind)})
	}

	result, err := s.tickets.ToggleVote(ctx, ticketID, voterID, kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventVoteChanged,
		TicketID: ticketID,
		ActorID:  voterID,
		Payload: events.VoteChangedPayload{
			VoterID:   voterID,
			State:     result.State,
			Upvotes:   result.Upvotes,
			Downvotes: result.Downvotes,
		},
	})

	return &VoteResult{
		State:     result.State,
		Upvotes:   result.Upvotes,
		Downvotes: result.Downvotes,
	}, nil
}
