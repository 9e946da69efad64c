package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ReplyService appends replies to tickets.
type ReplyService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	dispatcher events.Dispatcher
}

// NewReplyService constructs the service.
func NewReplyService(tickets repository.TicketRepository, replies repository.ReplyRepository, dispatcher events.Dispatcher) *ReplyService {
	return &ReplyService{tickets: tickets, replies: replies, dispatcher: dispatcher}
}

// Add appends a reply authored by an elevated actor. The reply insert and the
// ticket's reply counter move in one transaction.
func (s *ReplyService) Add(ctx context.Context, actor *domain.Profile, ticketID, content string) (*domain.Reply, error) {
	if actor == nil || !actor.Role.Elevated() {
		return nil, apperrors.NewForbidden("support agent or admin required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", map[string]any{"content": "required"})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	reply := &domain.Reply{
		TicketID:   ticket.ID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventReplyAdded,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.ReplyAddedPayload{
			ExternalKey: ticket.ExternalKey,
			CreatorID:   ticket.CreatorID,
			Title:       ticket.Title,
			ReplyID:     reply.ID,
			AuthorName:  actor.Name,
			BodyPreview: stringPreview(content, 120),
		},
	})
	return reply, nil
}
