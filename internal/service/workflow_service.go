package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// WorkflowService transitions ticket status and assignment.
type WorkflowService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	cfg        config.WorkflowConfig
}

// NewWorkflowService constructs the service.
func NewWorkflowService(tickets repository.TicketRepository, dispatcher events.Dispatcher, cfg config.WorkflowConfig) *WorkflowService {
	return &WorkflowService{tickets: tickets, dispatcher: dispatcher, cfg: cfg}
}

// AssignToSelf sets the actor as assignee and moves the ticket to
// IN_PROGRESS. Unconditional: an existing assignee is overwritten, last
// writer wins.
func (s *WorkflowService) AssignToSelf(ctx context.Context, actor *domain.Profile, ticketID string) (*domain.Ticket, error) {
	if actor == nil || !actor.Role.Elevated() {
		return nil, apperrors.NewForbidden("support agent or admin required")
	}

	ticket, err := s.tickets.SetAssignee(ctx, ticketID, actor.ID, actor.Name, domain.TicketStatusInProgress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketAssignedPayload{
			ExternalKey:  ticket.ExternalKey,
			CreatorID:    ticket.CreatorID,
			Title:        ticket.Title,
			AssigneeID:   actor.ID,
			AssigneeName: actor.Name,
		},
	})
	return ticket, nil
}

// UpdateStatus sets the ticket status. By default any status is reachable
// from any other; WorkflowConfig.StrictTransitions restricts changes to the
// transition graph below.
func (s *WorkflowService) UpdateStatus(ctx context.Context, actor *domain.Profile, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if actor == nil || !actor.Role.Elevated() {
		return nil, apperrors.NewForbidden("support agent or admin required")
	}
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(newStatus)})
	}

	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if s.cfg.StrictTransitions && !isValidTransition(current.Status, newStatus) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": string(current.Status),
			"to":   string(newStatus),
		})
	}

	oldStatus := current.Status
	ticket, err := s.tickets.SetStatus(ctx, ticketID, newStatus)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketStatusChangedPayload{
			ExternalKey: ticket.ExternalKey,
			CreatorID:   ticket.CreatorID,
			Title:       ticket.Title,
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
		},
	})
	return ticket, nil
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusOpen, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
