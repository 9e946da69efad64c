package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 10
)

// TicketService coordinates ticket creation and queries.
type TicketService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ReplyRepo    repository.ReplyRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	CategoryID  string
	Tags        string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	CreatorID  *string
	CategoryID *string
	AssigneeID *string
	Statuses   []domain.TicketStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// TicketDetail bundles a ticket with its replies and the caller's vote.
type TicketDetail struct {
	Ticket     *domain.Ticket
	Replies    []domain.Reply
	CallerVote domain.VoteState
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		replies:    deps.ReplyRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new ticket. Validation failures abort
// before any persistence; notification fan-out runs through the dispatcher
// after the write succeeds.
func (s *TicketService) Create(ctx context.Context, creator *domain.Profile, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	categoryID := strings.TrimSpace(input.CategoryID)

	fieldErrors := map[string]any{}
	if len(title) < minTitleLen {
		fieldErrors["title"] = "must be at least 5 characters"
	}
	if len(description) < minDescriptionLen {
		fieldErrors["description"] = "must be at least 10 characters"
	}
	if categoryID == "" {
		fieldErrors["category_id"] = "required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket", fieldErrors)
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("invalid ticket", map[string]any{"category_id": "unknown category"})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		CreatorID:   creator.ID,
		CreatorName: creator.Name,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Tags:        parseTags(input.Tags),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	// secondary: denormalized category counter, best-effort
	_ = s.categories.IncrementTicketCount(ctx, categoryID)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  creator.ID,
		Payload: events.TicketCreatedPayload{
			ExternalKey: ticket.ExternalKey,
			CreatorID:   ticket.CreatorID,
			CreatorName: ticket.CreatorName,
			CategoryID:  ticket.CategoryID,
			Title:       ticket.Title,
		},
	})
	return ticket, nil
}

// List returns tickets matching the filter, newest first.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatorID:  filter.CreatorID,
		CategoryID: filter.CategoryID,
		AssigneeID: filter.AssigneeID,
		Statuses:   filter.Statuses,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetDetail returns a ticket with its replies (oldest first) and the caller's
// current vote state.
func (s *TicketService) GetDetail(ctx context.Context, callerID, ticketID string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	replies, err := s.replies.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	vote, err := s.tickets.GetVote(ctx, ticketID, callerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TicketDetail{Ticket: ticket, Replies: replies, CallerVote: vote}, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "HDT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
