package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventReplyAdded          EventType = "reply_added"
	EventVoteChanged         EventType = "vote_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ExternalKey string `json:"external_key"`
	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	ExternalKey string              `json:"external_key"`
	CreatorID   string              `json:"creator_id"`
	Title       string              `json:"title"`
	OldStatus   domain.TicketStatus `json:"old_status"`
	NewStatus   domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	ExternalKey  string `json:"external_key"`
	CreatorID    string `json:"creator_id"`
	Title        string `json:"title"`
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
}

// ReplyAddedPayload payload.
type ReplyAddedPayload struct {
	ExternalKey string `json:"external_key"`
	CreatorID   string `json:"creator_id"`
	Title       string `json:"title"`
	ReplyID     string `json:"reply_id"`
	AuthorName  string `json:"author_name"`
	BodyPreview string `json:"body_preview"`
}

// VoteChangedPayload payload.
type VoteChangedPayload struct {
	VoterID   string           `json:"voter_id"`
	State     domain.VoteState `json:"state"`
	Upvotes   int              `json:"upvotes"`
	Downvotes int              `json:"downvotes"`
}
