package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Tags        string `json:"tags"`
}

// VoteRequest payload.
type VoteRequest struct {
	Kind domain.VoteKind `json:"kind"`
}

// VoteResponse reports the voter's new state and the ticket counts.
type VoteResponse struct {
	State     domain.VoteState `json:"state"`
	Upvotes   int              `json:"upvotes"`
	Downvotes int              `json:"downvotes"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// CreateReplyRequest payload.
type CreateReplyRequest struct {
	Content string `json:"content"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string              `json:"id"`
	ExternalKey  string              `json:"external_key"`
	CreatorID    string              `json:"creator_id"`
	CreatorName  string              `json:"creator_name"`
	CategoryID   string              `json:"category_id"`
	Title        string              `json:"title"`
	Status       domain.TicketStatus `json:"status"`
	Tags         []string            `json:"tags"`
	Upvotes      int                 `json:"upvotes"`
	Downvotes    int                 `json:"downvotes"`
	ReplyCount   int                 `json:"reply_count"`
	AssigneeID   *string             `json:"assignee_id,omitempty"`
	AssigneeName *string             `json:"assignee_name,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketSummary
	Description string           `json:"description"`
	CallerVote  domain.VoteState `json:"caller_vote"`
	Replies     []ReplyResponse  `json:"replies"`
}

// ReplyResponse represents one thread reply.
type ReplyResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
