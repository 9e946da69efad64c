package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateRoleRequestRequest payload.
type CreateRoleRequestRequest struct {
	RequestedRole domain.Role `json:"requested_role"`
	Reason        string      `json:"reason"`
}

// RoleRequestResponse is the public view of a role upgrade request.
type RoleRequestResponse struct {
	ID             string                   `json:"id"`
	RequesterID    string                   `json:"requester_id"`
	RequesterName  string                   `json:"requester_name"`
	RequesterEmail string                   `json:"requester_email"`
	CurrentRole    domain.Role              `json:"current_role"`
	RequestedRole  domain.Role              `json:"requested_role"`
	Reason         string                   `json:"reason"`
	Status         domain.RoleRequestStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
	ResolvedAt     *time.Time               `json:"resolved_at,omitempty"`
}

// CategoryRequest payload for create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TicketCount int       `json:"ticket_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationResponse is one feed entry.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	TicketID  *string                 `json:"ticket_id,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}
