package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ValidTicketStatus reports whether s is one of the known statuses.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID           string
	ExternalKey  string
	CreatorID    string
	CreatorName  string
	CategoryID   string
	Title        string
	Description  string
	Status       TicketStatus
	Tags         []string
	Upvotes      int
	Downvotes    int
	ReplyCount   int
	AssigneeID   *string
	AssigneeName *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
