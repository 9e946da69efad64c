package domain

import "time"

// Reply is one response attached to a ticket. Only elevated roles author
// replies; rows are immutable once created and ordered by creation time.
type Reply struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
