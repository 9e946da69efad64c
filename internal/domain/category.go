package domain

import "time"

// Category is a ticket classification with a denormalized ticket counter.
type Category struct {
	ID          string
	Name        string
	Description string
	TicketCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
