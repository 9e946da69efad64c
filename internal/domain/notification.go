package domain

import "time"

// NotificationKind enumerates feed entry types.
type NotificationKind string

const (
	NotificationTicketCreated NotificationKind = "TICKET_CREATED"
	NotificationTicketUpdated NotificationKind = "TICKET_UPDATED"
	NotificationReplyAdded    NotificationKind = "REPLY_ADDED"
	NotificationStatusChanged NotificationKind = "STATUS_CHANGED"
)

// Notification is one feed entry delivered to one recipient. Rows are mutated
// only to flip the read flag and are never deleted.
type Notification struct {
	ID          string
	RecipientID string
	Kind        NotificationKind
	Title       string
	Message     string
	TicketID    *string
	Read        bool
	CreatedAt   time.Time
}
