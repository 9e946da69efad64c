package mail

import "fmt"

// TicketCreated formats the email sent to the support inbox when a ticket is
// opened.
func TicketCreated(to, creatorName, title, externalKey string) Message {
	body := fmt.Sprintf("%s opened ticket %s: %s", creatorName, externalKey, title)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("[%s] New ticket: %s", externalKey, title),
		Body:    body,
		HTML:    fmt.Sprintf("<p>%s</p>", body),
	}
}

// StatusChanged formats the email sent to the ticket creator on a status
// transition.
func StatusChanged(to, title, externalKey, oldStatus, newStatus string) Message {
	body := fmt.Sprintf("Your ticket %q moved from %s to %s.", title, oldStatus, newStatus)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("[%s] Status update: %s", externalKey, newStatus),
		Body:    body,
		HTML:    fmt.Sprintf("<p>%s</p>", body),
	}
}

// TicketAssigned formats the email sent to the ticket creator on assignment.
func TicketAssigned(to, title, externalKey, assigneeName string) Message {
	body := fmt.Sprintf("%s is now working on your ticket %q.", assigneeName, title)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("[%s] Ticket assigned", externalKey),
		Body:    body,
		HTML:    fmt.Sprintf("<p>%s</p>", body),
	}
}

// ReplyAdded formats the email sent to the ticket creator when an agent
// replies.
func ReplyAdded(to, title, externalKey, authorName, preview string) Message {
	body := fmt.Sprintf("%s replied to your ticket %q: %s", authorName, title, preview)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("[%s] New reply", externalKey),
		Body:    body,
		HTML:    fmt.Sprintf("<p>%s</p>", body),
	}
}
