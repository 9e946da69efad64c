package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/feed"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// NotificationService materializes domain events into notification records,
// live feed pushes, and best-effort emails. Every failure on this path is
// logged and swallowed: the primary operation already succeeded.
type NotificationService struct {
	notifications repository.NotificationRepository
	profiles      repository.ProfileRepository
	dispatcher    events.Dispatcher
	mailer        mail.Sender
	feed          feed.Publisher
	logger        *zap.Logger
	cfg           config.MailConfig
}

// NotificationDependencies bundles collaborators for the service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	ProfileRepo      repository.ProfileRepository
	Dispatcher       events.Dispatcher
	Mailer           mail.Sender
	Feed             feed.Publisher
	Logger           *zap.Logger
	MailConfig       config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		profiles:      deps.ProfileRepo,
		dispatcher:    deps.Dispatcher,
		mailer:        deps.Mailer,
		feed:          deps.Feed,
		logger:        deps.Logger,
		cfg:           deps.MailConfig,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventReplyAdded, n.handleReplyAdded)
}

// List returns the recipient's feed entries, newest first.
func (n *NotificationService) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, error) {
	result, err := n.notifications.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// CountUnread returns the recipient's unread count.
func (n *NotificationService) CountUnread(ctx context.Context, recipientID string) (int, error) {
	count, err := n.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// MarkRead flips the read flag on one notification owned by the recipient.
func (n *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return apperrors.MapError(n.notifications.MarkRead(ctx, notificationID, recipientID))
}

// MarkAllRead flips the read flag on every unread notification of the recipient.
func (n *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return apperrors.MapError(n.notifications.MarkAllRead(ctx, recipientID))
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID))

	staff, err := n.profiles.ListByRoles(ctx, domain.RoleSupportAgent, domain.RoleAdmin)
	if err != nil {
		n.logger.Warn("notification fan-out: listing staff failed", zap.Error(err))
		staff = nil
	}
	for _, recipient := range staff {
		n.deliver(ctx, domain.Notification{
			RecipientID: recipient.ID,
			Kind:        domain.NotificationTicketCreated,
			Title:       "New ticket",
			Message:     payload.CreatorName + " opened: " + payload.Title,
			TicketID:    &event.TicketID,
		})
	}

	n.send(ctx, mail.TicketCreated(n.cfg.SupportInbox, payload.CreatorName, payload.Title, payload.ExternalKey))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID))

	n.deliver(ctx, domain.Notification{
		RecipientID: payload.CreatorID,
		Kind:        domain.NotificationStatusChanged,
		Title:       "Status changed",
		Message:     payload.Title + " is now " + string(payload.NewStatus),
		TicketID:    &event.TicketID,
	})

	if email, ok := n.recipientEmail(ctx, payload.CreatorID); ok {
		n.send(ctx, mail.StatusChanged(email, payload.Title, payload.ExternalKey,
			string(payload.OldStatus), string(payload.NewStatus)))
	}
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("TicketAssigned", zap.String("ticket_id", event.TicketID))

	n.deliver(ctx, domain.Notification{
		RecipientID: payload.CreatorID,
		Kind:        domain.NotificationTicketUpdated,
		Title:       "Ticket assigned",
		Message:     payload.AssigneeName + " is working on: " + payload.Title,
		TicketID:    &event.TicketID,
	})

	if email, ok := n.recipientEmail(ctx, payload.CreatorID); ok {
		n.send(ctx, mail.TicketAssigned(email, payload.Title, payload.ExternalKey, payload.AssigneeName))
	}
	return nil
}

func (n *NotificationService) handleReplyAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReplyAddedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ReplyAdded", zap.String("ticket_id", event.TicketID))

	n.deliver(ctx, domain.Notification{
		RecipientID: payload.CreatorID,
		Kind:        domain.NotificationReplyAdded,
		Title:       "New reply",
		Message:     payload.AuthorName + " replied to: " + payload.Title,
		TicketID:    &event.TicketID,
	})

	if email, ok := n.recipientEmail(ctx, payload.CreatorID); ok {
		n.send(ctx, mail.ReplyAdded(email, payload.Title, payload.ExternalKey,
			payload.AuthorName, payload.BodyPreview))
	}
	return nil
}

// deliver persists one notification record and pushes it to the live feed.
func (n *NotificationService) deliver(ctx context.Context, notification domain.Notification) {
	if err := n.notifications.Create(ctx, &notification); err != nil {
		n.logger.Warn("notification create failed",
			zap.String("recipient_id", notification.RecipientID),
			zap.Error(err))
		return
	}
	if n.feed != nil {
		if err := n.feed.Publish(ctx, notification); err != nil {
			n.logger.Warn("feed publish failed", zap.Error(err))
		}
	}
}

func (n *NotificationService) send(ctx context.Context, msg mail.Message) {
	if n.mailer == nil || msg.To == "" {
		return
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Warn("email dispatch failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

func (n *NotificationService) recipientEmail(ctx context.Context, profileID string) (string, bool) {
	profile, err := n.profiles.GetByID(ctx, profileID)
	if err != nil {
		n.logger.Warn("recipient lookup failed", zap.String("profile_id", profileID), zap.Error(err))
		return "", false
	}
	return profile.Email, true
}
