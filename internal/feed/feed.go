package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const channelPrefix = "notify:"

// Publisher pushes newly created notifications to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}

// Entry is the wire format delivered to feed subscribers.
type Entry struct {
	ID        string                  `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	TicketID  *string                 `json:"ticket_id,omitempty"`
	CreatedAt string                  `json:"created_at"`
}

// Feed is a Redis pub/sub backed notification feed. Each recipient has a
// dedicated channel; the stream handler holds a standing subscription that
// receives pushes whenever a matching notification is created.
type Feed struct {
	client *redis.Client
	logger *zap.Logger
}

// NewFeed builds the feed around an existing Redis client.
func NewFeed(client *redis.Client, logger *zap.Logger) *Feed {
	return &Feed{client: client, logger: logger}
}

// Publish sends the notification to the recipient's channel. Best-effort: a
// missing Redis connection is logged and ignored.
func (f *Feed) Publish(ctx context.Context, notification domain.Notification) error {
	if f == nil || f.client == nil {
		return nil
	}
	entry := Entry{
		ID:        notification.ID,
		Kind:      notification.Kind,
		Title:     notification.Title,
		Message:   notification.Message,
		TicketID:  notification.TicketID,
		CreatedAt: notification.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, channelPrefix+notification.RecipientID, payload).Err(); err != nil {
		f.logger.Warn("feed publish failed",
			zap.String("recipient_id", notification.RecipientID),
			zap.Error(err))
		return err
	}
	return nil
}

// Subscribe opens a standing subscription for one recipient. The caller owns
// the returned PubSub and must close it.
func (f *Feed) Subscribe(ctx context.Context, recipientID string) *redis.PubSub {
	if f == nil || f.client == nil {
		return nil
	}
	return f.client.Subscribe(ctx, channelPrefix+recipientID)
}
