package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Message is the payload accepted by the outbound email boundary.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    string `json:"html"`
}

// Sender dispatches a single email. Implementations are best-effort: callers
// log failures and never let them affect the primary operation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client posts messages to an HTTP mail provider endpoint. When the transport
// is disabled or credentials are missing, Send reports success without
// sending, matching local/non-production behavior.
type Client struct {
	cfg    config.MailConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds the HTTP mail client.
func NewClient(cfg config.MailConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Send delivers one message through the provider endpoint.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.cfg.Enabled || strings.TrimSpace(c.cfg.Endpoint) == "" || strings.TrimSpace(c.cfg.APIKey) == "" {
		c.logger.Debug("mail transport disabled; would send",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	c.logger.Debug("mail sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
