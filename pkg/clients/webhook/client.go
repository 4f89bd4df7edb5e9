package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/config"
)

// Event names posted to the configured webhook.
const (
	EventImportCompleted = "import.completed"
	EventSummaryRecorded = "summary.recorded"
)

// Notifier delivers operational events to an external endpoint, e.g. a chat
// bridge the school staff watches.
type Notifier interface {
	Notify(ctx context.Context, event string, payload any) error
}

// Client is a resty-backed Notifier posting JSON events to a single URL.
type Client struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewClient builds a webhook notifier from configuration. A nil client is
// returned when no URL is configured; callers treat that as notifications
// disabled.
func NewClient(cfg config.NotifierConfig, logger *zap.Logger) *Client {
	if cfg.WebhookURL == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
		logger:     logger,
	}
}

// Notify posts one event envelope. Delivery failures are returned to the
// caller but are never fatal to the operation that triggered them.
func (c *Client) Notify(ctx context.Context, event string, payload any) error {
	body := map[string]any{
		"event":       event,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
		"payload":     payload,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook event %s: %w", event, err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook event %s rejected with status %d", event, resp.StatusCode())
	}

	c.logger.Debug("webhook event delivered", zap.String("event", event))
	return nil
}
