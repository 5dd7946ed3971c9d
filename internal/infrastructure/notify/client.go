// Package notify is a best-effort alert channel. Nothing in the business
// flow depends on it: failures are returned for logging and then dropped.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/config"
)

type Client struct {
	channelURL string
	httpClient *http.Client
}

// NewClient builds a sink posting to a notify.events-style channel. With an
// empty source token the client is a no-op, so callers never need to guard.
func NewClient(cfg config.NotifyConfig) *Client {
	channelURL := ""
	if cfg.SourceToken != "" {
		channelURL = fmt.Sprintf("%s/v1/channel/source/%s/execute", cfg.BaseURL, cfg.SourceToken)
	}
	return &Client{
		channelURL: channelURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ application.NotificationSink = (*Client)(nil)

func (c *Client) Send(ctx context.Context, title, message string) error {
	if c.channelURL == "" {
		return nil
	}

	form := url.Values{
		"title":    {title},
		"text":     {message},
		"priority": {"normal"},
		"level":    {"info"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.channelURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error creating notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification channel returned status %d", resp.StatusCode)
	}

	return nil
}
