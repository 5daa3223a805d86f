package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookChannel POSTs the event as JSON to an arbitrary endpoint.
type WebhookChannel struct {
	URL     string
	Headers map[string]string
	HTTP    *http.Client
}

func (w *WebhookChannel) Name() string { return "webhook" }

func (w *WebhookChannel) Send(ctx context.Context, ev Event) error {
	return postJSON(ctx, w.client(), w.URL, ev, w.Headers)
}

func (w *WebhookChannel) client() *http.Client {
	if w.HTTP != nil {
		return w.HTTP
	}
	return defaultHTTP
}

// DiscordChannel posts to a Discord webhook, which only wants a content
// string.
type DiscordChannel struct {
	WebhookURL string
	HTTP       *http.Client
}

func (d *DiscordChannel) Name() string { return "discord" }

func (d *DiscordChannel) Send(ctx context.Context, ev Event) error {
	client := d.HTTP
	if client == nil {
		client = defaultHTTP
	}
	payload := map[string]string{"content": ev.Text()}
	return postJSON(ctx, client, d.WebhookURL, payload, nil)
}

var defaultHTTP = &http.Client{Timeout: 15 * time.Second}

func postJSON(ctx context.Context, client *http.Client, url string, payload any, headers map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return nil
}
