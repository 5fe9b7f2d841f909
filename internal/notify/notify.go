// Package notify delivers order confirmations through an external
// transactional-email HTTP endpoint. Delivery is best effort: callers log
// failures and move on, they never roll back a persisted order over a lost
// email.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Notifier interface {
	Send(ctx context.Context, templateID string, variables map[string]string) error
}

type Client struct {
	endpoint  string
	serviceID string
	userID    string
	http      *http.Client
}

func NewClient(endpoint, serviceID, userID string) *Client {
	return &Client{
		endpoint:  endpoint,
		serviceID: serviceID,
		userID:    userID,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an endpoint is configured at all. An unconfigured
// client skips delivery silently so local setups work without email.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

func (c *Client) Send(ctx context.Context, templateID string, variables map[string]string) error {
	if !c.Enabled() {
		return nil
	}

	payload := map[string]interface{}{
		"service_id":      c.serviceID,
		"template_id":     templateID,
		"user_id":         c.userID,
		"template_params": variables,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
