// Package line is a minimal client for the LINE Messaging API: profile
// lookup and text push. Both calls are best-effort from the caller's point
// of view and bounded by the client timeout.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.line.me"

	// FallbackName is recorded when a profile cannot be resolved.
	FallbackName = "Unknown"
)

type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func New(token string) *Client {
	return NewWithBaseURL(token, defaultBaseURL)
}

// NewWithBaseURL allows pointing the client at a test server.
func NewWithBaseURL(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Profile resolves a user id to a display name. Any failure (transport,
// timeout, non-200, missing field) yields FallbackName: profile resolution
// must never block record ingestion.
func (c *Client) Profile(ctx context.Context, userID string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/bot/profile/"+userID, nil)
	if err != nil {
		return FallbackName
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return FallbackName
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackName
	}
	var profile struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return FallbackName
	}
	if profile.DisplayName == "" {
		return FallbackName
	}
	return profile.DisplayName
}

// PushText sends a text message to a single user via the push API.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	body := map[string]any{
		"to": to,
		"messages": []map[string]string{
			{"type": "text", "text": text},
		},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/push", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line push api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}
