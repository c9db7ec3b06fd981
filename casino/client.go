package casino

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client talks to the sibling casino bot's session API. Calls are direct
// with no retry; errors propagate to the command handler.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// SessionStats describes a user's live casino session
type SessionStats struct {
	UserID        int64     `json:"user_id"`
	Game          string    `json:"game"`
	StartedAt     time.Time `json:"started_at"`
	HandsPlayed   int       `json:"hands_played"`
	AmountWagered int64     `json:"amount_wagered"`
	NetResult     int64     `json:"net_result"`
	Active        bool      `json:"active"`
}

// CleanupResult summarizes an emergency cleanup run
type CleanupResult struct {
	SessionsStopped  int `json:"sessions_stopped"`
	SessionsReleased int `json:"sessions_released"`
}

// Overview aggregates the casino bot's live session figures
type Overview struct {
	ActiveSessions int   `json:"active_sessions"`
	TotalWagered   int64 `json:"total_wagered"`
	NetHouseResult int64 `json:"net_house_result"`
}

// NewClient creates a new casino API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StopSession asks the casino bot to stop a user's active game session
func (c *Client) StopSession(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/sessions/%d/stop", userID), nil, nil)
}

// ReleaseSession releases a stuck session lock for a user
func (c *Client) ReleaseSession(ctx context.Context, userID int64) error {
	return c.post(ctx, fmt.Sprintf("/sessions/%d/release", userID), nil, nil)
}

// SessionStats fetches the casino bot's view of a user's session
func (c *Client) SessionStats(ctx context.Context, userID int64) (*SessionStats, error) {
	var stats SessionStats
	if err := c.get(ctx, fmt.Sprintf("/sessions/%d/stats", userID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Overview fetches aggregate live session figures from the casino bot
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := c.get(ctx, "/sessions/overview", &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// EmergencyCleanup stops and releases every session the casino bot holds
func (c *Client) EmergencyCleanup(ctx context.Context) (*CleanupResult, error) {
	var result CleanupResult
	if err := c.post(ctx, "/sessions/emergency-cleanup", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("casino API request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrSessionNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("casino API returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("casino API returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
