// Package telegram is a minimal Bot API client with a long-poll loop.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the Telegram Bot API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for token. apiURL is the Bot API root,
// normally https://api.telegram.org.
func NewClient(apiURL, token string, pollTimeout time.Duration) *Client {
	return &Client{
		// Long polls hold the connection for up to pollTimeout.
		httpClient: &http.Client{Timeout: pollTimeout + 10*time.Second},
		baseURL:    fmt.Sprintf("%s/bot%s", strings.TrimRight(apiURL, "/"), token),
	}
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram %s: %d %s", method, apiResp.ErrorCode, apiResp.Description)
	}

	return apiResp.Result, nil
}

// GetUpdates long-polls for updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	result, err := c.call(ctx, "getUpdates", GetUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("unmarshal updates: %w", err)
	}
	return updates, nil
}

// SendMessage posts text to a chat, optionally as a reply.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error {
	_, err := c.call(ctx, "sendMessage", SendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyTo,
	})
	return err
}
