// Package apiclient is the bot's HTTP client for the tournament API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/tournament/model"
	"github.com/festy23/tournament_platform/pkg/retry"
)

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when the API answers 409.
	ErrConflict = errors.New("conflict")
	// ErrBadRequest is returned when the API answers 400.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned when the API rejects the bot key.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %s", strings.ToLower(http.StatusText(e.Status)), e.Message)
	}
	return "api: " + strings.ToLower(http.StatusText(e.Status))
}

// Is matches the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the tournament API on behalf of the bot.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      retry.Config
	logger     *zap.SugaredLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// New creates an API client.
func New(baseURL, apiKey string, timeout time.Duration, logger *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry.HTTPClientConfig(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTournament creates a tournament.
func (c *Client) CreateTournament(ctx context.Context, req model.CreateTournamentRequest) (model.Tournament, error) {
	var t model.Tournament
	err := c.do(ctx, http.MethodPost, "/api/tournaments", req, &t)
	return t, err
}

// ListTournaments lists tournaments, limited to guildID when it is set.
func (c *Client) ListTournaments(ctx context.Context, guildID string) ([]model.Tournament, error) {
	path := "/api/tournaments"
	if guildID != "" {
		path += "?guildId=" + url.QueryEscape(guildID)
	}
	var resp model.ListTournamentsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tournaments, nil
}

// GetTournament fetches one tournament.
func (c *Client) GetTournament(ctx context.Context, id string) (model.Tournament, error) {
	var t model.Tournament
	err := c.do(ctx, http.MethodGet, "/api/tournaments/"+url.PathEscape(id), nil, &t)
	return t, err
}

// JoinTournament registers a participant.
func (c *Client) JoinTournament(ctx context.Context, id string, req model.JoinTournamentRequest) (model.Tournament, error) {
	var resp model.JoinTournamentResponse
	if err := c.do(ctx, http.MethodPost, "/api/tournaments/"+url.PathEscape(id)+"/join", req, &resp); err != nil {
		return model.Tournament{}, err
	}
	return resp.Tournament, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	attempt := 0
	err := retry.Do(ctx, c.retry, func() error {
		attempt++
		err := c.send(ctx, method, path, payload, out)
		if err != nil {
			c.logger.Debugw("api call failed", "method", method, "path", path, "attempt", attempt, "error", err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return retry.Permanent(fmt.Errorf("build request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(auth.BotKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Permanent(ctx.Err())
		}
		// A POST may have been applied before the connection failed.
		// Only a refused dial proves the server never saw it.
		if method != http.MethodGet && !strings.Contains(err.Error(), "connection refused") {
			return retry.Permanent(err)
		}
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(data, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		if resp.StatusCode < 500 {
			return retry.Permanent(apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return retry.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
