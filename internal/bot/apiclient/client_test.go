package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/tournament/model"
	"github.com/festy23/tournament_platform/pkg/retry"
)

func fastRetry() retry.Config {
	cfg := retry.HTTPClientConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "bot-key", time.Second, zap.NewNop().Sugar(), WithRetryConfig(fastRetry()))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"code": code, "message": message}})
}

func TestClient_CreateTournament(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tournaments", r.URL.Path)
		assert.Equal(t, "bot-key", r.Header.Get(auth.BotKeyHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CreateTournamentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Spring Cup", req.Name)
		assert.Equal(t, "42", req.OrganizerID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Tournament{ID: "t-1", Name: req.Name, Status: model.TournamentUpcoming})
	})

	tour, err := c.CreateTournament(context.Background(), model.CreateTournamentRequest{Name: "Spring Cup", OrganizerID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "t-1", tour.ID)
	assert.Equal(t, model.TournamentUpcoming, tour.Status)
}

func TestClient_ListTournaments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chat 7", r.URL.Query().Get("guildId"))
		_ = json.NewEncoder(w).Encode(model.ListTournamentsResponse{
			Tournaments: []model.Tournament{{ID: "t-1"}, {ID: "t-2"}},
		})
	})

	list, err := c.ListTournaments(context.Background(), "chat 7")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestClient_JoinTournament(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournaments/t-1/join", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.JoinTournamentResponse{
			Message:    "Successfully joined tournament",
			Tournament: model.Tournament{ID: "t-1", Participants: []model.Participant{{UserID: "42"}}},
		})
	})

	tour, err := c.JoinTournament(context.Background(), "t-1", model.JoinTournamentRequest{UserID: "42", Username: "alice"})
	require.NoError(t, err)
	assert.Len(t, tour.Participants, 1)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"conflict", http.StatusConflict, ErrConflict},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				writeError(w, tt.status, "CODE", "details")
			})

			_, err := c.GetTournament(context.Background(), "t-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int32(1), calls.Load(), "client errors are not retried")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "CODE", apiErr.Code)
			assert.Equal(t, "details", apiErr.Message)
		})
	}
}

func TestClient_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(model.Tournament{ID: "t-1"})
	})

	tour, err := c.GetTournament(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", tour.ID)
	assert.Equal(t, int32(3), calls.Load())
}

type failingTransport struct {
	calls atomic.Int32
	err   error
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, f.err
}

func TestClient_TransportErrorRetryByMethod(t *testing.T) {
	newClient := func(rt *failingTransport) *Client {
		return New("http://api.test", "bot-key", time.Second, zap.NewNop().Sugar(),
			WithRetryConfig(fastRetry()), WithHTTPClient(&http.Client{Transport: rt}))
	}

	t.Run("get is retried", func(t *testing.T) {
		rt := &failingTransport{err: errors.New("connection reset by peer")}
		_, err := newClient(rt).GetTournament(context.Background(), "t-1")
		require.Error(t, err)
		assert.Equal(t, int32(3), rt.calls.Load())
	})

	t.Run("post is sent once", func(t *testing.T) {
		rt := &failingTransport{err: errors.New("connection reset by peer")}
		_, err := newClient(rt).CreateTournament(context.Background(), model.CreateTournamentRequest{Name: "Cup", OrganizerID: "1"})
		require.Error(t, err)
		assert.Equal(t, int32(1), rt.calls.Load())
	})

	t.Run("post retried when dial was refused", func(t *testing.T) {
		rt := &failingTransport{err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}
		_, err := newClient(rt).JoinTournament(context.Background(), "t-1", model.JoinTournamentRequest{UserID: "1", Username: "bob"})
		require.Error(t, err)
		assert.Equal(t, int32(3), rt.calls.Load())
	})
}

func TestClient_DoesNotRetryInternalError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	})

	_, err := c.ListTournaments(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListTournaments(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
