package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/config"
	"github.com/festy23/tournament_platform/internal/notify"
	"github.com/festy23/tournament_platform/internal/tournament/model"
	"github.com/festy23/tournament_platform/internal/tournament/registry"
)

const botKey = "bot-key"

type RouterTestSuite struct {
	suite.Suite
	router   *gin.Engine
	registry *registry.Registry
	issuer   *auth.Issuer
	events   []notify.Event
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewIssuer(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour})
	s.Require().NoError(err)
	s.issuer = issuer

	s.events = nil
	s.registry = registry.New(zap.NewNop().Sugar(), registry.WithHook(notify.Func(func(e notify.Event) {
		s.events = append(s.events, e)
	})))

	s.router = gin.New()
	RegisterRoutes(s.router, s.registry, auth.RequireUserOrBot(issuer, botKey), zap.NewNop().Sugar())
}

func (s *RouterTestSuite) request(method, path string, body any, asBot bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asBot {
		req.Header.Set(auth.BotKeyHeader, botKey)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (s *RouterTestSuite) TestSpringCupScenario() {
	w := s.request(http.MethodPost, "/api/tournaments", map[string]any{
		"name": "Spring Cup", "organizerId": "u1", "guildId": "g1", "status": "upcoming",
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	var tour model.Tournament
	s.decode(w, &tour)
	s.Equal(model.TournamentUpcoming, tour.Status)
	s.Empty(tour.Participants)
	s.Empty(tour.Matches)

	w = s.request(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", map[string]string{"userId": "u2", "username": "Bob"}, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var joined model.JoinTournamentResponse
	s.decode(w, &joined)
	s.Len(joined.Tournament.Participants, 1)

	w = s.request(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", map[string]string{"userId": "u2", "username": "Bob"}, true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPost, "/api/tournaments/"+tour.ID+"/matches", map[string]any{
		"player1Id": "u2", "player2Id": "u3", "round": 1, "status": "scheduled",
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	var match model.Match
	s.decode(w, &match)

	w = s.request(http.MethodGet, "/api/matches/"+match.ID, nil, false)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/tournaments/"+tour.ID, nil, false)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &tour)
	s.Len(tour.Participants, 1)
	s.Require().Len(tour.Matches, 1)
	s.Equal(match.ID, tour.Matches[0].ID)

	w = s.request(http.MethodPost, "/api/matches/"+match.ID+"/winner", map[string]string{"winnerId": "u2"}, true)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &match)
	s.Equal(model.MatchCompleted, match.Status)
	s.NotNil(match.CompletedAt)

	w = s.request(http.MethodPost, "/api/matches/"+match.ID+"/winner", map[string]string{"winnerId": "u2"}, true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodGet, "/api/tournaments", nil, false)
	s.Require().Equal(http.StatusOK, w.Code)
	var list model.ListTournamentsResponse
	s.decode(w, &list)
	s.Len(list.Tournaments, 1)

	s.NotEmpty(s.events)
	s.Equal(notify.KindTournamentCreated, s.events[0].Kind)
}

func (s *RouterTestSuite) TestMutationsRequireAuth() {
	w := s.request(http.MethodPost, "/api/tournaments", map[string]string{"name": "x", "organizerId": "u1"}, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, "/api/tournaments/t1/join", map[string]string{"userId": "u2", "username": "Bob"}, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPatch, "/api/matches/m1/status", map[string]string{"status": "active"}, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	s.Empty(s.events)
	s.Empty(s.registry.ListTournaments())
}

func (s *RouterTestSuite) TestBearerTokenOrganizer() {
	token, err := s.issuer.Issue("u42", "org@example.com")
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(map[string]string{"name": "Token Cup"}))
	req := httptest.NewRequest(http.MethodPost, "/api/tournaments", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusCreated, w.Code)
	var tour model.Tournament
	s.decode(w, &tour)
	s.Equal("u42", tour.OrganizerID)
}

func (s *RouterTestSuite) bearerRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) TestBearerTokenCannotImpersonate() {
	alice, err := s.issuer.Issue("alice", "alice@example.com")
	s.Require().NoError(err)

	w := s.bearerRequest(http.MethodPost, "/api/tournaments", alice, map[string]string{"name": "Cup", "organizerId": "bob"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Contains(w.Body.String(), "FORBIDDEN")
	s.Empty(s.registry.ListTournaments())

	tour := s.registry.CreateTournament(model.NewTournament{Name: "Cup", OrganizerID: "u1"})

	w = s.bearerRequest(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", alice, map[string]string{"userId": "bob", "username": "Bob"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.bearerRequest(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", alice, map[string]string{"userId": "alice", "username": "Alice"})
	s.Require().Equal(http.StatusOK, w.Code)

	got, found := s.registry.GetTournament(tour.ID)
	s.Require().True(found)
	s.Require().Len(got.Participants, 1)
	s.Equal("alice", got.Participants[0].UserID)
}

func (s *RouterTestSuite) TestMatchForUnknownTournament() {
	w := s.request(http.MethodPost, "/api/tournaments/ghost/matches", map[string]any{
		"player1Id": "a", "player2Id": "b", "round": 1,
	}, true)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(0, s.registry.Stats().Matches)
}

func (s *RouterTestSuite) TestMatchStatusLifecycle() {
	tour := s.registry.CreateTournament(model.NewTournament{Name: "Cup", OrganizerID: "u1"})
	m, err := s.registry.CreateMatch(model.NewMatch{TournamentID: tour.ID, Player1ID: "a", Player2ID: "b", Round: 1})
	s.Require().NoError(err)

	w := s.request(http.MethodPatch, "/api/matches/"+m.ID+"/status", map[string]string{"status": "active"}, true)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPatch, "/api/matches/"+m.ID+"/status", map[string]string{"status": "scheduled"}, true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPost, "/api/matches/"+m.ID+"/winner", map[string]string{"winnerId": "zed"}, true)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPatch, "/api/matches/"+m.ID+"/status", map[string]string{"status": "cancelled"}, true)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/matches/"+m.ID+"/winner", map[string]string{"winnerId": "a"}, true)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodGet, "/api/matches/unknown", nil, false)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestTournamentCap() {
	w := s.request(http.MethodPost, "/api/tournaments", map[string]any{
		"name": "Duel", "organizerId": "u1", "maxParticipants": 1,
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	var tour model.Tournament
	s.decode(w, &tour)

	w = s.request(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", map[string]string{"userId": "u2", "username": "Bob"}, true)
	s.Equal(http.StatusOK, w.Code)
	w = s.request(http.MethodPost, "/api/tournaments/"+tour.ID+"/join", map[string]string{"userId": "u3", "username": "Eve"}, true)
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "TOURNAMENT_FULL")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
