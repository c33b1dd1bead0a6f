// Package handler provides HTTP handlers for tournament and match endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/tournament/model"
	"github.com/festy23/tournament_platform/internal/tournament/service"
)

// Handler handles HTTP requests for tournament and match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new tournament handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if domainErrorResponse(c, err) {
		return
	}
	h.logger.Errorw(op+" failed", "path", c.FullPath(), "error", err)
	errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}

// actingUser resolves the user a mutation acts for. Bot requests may name any
// user; a bearer-authenticated request acts as its token's user and may not
// name someone else.
func actingUser(c *gin.Context, requested string) (string, bool) {
	if auth.IsBot(c) {
		return requested, true
	}
	userID, ok := auth.UserID(c)
	if !ok {
		return requested, true
	}
	if requested != "" && requested != userID {
		errorResponse(c, "FORBIDDEN", "cannot act on behalf of another user", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

// ListTournaments handles GET /api/tournaments request.
// The optional guildId query parameter limits results to one guild.
func (h *Handler) ListTournaments(c *gin.Context) {
	resp, err := h.service.ListTournaments(c.Request.Context(), c.Query("guildId"))
	if err != nil {
		h.fail(c, "ListTournaments", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTournament handles POST /api/tournaments request.
// A user-authenticated request is organized by that user.
func (h *Handler) CreateTournament(c *gin.Context) {
	var req model.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}
	organizerID, ok := actingUser(c, req.OrganizerID)
	if !ok {
		return
	}
	req.OrganizerID = organizerID

	resp, err := h.service.CreateTournament(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "CreateTournament", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetTournament handles GET /api/tournaments/:id request.
func (h *Handler) GetTournament(c *gin.Context) {
	resp, err := h.service.GetTournament(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "GetTournament", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// JoinTournament handles POST /api/tournaments/:id/join request.
func (h *Handler) JoinTournament(c *gin.Context) {
	var req model.JoinTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}
	userID, ok := actingUser(c, req.UserID)
	if !ok {
		return
	}
	req.UserID = userID

	resp, err := h.service.JoinTournament(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, "JoinTournament", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateMatch handles POST /api/tournaments/:id/matches request.
func (h *Handler) CreateMatch(c *gin.Context) {
	var req model.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateMatch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, "CreateMatch", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetMatch handles GET /api/matches/:id request.
func (h *Handler) GetMatch(c *gin.Context) {
	resp, err := h.service.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "GetMatch", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportWinner handles POST /api/matches/:id/winner request.
func (h *Handler) ReportWinner(c *gin.Context) {
	var req model.ReportWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ReportWinner(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, "ReportWinner", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMatchStatus handles PATCH /api/matches/:id/status request.
func (h *Handler) UpdateMatchStatus(c *gin.Context) {
	var req model.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateMatchStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, "UpdateMatchStatus", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
