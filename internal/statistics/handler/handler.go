// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetOverview handles GET /api/statistics request.
func (h *Handler) GetOverview(c *gin.Context) {
	resp, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting statistics overview", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTournamentStatistics handles GET /api/statistics/tournaments request.
func (h *Handler) GetTournamentStatistics(c *gin.Context) {
	resp, err := h.service.GetTournamentStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting tournament statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
