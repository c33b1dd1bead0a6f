// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/statistics/handler"
	"github.com/festy23/tournament_platform/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, tournaments service.TournamentSource, users service.UserCounter, logger *zap.SugaredLogger) {
	svc := service.New(tournaments, users, logger)
	h := handler.New(svc, logger)

	r.GET("/api/statistics", h.GetOverview)
	r.GET("/api/statistics/tournaments", h.GetTournamentStatistics)
}
