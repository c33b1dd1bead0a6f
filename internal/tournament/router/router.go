// Package router provides tournament module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/tournament/handler"
	"github.com/festy23/tournament_platform/internal/tournament/service"
)

// RegisterRoutes registers tournament and match routes under /api.
// guard protects every mutating route.
func RegisterRoutes(r gin.IRouter, registry service.Registry, guard gin.HandlerFunc, logger *zap.SugaredLogger) {
	svc := service.New(registry, logger)
	h := handler.New(svc, logger)

	api := r.Group("/api")

	tournaments := api.Group("/tournaments")
	tournaments.GET("", h.ListTournaments)
	tournaments.POST("", guard, h.CreateTournament)
	tournaments.GET("/:id", h.GetTournament)
	tournaments.POST("/:id/join", guard, h.JoinTournament)
	tournaments.POST("/:id/matches", guard, h.CreateMatch)

	matches := api.Group("/matches")
	matches.GET("/:id", h.GetMatch)
	matches.POST("/:id/winner", guard, h.ReportWinner)
	matches.PATCH("/:id/status", guard, h.UpdateMatchStatus)
}
