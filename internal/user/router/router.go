// Package router provides account routes registration.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/user/handler"
	"github.com/festy23/tournament_platform/internal/user/service"
	"github.com/festy23/tournament_platform/internal/user/store"
)

// RegisterRoutes registers account routes under /auth.
func RegisterRoutes(r gin.IRouter, st store.Store, issuer *auth.Issuer, hashTimeout time.Duration, logger *zap.SugaredLogger) {
	svc := service.New(st, issuer, hashTimeout, logger)
	h := handler.New(svc, logger)

	g := r.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/me", auth.RequireUser(issuer), h.Me)
}
