// Package app wires the tournament platform HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/config"
	"github.com/festy23/tournament_platform/internal/health"
	"github.com/festy23/tournament_platform/internal/middleware"
	"github.com/festy23/tournament_platform/internal/notify"
	statisticsRouter "github.com/festy23/tournament_platform/internal/statistics/router"
	"github.com/festy23/tournament_platform/internal/tournament/registry"
	tournamentRouter "github.com/festy23/tournament_platform/internal/tournament/router"
	"github.com/festy23/tournament_platform/internal/user/router"
	"github.com/festy23/tournament_platform/internal/user/store"
	"github.com/festy23/tournament_platform/internal/ws"
)

// Server owns the in-memory state and the HTTP router.
type Server struct {
	cfg      config.Config
	logger   *zap.SugaredLogger
	Users    *store.MemoryStore
	Registry *registry.Registry
	Hub      *ws.Hub
	Engine   *gin.Engine
}

// NewServer builds the stores, the broadcast hub and the router.
func NewServer(cfg config.Config, logger *zap.SugaredLogger) (*Server, error) {
	issuer, err := auth.NewIssuer(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("create token issuer: %w", err)
	}

	hub := ws.NewHub(cfg.Hub, logger.Named("ws"))
	users := store.New(cfg.Auth.BcryptCost, logger.Named("users"))
	reg := registry.New(logger.Named("registry"),
		registry.WithHook(notify.NewMulti(logger, hub, notify.NewLogger(logger.Named("events")))),
	)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger, "/health"))
	engine.Use(middleware.Recovery(logger))
	engine.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	engine.GET("/health", health.New(reg, users, hub, logger).Check)
	router.RegisterRoutes(engine, users, issuer, cfg.Auth.HashTimeout, logger)
	tournamentRouter.RegisterRoutes(engine, reg, auth.RequireUserOrBot(issuer, cfg.Auth.BotAPIKey), logger)
	statisticsRouter.RegisterRoutes(engine, reg, users, logger)
	ws.RegisterRoutes(engine, hub)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		Users:    users,
		Registry: reg,
		Hub:      hub,
		Engine:   engine,
	}, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", auth.BotKeyHeader, middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Run serves HTTP and the broadcast hub until ctx is cancelled, then shuts
// both down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.GetAddress(),
		Handler:      s.Engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Hub.Run(gctx)
	})

	g.Go(func() error {
		s.logger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Infow("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
