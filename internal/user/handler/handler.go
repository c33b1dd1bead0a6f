// Package handler provides HTTP handlers for account endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/auth"
	"github.com/festy23/tournament_platform/internal/user/model"
	"github.com/festy23/tournament_platform/internal/user/service"
)

// Handler handles HTTP requests for account endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Signup handles POST /auth/signup request.
func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "email, password and username are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateEmail):
			errorResponse(c, "EMAIL_EXISTS", "email already registered", http.StatusConflict)
		case errors.Is(err, model.ErrDuplicateUsername):
			errorResponse(c, "USERNAME_EXISTS", "username already taken", http.StatusConflict)
		case errors.Is(err, model.ErrInvalidUsername),
			errors.Is(err, model.ErrInvalidEmail),
			errors.Is(err, model.ErrInvalidPassword),
			errors.Is(err, model.ErrUsernameLength),
			errors.Is(err, model.ErrPasswordTooLong):
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		default:
			h.logger.Errorw("signup failed", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login request.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "email and password are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			errorResponse(c, "INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Errorw("login failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me handles GET /auth/me request. Requires auth.RequireUser upstream.
func (h *Handler) Me(c *gin.Context) {
	userID, _ := auth.UserID(c)

	resp, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			notFoundResponse(c, "user not found")
			return
		}
		h.logger.Errorw("me failed", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
