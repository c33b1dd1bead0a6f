// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/user/model"
	"github.com/festy23/tournament_platform/internal/user/store"
)

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// Service defines the interface for user business logic operations.
type Service interface {
	// Signup registers a user and returns it with an access token.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)

	// Login checks credentials and returns the user with an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Me returns the public view of the user with the given id.
	Me(ctx context.Context, userID string) (*model.MeResponse, error)
}

type service struct {
	store       store.Store
	tokens      TokenIssuer
	hashTimeout time.Duration
	logger      *zap.SugaredLogger
}

// New creates a new user service instance.
func New(st store.Store, tokens TokenIssuer, hashTimeout time.Duration, logger *zap.SugaredLogger) Service {
	return &service{store: st, tokens: tokens, hashTimeout: hashTimeout, logger: logger}
}

// Signup registers a user and returns it with an access token.
func (s *service) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	s.logger.Debugw("Signup called", "username", req.Username)

	input := model.NewUser{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.TrimSpace(req.Email),
		RawPassword: req.Password,
	}
	switch {
	case input.Username == "":
		return nil, model.ErrInvalidUsername
	case input.Email == "":
		return nil, model.ErrInvalidEmail
	case input.RawPassword == "":
		return nil, model.ErrInvalidPassword
	}
	if n := utf8.RuneCountInString(input.Username); n < model.MinUsernameLen || n > model.MaxUsernameLen {
		return nil, model.ErrUsernameLength
	}
	if len(input.RawPassword) > model.MaxPasswordBytes {
		return nil, model.ErrPasswordTooLong
	}

	hashCtx, cancel := context.WithTimeout(ctx, s.hashTimeout)
	defer cancel()

	user, err := s.store.CreateUser(hashCtx, input)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) || errors.Is(err, model.ErrDuplicateUsername) {
			s.logger.Debugw("Signup rejected", "username", input.Username, "error", err)
		} else {
			s.logger.Errorw("Signup failed", "username", input.Username, "error", err)
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Errorw("Signup token issue failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Infow("Signup completed", "user_id", user.ID, "username", user.Username)
	return &model.AuthResponse{User: store.ToPublicView(user), Token: token}, nil
}

// Login checks credentials and returns the user with an access token.
func (s *service) Login(_ context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	s.logger.Debugw("Login called", "email", email)

	user, ok := s.store.GetByEmail(email)
	if !ok || !s.store.VerifyPassword(user, req.Password) {
		s.logger.Debugw("Login rejected", "email", email)
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Errorw("Login token issue failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Infow("Login completed", "user_id", user.ID)
	return &model.AuthResponse{User: store.ToPublicView(user), Token: token}, nil
}

// Me returns the public view of the user with the given id.
func (s *service) Me(_ context.Context, userID string) (*model.MeResponse, error) {
	if userID == "" {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.store.GetByID(userID)
	if !ok {
		s.logger.Debugw("Me user not found", "user_id", userID)
		return nil, model.ErrUserNotFound
	}
	return &model.MeResponse{User: store.ToPublicView(user)}, nil
}
