// Package store keeps user accounts in memory with unique email and username indexes.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/festy23/tournament_platform/internal/user/model"
	"github.com/festy23/tournament_platform/pkg/idgen"
)

// Store defines the credential store operations.
type Store interface {
	// CreateUser hashes the password and stores a new user.
	CreateUser(ctx context.Context, input model.NewUser) (model.User, error)
	// GetByID returns the user with the given id.
	GetByID(id string) (model.User, bool)
	// GetByEmail returns the user registered with the given email.
	GetByEmail(email string) (model.User, bool)
	// GetByUsername returns the user registered with the given username.
	GetByUsername(username string) (model.User, bool)
	// VerifyPassword reports whether raw matches the user's stored hash.
	VerifyPassword(user model.User, raw string) bool
	// Count returns the number of stored users.
	Count() int
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator overrides the id generator.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *MemoryStore) { s.ids = g }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// MemoryStore is an in-memory Store. The zero value is not usable; use New.
type MemoryStore struct {
	mu            sync.RWMutex
	byID          map[string]model.User
	emailIndex    map[string]string
	usernameIndex map[string]string

	cost   int
	ids    idgen.Generator
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates an empty store hashing passwords with the given bcrypt cost.
func New(cost int, logger *zap.SugaredLogger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:          make(map[string]model.User),
		emailIndex:    make(map[string]string),
		usernameIndex: make(map[string]string),
		cost:          cost,
		ids:           idgen.NewUUID(),
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser stores a new user. Hashing runs outside the lock and is abandoned
// when ctx is done, in which case nothing is stored.
func (s *MemoryStore) CreateUser(ctx context.Context, input model.NewUser) (model.User, error) {
	s.mu.RLock()
	err := s.checkDuplicates(input.Email, input.Username)
	s.mu.RUnlock()
	if err != nil {
		return model.User{}, err
	}

	hash, err := s.hash(ctx, input.RawPassword)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another signup may have claimed the email or username while hashing.
	if err := s.checkDuplicates(input.Email, input.Username); err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:           s.ids.NewID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	s.byID[user.ID] = user
	s.emailIndex[user.Email] = user.ID
	s.usernameIndex[user.Username] = user.ID

	s.logger.Debugw("user stored", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *MemoryStore) checkDuplicates(email, username string) error {
	if _, ok := s.emailIndex[email]; ok {
		return model.ErrDuplicateEmail
	}
	if _, ok := s.usernameIndex[username]; ok {
		return model.ErrDuplicateUsername
	}
	return nil
}

type hashResult struct {
	hash []byte
	err  error
}

func (s *MemoryStore) hash(ctx context.Context, raw string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan hashResult, 1)
	go func() {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), s.cost)
		done <- hashResult{hash: h, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if errors.Is(res.err, bcrypt.ErrPasswordTooLong) {
			return "", model.ErrPasswordTooLong
		}
		if res.err != nil {
			return "", fmt.Errorf("failed to hash password: %w", res.err)
		}
		return string(res.hash), nil
	}
}

// GetByID returns the user with the given id.
func (s *MemoryStore) GetByID(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	return u, ok
}

// GetByEmail returns the user registered with the given email.
func (s *MemoryStore) GetByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return model.User{}, false
	}
	u, ok := s.byID[id]
	return u, ok
}

// GetByUsername returns the user registered with the given username.
func (s *MemoryStore) GetByUsername(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return model.User{}, false
	}
	u, ok := s.byID[id]
	return u, ok
}

// VerifyPassword reports whether raw matches the user's stored hash.
func (s *MemoryStore) VerifyPassword(user model.User, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(raw)) == nil
}

// Count returns the number of stored users.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ToPublicView strips the password hash from a user.
func ToPublicView(user model.User) model.PublicUser {
	return user.Public()
}

var _ Store = (*MemoryStore)(nil)
