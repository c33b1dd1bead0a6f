// Package notify defines the hook the registry calls after every successful mutation.
package notify

import (
	"time"

	"go.uber.org/zap"
)

// Kind tags a notification event.
type Kind string

const (
	// KindTournamentCreated fires after a tournament is created.
	KindTournamentCreated Kind = "tournament_created"
	// KindTournamentUpdated fires after any change to a tournament's participants or matches.
	KindTournamentUpdated Kind = "tournament_updated"
	// KindUserJoined fires after a participant joins a tournament.
	KindUserJoined Kind = "user_joined"
	// KindMatchCreated fires after a match is created.
	KindMatchCreated Kind = "match_created"
	// KindMatchUpdated fires after a non-terminal match status change.
	KindMatchUpdated Kind = "match_updated"
	// KindMatchCompleted fires after a match winner is reported.
	KindMatchCompleted Kind = "match_completed"
)

// Event is a notification about a registry mutation.
// Data holds a snapshot of the resulting entity; it is never shared with the registry.
type Event struct {
	Kind         Kind      `json:"type"`
	TournamentID string    `json:"tournamentId"`
	Data         any       `json:"data"`
	Timestamp    time.Time `json:"timestamp"`
}

// Hook receives registry events. Notify is called synchronously and must not
// mutate the registry; slow work belongs on the hook's own goroutine.
type Hook interface {
	Notify(event Event)
}

// Func adapts an ordinary function to the Hook interface.
type Func func(event Event)

// Notify calls f(event).
func (f Func) Notify(event Event) {
	f(event)
}

// Nop discards every event.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(Event) {}

// Multi fans an event out to several hooks in order. A panicking hook does
// not prevent the remaining hooks from being called.
type Multi struct {
	hooks  []Hook
	logger *zap.SugaredLogger
}

// NewMulti creates a fan-out hook. Nil hooks are skipped.
func NewMulti(logger *zap.SugaredLogger, hooks ...Hook) *Multi {
	m := &Multi{logger: logger}
	for _, h := range hooks {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
	}
	return m
}

// Notify delivers the event to every hook.
func (m *Multi) Notify(event Event) {
	for _, h := range m.hooks {
		Safe(m.logger, h, event)
	}
}

// Safe calls h.Notify and recovers from a panic inside it.
// It reports whether the hook returned normally.
func Safe(logger *zap.SugaredLogger, h Hook, event Event) (ok bool) {
	if h == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if logger != nil {
				logger.Errorw("notification hook panicked",
					"kind", string(event.Kind),
					"tournament_id", event.TournamentID,
					"panic", r,
				)
			}
		}
	}()
	h.Notify(event)
	return true
}

// Logger writes every event to a zap logger at debug level.
type Logger struct {
	logger *zap.SugaredLogger
}

// NewLogger creates a hook that logs events.
func NewLogger(logger *zap.SugaredLogger) *Logger {
	return &Logger{logger: logger}
}

// Notify logs the event.
func (l *Logger) Notify(event Event) {
	l.logger.Debugw("registry event",
		"kind", string(event.Kind),
		"tournament_id", event.TournamentID,
		"timestamp", event.Timestamp,
	)
}
