// Package commands parses prefixed chat messages and produces bot replies.
package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/tournament/model"
)

// API is the subset of the tournament API the commands use.
type API interface {
	CreateTournament(ctx context.Context, req model.CreateTournamentRequest) (model.Tournament, error)
	ListTournaments(ctx context.Context, guildID string) ([]model.Tournament, error)
	GetTournament(ctx context.Context, id string) (model.Tournament, error)
	JoinTournament(ctx context.Context, id string, req model.JoinTournamentRequest) (model.Tournament, error)
}

// Message is an incoming chat message.
type Message struct {
	ChatID   string
	UserID   string
	Username string
	Text     string
	SentAt   time.Time
}

type handlerFunc func(ctx context.Context, msg Message, args []string) string

type command struct {
	name    string
	aliases []string
	run     handlerFunc
}

// Commander dispatches prefixed messages to commands.
type Commander struct {
	api      API
	prefix   string
	cooldown time.Duration
	now      func() time.Time
	logger   *zap.SugaredLogger

	commands map[string]*command

	mu       sync.Mutex
	lastUsed map[string]time.Time
}

// Option customizes a Commander.
type Option func(*Commander)

// WithClock overrides the time source used for cooldowns and latency.
func WithClock(now func() time.Time) Option {
	return func(c *Commander) { c.now = now }
}

// New creates a Commander answering messages that start with prefix.
// A zero cooldown disables rate limiting.
func New(api API, prefix string, cooldown time.Duration, logger *zap.SugaredLogger, opts ...Option) *Commander {
	c := &Commander{
		api:      api,
		prefix:   prefix,
		cooldown: cooldown,
		now:      time.Now,
		logger:   logger,
		commands: make(map[string]*command),
		lastUsed: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.register(&command{name: "tournament", aliases: []string{"t", "tourney"}, run: c.tournament})
	c.register(&command{name: "ping", aliases: []string{"pong", "latency"}, run: c.ping})
	return c
}

func (c *Commander) register(cmd *command) {
	c.commands[cmd.name] = cmd
	for _, alias := range cmd.aliases {
		c.commands[alias] = cmd
	}
}

// Handle returns the reply for msg. It reports false when the message is not
// a command addressed to the bot.
func (c *Commander) Handle(ctx context.Context, msg Message) (string, bool) {
	if !strings.HasPrefix(msg.Text, c.prefix) {
		return "", false
	}

	args := strings.Fields(msg.Text[len(c.prefix):])
	if len(args) == 0 {
		return "", false
	}
	name := strings.ToLower(args[0])
	cmd, ok := c.commands[name]
	if !ok {
		return "", false
	}

	if wait := c.checkCooldown(msg.UserID, cmd.name); wait > 0 {
		return fmt.Sprintf("⏱️ Please wait %.1fs before using `%s` again.", wait.Seconds(), cmd.name), true
	}

	c.logger.Debugw("command received", "command", cmd.name, "user_id", msg.UserID, "chat_id", msg.ChatID)
	return cmd.run(ctx, msg, args[1:]), true
}

// checkCooldown records a use and returns how long the user still has to wait.
func (c *Commander) checkCooldown(userID, name string) time.Duration {
	if c.cooldown <= 0 {
		return 0
	}

	key := userID + "-" + name
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.lastUsed[key]; ok {
		if remaining := last.Add(c.cooldown).Sub(now); remaining > 0 {
			return remaining
		}
	}

	for k, t := range c.lastUsed {
		if now.Sub(t) >= c.cooldown {
			delete(c.lastUsed, k)
		}
	}
	c.lastUsed[key] = now
	return 0
}

func (c *Commander) ping(_ context.Context, msg Message, _ []string) string {
	if msg.SentAt.IsZero() {
		return "🏓 Pong!"
	}
	latency := c.now().Sub(msg.SentAt)
	if latency < 0 {
		latency = 0
	}
	return fmt.Sprintf("🏓 Pong!\nBot Latency: %dms", latency.Milliseconds())
}
