package telegram

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/bot/commands"
	"github.com/festy23/tournament_platform/pkg/retry"
)

// Handler turns an incoming message into a reply.
type Handler interface {
	Handle(ctx context.Context, msg commands.Message) (string, bool)
}

// Poller feeds updates from a long poll into a Handler.
type Poller struct {
	client       *Client
	handler      Handler
	pollTimeout  time.Duration
	errorBackoff time.Duration
	sendRetry    retry.Config
	logger       *zap.SugaredLogger

	offset int64
}

// NewPoller creates a Poller.
func NewPoller(client *Client, handler Handler, pollTimeout time.Duration, logger *zap.SugaredLogger) *Poller {
	return &Poller{
		client:       client,
		handler:      handler,
		pollTimeout:  pollTimeout,
		errorBackoff: 3 * time.Second,
		sendRetry:    retry.HTTPClientConfig(),
		logger:       logger,
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Infow("telegram poller started", "poll_timeout", p.pollTimeout.String())

	for {
		updates, err := p.client.GetUpdates(ctx, p.offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Warnw("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.errorBackoff):
			}
			continue
		}

		for _, u := range updates {
			p.offset = u.UpdateID + 1
			p.dispatch(ctx, u)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, u Update) {
	m := u.Message
	if m == nil || m.Text == "" || m.From == nil || m.From.IsBot {
		return
	}

	username := m.From.Username
	if username == "" {
		username = m.From.FirstName
	}

	reply, ok := p.handler.Handle(ctx, commands.Message{
		ChatID:   strconv.FormatInt(m.Chat.ID, 10),
		UserID:   strconv.FormatInt(m.From.ID, 10),
		Username: username,
		Text:     m.Text,
		SentAt:   time.Unix(m.Date, 0),
	})
	if !ok || reply == "" {
		return
	}

	err := retry.Do(ctx, p.sendRetry, func() error {
		return p.client.SendMessage(ctx, m.Chat.ID, reply, m.MessageID)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Errorw("failed to send reply", "chat_id", m.Chat.ID, "error", err)
	}
}
