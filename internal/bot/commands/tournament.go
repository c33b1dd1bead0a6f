package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/festy23/tournament_platform/internal/bot/apiclient"
	"github.com/festy23/tournament_platform/internal/tournament/model"
)

const genericFailure = "❌ Error executing tournament command. Please try again later."

func (c *Commander) tournament(ctx context.Context, msg Message, args []string) string {
	if len(args) == 0 {
		return c.tournamentHelp()
	}

	switch sub := strings.ToLower(args[0]); sub {
	case "help":
		return c.tournamentHelp()
	case "create":
		return c.createTournament(ctx, msg, args[1:])
	case "list":
		return c.listTournaments(ctx, msg)
	case "join":
		return c.joinTournament(ctx, msg, args[1:])
	case "info":
		return c.tournamentInfo(ctx, args[1:])
	default:
		return fmt.Sprintf("❌ Unknown subcommand: `%s`. Use `%stournament` for help.", sub, c.prefix)
	}
}

func (c *Commander) tournamentHelp() string {
	var b strings.Builder
	b.WriteString("🏆 Tournament Commands\n")
	b.WriteString("Available tournament commands:\n")
	fmt.Fprintf(&b, "Create: `%stournament create <name> [description] [--max N]`\n", c.prefix)
	fmt.Fprintf(&b, "List: `%stournament list`\n", c.prefix)
	fmt.Fprintf(&b, "Join: `%stournament join <id>`\n", c.prefix)
	fmt.Fprintf(&b, "Info: `%stournament info <id>`", c.prefix)
	return b.String()
}

// splitMaxOption removes a "--max N" or "--max=N" option from args.
func splitMaxOption(args []string) ([]string, int, error) {
	rest := make([]string, 0, len(args))
	limit := 0
	for i := 0; i < len(args); i++ {
		var raw string
		switch {
		case strings.HasPrefix(args[i], "--max="):
			raw = strings.TrimPrefix(args[i], "--max=")
		case args[i] == "--max":
			if i+1 >= len(args) {
				return nil, 0, errors.New("missing value")
			}
			i++
			raw = args[i]
		default:
			rest = append(rest, args[i])
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, 0, fmt.Errorf("invalid value %q", raw)
		}
		limit = n
	}
	return rest, limit, nil
}

func (c *Commander) createTournament(ctx context.Context, msg Message, args []string) string {
	args, limit, err := splitMaxOption(args)
	if err != nil {
		return "❌ `--max` needs a positive number of participants."
	}
	if len(args) == 0 {
		return "❌ Please provide a tournament name!"
	}

	req := model.CreateTournamentRequest{
		Name:            args[0],
		Description:     strings.Join(args[1:], " "),
		OrganizerID:     msg.UserID,
		GuildID:         msg.ChatID,
		MaxParticipants: limit,
	}
	t, err := c.api.CreateTournament(ctx, req)
	if err != nil {
		if errors.Is(err, apiclient.ErrBadRequest) {
			return "❌ The tournament could not be created. Check the name and try again."
		}
		return c.failure("create", err)
	}

	return fmt.Sprintf("🏆 Tournament Created!\n%s has been created successfully\nTournament ID: %s\nStatus: %s\nOrganizer: %s",
		t.Name, t.ID, t.Status, msg.Username)
}

func (c *Commander) listTournaments(ctx context.Context, msg Message) string {
	list, err := c.api.ListTournaments(ctx, msg.ChatID)
	if err != nil {
		return c.failure("list", err)
	}
	if len(list) == 0 {
		return fmt.Sprintf("📋 No tournaments available. Create one with `%stournament create <name>`", c.prefix)
	}

	var b strings.Builder
	b.WriteString("📋 Active Tournaments\n")
	for i, t := range list {
		fmt.Fprintf(&b, "%d. %s - %s (%d participants) [%s]\n", i+1, t.Name, t.Status, len(t.Participants), t.ID)
	}
	fmt.Fprintf(&b, "Total: %d tournaments", len(list))
	return b.String()
}

func (c *Commander) joinTournament(ctx context.Context, msg Message, args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a tournament ID!"
	}
	id := args[0]

	t, err := c.api.JoinTournament(ctx, id, model.JoinTournamentRequest{UserID: msg.UserID, Username: msg.Username})
	if err != nil {
		var apiErr *apiclient.APIError
		switch {
		case errors.Is(err, apiclient.ErrNotFound):
			return fmt.Sprintf("❌ Tournament %s not found.", id)
		case errors.As(err, &apiErr) && apiErr.Code == "TOURNAMENT_FULL":
			return fmt.Sprintf("❌ Tournament %s is full.", id)
		case errors.Is(err, apiclient.ErrConflict):
			return fmt.Sprintf("⚠️ You have already joined tournament %s.", id)
		}
		return c.failure("join", err)
	}

	return fmt.Sprintf("✅ Tournament Joined!\n%s successfully joined %s (%d participants)", msg.Username, t.Name, len(t.Participants))
}

func (c *Commander) tournamentInfo(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a tournament ID!"
	}
	id := args[0]

	t, err := c.api.GetTournament(ctx, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return fmt.Sprintf("❌ Tournament %s not found.", id)
		}
		return c.failure("info", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n", t.Description)
	}
	fmt.Fprintf(&b, "Tournament ID: %s\nStatus: %s\n", t.ID, t.Status)
	if t.MaxParticipants > 0 {
		fmt.Fprintf(&b, "Participants: %d/%d\n", len(t.Participants), t.MaxParticipants)
	} else {
		fmt.Fprintf(&b, "Participants: %d\n", len(t.Participants))
	}
	for _, p := range t.Participants {
		fmt.Fprintf(&b, "• %s\n", p.Username)
	}

	completed := 0
	for _, m := range t.Matches {
		if m.Status == model.MatchCompleted {
			completed++
		}
	}
	fmt.Fprintf(&b, "Matches: %d (%d completed)", len(t.Matches), completed)
	return b.String()
}

func (c *Commander) failure(sub string, err error) string {
	c.logger.Errorw("tournament command failed", "subcommand", sub, "error", err)
	return genericFailure
}
