// Package service provides business logic layer for tournament module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/tournament/model"
)

// Registry is the storage the service operates on.
type Registry interface {
	CreateTournament(input model.NewTournament) model.Tournament
	GetTournament(id string) (model.Tournament, bool)
	ListTournaments() []model.Tournament
	JoinTournament(tournamentID string, p model.NewParticipant) (model.Tournament, error)
	CreateMatch(input model.NewMatch) (model.Match, error)
	GetMatch(id string) (model.Match, bool)
	ReportMatchWinner(matchID, winnerID string) (model.Match, error)
	UpdateMatchStatus(matchID string, status model.MatchStatus) (model.Match, error)
}

// Service defines the interface for tournament business logic operations.
type Service interface {
	// CreateTournament validates the request and creates a tournament.
	CreateTournament(ctx context.Context, req *model.CreateTournamentRequest) (*model.Tournament, error)

	// GetTournament returns a tournament by id.
	GetTournament(ctx context.Context, id string) (*model.Tournament, error)

	// ListTournaments returns all tournaments, optionally limited to one guild.
	ListTournaments(ctx context.Context, guildID string) (*model.ListTournamentsResponse, error)

	// JoinTournament adds a participant to a tournament.
	JoinTournament(ctx context.Context, tournamentID string, req *model.JoinTournamentRequest) (*model.JoinTournamentResponse, error)

	// CreateMatch creates a match inside an existing tournament.
	CreateMatch(ctx context.Context, tournamentID string, req *model.CreateMatchRequest) (*model.Match, error)

	// GetMatch returns a match by id.
	GetMatch(ctx context.Context, id string) (*model.Match, error)

	// ReportWinner completes a match.
	ReportWinner(ctx context.Context, matchID string, req *model.ReportWinnerRequest) (*model.Match, error)

	// UpdateMatchStatus moves a match to active or cancelled.
	UpdateMatchStatus(ctx context.Context, matchID string, req *model.UpdateMatchStatusRequest) (*model.Match, error)
}

type service struct {
	registry Registry
	logger   *zap.SugaredLogger
}

// New creates a new tournament service instance.
func New(registry Registry, logger *zap.SugaredLogger) Service {
	return &service{registry: registry, logger: logger}
}

// CreateTournament validates the request and creates a tournament.
func (s *service) CreateTournament(_ context.Context, req *model.CreateTournamentRequest) (*model.Tournament, error) {
	s.logger.Debugw("CreateTournament called", "name", req.Name, "organizer_id", req.OrganizerID)

	input := model.NewTournament{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		OrganizerID:     strings.TrimSpace(req.OrganizerID),
		GuildID:         strings.TrimSpace(req.GuildID),
		Status:          req.Status,
		MaxParticipants: req.MaxParticipants,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if input.Status == "" {
		input.Status = model.TournamentUpcoming
	}

	if err := validateTournament(input); err != nil {
		s.logger.Debugw("CreateTournament validation failed", "error", err)
		return nil, err
	}

	t := s.registry.CreateTournament(input)
	s.logger.Infow("CreateTournament completed", "tournament_id", t.ID, "guild_id", t.GuildID)
	return &t, nil
}

func validateTournament(input model.NewTournament) error {
	switch {
	case input.Name == "":
		return model.ErrInvalidName
	case input.OrganizerID == "":
		return model.ErrInvalidOrganizer
	case !input.Status.Valid():
		return model.ErrInvalidTournamentStatus
	case input.MaxParticipants < 0:
		return model.ErrInvalidMaxParticipants
	case input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate):
		return model.ErrInvalidDates
	}
	return nil
}

// GetTournament returns a tournament by id.
func (s *service) GetTournament(_ context.Context, id string) (*model.Tournament, error) {
	t, ok := s.registry.GetTournament(id)
	if !ok {
		s.logger.Debugw("GetTournament not found", "tournament_id", id)
		return nil, model.ErrTournamentNotFound
	}
	return &t, nil
}

// ListTournaments returns all tournaments, optionally limited to one guild.
func (s *service) ListTournaments(_ context.Context, guildID string) (*model.ListTournamentsResponse, error) {
	all := s.registry.ListTournaments()
	if guildID == "" {
		return &model.ListTournamentsResponse{Tournaments: all}, nil
	}

	filtered := make([]model.Tournament, 0, len(all))
	for _, t := range all {
		if t.GuildID == guildID {
			filtered = append(filtered, t)
		}
	}
	return &model.ListTournamentsResponse{Tournaments: filtered}, nil
}

// JoinTournament adds a participant to a tournament.
func (s *service) JoinTournament(
	_ context.Context,
	tournamentID string,
	req *model.JoinTournamentRequest,
) (*model.JoinTournamentResponse, error) {
	s.logger.Debugw("JoinTournament called", "tournament_id", tournamentID, "user_id", req.UserID)

	p := model.NewParticipant{
		UserID:   strings.TrimSpace(req.UserID),
		Username: strings.TrimSpace(req.Username),
	}
	if p.UserID == "" || p.Username == "" {
		return nil, model.ErrInvalidParticipant
	}

	t, err := s.registry.JoinTournament(tournamentID, p)
	if err != nil {
		s.logger.Debugw("JoinTournament rejected", "tournament_id", tournamentID, "user_id", p.UserID, "error", err)
		return nil, err
	}

	s.logger.Infow("JoinTournament completed",
		"tournament_id", tournamentID,
		"user_id", p.UserID,
		"participants", len(t.Participants),
	)
	return &model.JoinTournamentResponse{Message: "Successfully joined tournament", Tournament: t}, nil
}

// CreateMatch creates a match inside an existing tournament.
func (s *service) CreateMatch(_ context.Context, tournamentID string, req *model.CreateMatchRequest) (*model.Match, error) {
	s.logger.Debugw("CreateMatch called", "tournament_id", tournamentID, "round", req.Round)

	input := model.NewMatch{
		TournamentID: tournamentID,
		Player1ID:    strings.TrimSpace(req.Player1ID),
		Player2ID:    strings.TrimSpace(req.Player2ID),
		Round:        req.Round,
		Status:       req.Status,
		ScheduledAt:  req.ScheduledAt,
	}
	switch {
	case input.Player1ID == "" || input.Player2ID == "" || input.Player1ID == input.Player2ID:
		return nil, model.ErrInvalidPlayers
	case input.Round < 1:
		return nil, model.ErrInvalidRound
	}

	if _, ok := s.registry.GetTournament(tournamentID); !ok {
		s.logger.Debugw("CreateMatch tournament not found", "tournament_id", tournamentID)
		return nil, model.ErrTournamentNotFound
	}

	m, err := s.registry.CreateMatch(input)
	if err != nil {
		s.logger.Debugw("CreateMatch rejected", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	s.logger.Infow("CreateMatch completed", "tournament_id", tournamentID, "match_id", m.ID)
	return &m, nil
}

// GetMatch returns a match by id.
func (s *service) GetMatch(_ context.Context, id string) (*model.Match, error) {
	m, ok := s.registry.GetMatch(id)
	if !ok {
		s.logger.Debugw("GetMatch not found", "match_id", id)
		return nil, model.ErrMatchNotFound
	}
	return &m, nil
}

// ReportWinner completes a match.
func (s *service) ReportWinner(_ context.Context, matchID string, req *model.ReportWinnerRequest) (*model.Match, error) {
	s.logger.Debugw("ReportWinner called", "match_id", matchID, "winner_id", req.WinnerID)

	winnerID := strings.TrimSpace(req.WinnerID)
	if winnerID == "" {
		return nil, model.ErrInvalidWinner
	}

	m, err := s.registry.ReportMatchWinner(matchID, winnerID)
	if err != nil {
		s.logger.Debugw("ReportWinner rejected", "match_id", matchID, "error", err)
		return nil, err
	}

	s.logger.Infow("ReportWinner completed", "match_id", matchID, "winner_id", winnerID)
	return &m, nil
}

// UpdateMatchStatus moves a match to active or cancelled.
func (s *service) UpdateMatchStatus(
	_ context.Context,
	matchID string,
	req *model.UpdateMatchStatusRequest,
) (*model.Match, error) {
	s.logger.Debugw("UpdateMatchStatus called", "match_id", matchID, "status", string(req.Status))

	m, err := s.registry.UpdateMatchStatus(matchID, req.Status)
	if err != nil {
		s.logger.Debugw("UpdateMatchStatus rejected", "match_id", matchID, "error", err)
		return nil, err
	}

	s.logger.Infow("UpdateMatchStatus completed", "match_id", matchID, "status", string(m.Status))
	return &m, nil
}
