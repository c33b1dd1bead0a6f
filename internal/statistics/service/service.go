// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/statistics/model"
	tournament "github.com/festy23/tournament_platform/internal/tournament/model"
)

// TournamentSource provides tournament data to aggregate.
type TournamentSource interface {
	Stats() tournament.Stats
	ListTournaments() []tournament.Tournament
}

// UserCounter reports the number of registered users.
type UserCounter interface {
	Count() int
}

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetOverview returns platform-wide counters.
	GetOverview(ctx context.Context) (*model.OverviewResponse, error)

	// GetTournamentStatistics returns counters for every tournament.
	GetTournamentStatistics(ctx context.Context) (*model.TournamentStatisticsResponse, error)
}

type service struct {
	tournaments TournamentSource
	users       UserCounter
	logger      *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(tournaments TournamentSource, users UserCounter, logger *zap.SugaredLogger) Service {
	return &service{
		tournaments: tournaments,
		users:       users,
		logger:      logger,
	}
}

// GetOverview returns platform-wide counters.
func (s *service) GetOverview(_ context.Context) (*model.OverviewResponse, error) {
	s.logger.Debugw("GetOverview called")

	stats := s.tournaments.Stats()
	overview := model.Overview{
		Users:               s.users.Count(),
		Tournaments:         stats.Tournaments,
		TournamentsByStatus: make(map[string]int, len(stats.TournamentsByStatus)),
		Participants:        stats.Participants,
		Matches:             stats.Matches,
		MatchesByStatus:     make(map[string]int, len(stats.MatchesByStatus)),
		OrphanMatches:       stats.OrphanMatches,
	}
	for status, n := range stats.TournamentsByStatus {
		overview.TournamentsByStatus[string(status)] = n
	}
	for status, n := range stats.MatchesByStatus {
		overview.MatchesByStatus[string(status)] = n
	}

	s.logger.Infow("GetOverview completed", "tournaments", overview.Tournaments, "matches", overview.Matches)
	return &model.OverviewResponse{Statistics: overview}, nil
}

// GetTournamentStatistics returns counters for every tournament in creation order.
func (s *service) GetTournamentStatistics(_ context.Context) (*model.TournamentStatisticsResponse, error) {
	s.logger.Debugw("GetTournamentStatistics called")

	all := s.tournaments.ListTournaments()
	out := make([]model.TournamentStatistics, 0, len(all))
	for _, t := range all {
		ts := model.TournamentStatistics{
			TournamentID:    t.ID,
			Name:            t.Name,
			Status:          string(t.Status),
			Participants:    len(t.Participants),
			MaxParticipants: t.MaxParticipants,
			Matches:         len(t.Matches),
		}
		for _, m := range t.Matches {
			if m.Status == tournament.MatchCompleted {
				ts.CompletedMatches++
			}
			if m.Round > ts.Rounds {
				ts.Rounds = m.Round
			}
		}
		out = append(out, ts)
	}

	s.logger.Infow("GetTournamentStatistics completed", "count", len(out))
	return &model.TournamentStatisticsResponse{Tournaments: out, Total: len(out)}, nil
}
