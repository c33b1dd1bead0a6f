// Package model provides data transfer objects for statistics module.
package model

// Overview summarizes the whole platform.
type Overview struct {
	Users               int            `json:"users"`
	Tournaments         int            `json:"tournaments"`
	TournamentsByStatus map[string]int `json:"tournaments_by_status"`
	Participants        int            `json:"participants"`
	Matches             int            `json:"matches"`
	MatchesByStatus     map[string]int `json:"matches_by_status"`
	OrphanMatches       int            `json:"orphan_matches"`
}

// OverviewResponse represents response for platform statistics.
type OverviewResponse struct {
	Statistics Overview `json:"statistics"`
}

// TournamentStatistics represents statistics for one tournament.
type TournamentStatistics struct {
	TournamentID     string `json:"tournament_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	Participants     int    `json:"participants"`
	MaxParticipants  int    `json:"max_participants,omitempty"`
	Matches          int    `json:"matches"`
	CompletedMatches int    `json:"completed_matches"`
	Rounds           int    `json:"rounds"`
}

// TournamentStatisticsResponse represents response for per-tournament statistics.
type TournamentStatisticsResponse struct {
	Tournaments []TournamentStatistics `json:"tournaments"`
	Total       int                    `json:"total"`
}
