package model

import "time"

// CreateTournamentRequest represents the request to create a tournament.
type CreateTournamentRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	OrganizerID     string           `json:"organizerId"`
	GuildID         string           `json:"guildId"`
	Status          TournamentStatus `json:"status"`
	MaxParticipants int              `json:"maxParticipants"`
	StartDate       *time.Time       `json:"startDate"`
	EndDate         *time.Time       `json:"endDate"`
}

// ListTournamentsResponse wraps the tournament list.
type ListTournamentsResponse struct {
	Tournaments []Tournament `json:"tournaments"`
}

// JoinTournamentRequest represents the request to join a tournament.
type JoinTournamentRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// JoinTournamentResponse is returned after a successful join.
type JoinTournamentResponse struct {
	Message    string     `json:"message"`
	Tournament Tournament `json:"tournament"`
}

// CreateMatchRequest represents the request to create a match in a tournament.
type CreateMatchRequest struct {
	Player1ID   string      `json:"player1Id"`
	Player2ID   string      `json:"player2Id"`
	Round       int         `json:"round"`
	Status      MatchStatus `json:"status"`
	ScheduledAt *time.Time  `json:"scheduledAt"`
}

// ReportWinnerRequest represents the request to report a match winner.
type ReportWinnerRequest struct {
	WinnerID string `json:"winnerId"`
}

// UpdateMatchStatusRequest represents the request to change a match status.
type UpdateMatchStatusRequest struct {
	Status MatchStatus `json:"status"`
}
