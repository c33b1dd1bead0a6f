// Package model defines tournament and match entities, inputs and errors.
package model

import "time"

// Participant is a user entered into a tournament.
// Username is copied at join time and never re-synced.
type Participant struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	IsActive bool      `json:"isActive"`
}

// Tournament is a competition owned by an organizer within a guild.
// MaxParticipants of zero means no cap.
type Tournament struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	OrganizerID     string           `json:"organizerId"`
	GuildID         string           `json:"guildId"`
	Status          TournamentStatus `json:"status"`
	MaxParticipants int              `json:"maxParticipants,omitempty"`
	Participants    []Participant    `json:"participants"`
	Matches         []Match          `json:"matches"`
	CreatedAt       time.Time        `json:"createdAt"`
	StartDate       *time.Time       `json:"startDate,omitempty"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
}

// Full reports whether the tournament has reached its participant cap.
func (t Tournament) Full() bool {
	return t.MaxParticipants > 0 && len(t.Participants) >= t.MaxParticipants
}

// HasParticipant reports whether userID has joined the tournament.
func (t Tournament) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Match is a single game between two players.
type Match struct {
	ID           string      `json:"id"`
	TournamentID string      `json:"tournamentId"`
	Player1ID    string      `json:"player1Id"`
	Player2ID    string      `json:"player2Id"`
	WinnerID     string      `json:"winnerId,omitempty"`
	Status       MatchStatus `json:"status"`
	Round        int         `json:"round"`
	ScheduledAt  *time.Time  `json:"scheduledAt,omitempty"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
}

// HasPlayer reports whether userID is one of the two players.
func (m Match) HasPlayer(userID string) bool {
	return userID != "" && (userID == m.Player1ID || userID == m.Player2ID)
}

// NewTournament holds the input for creating a tournament.
type NewTournament struct {
	Name            string
	Description     string
	OrganizerID     string
	GuildID         string
	Status          TournamentStatus
	MaxParticipants int
	StartDate       *time.Time
	EndDate         *time.Time
}

// NewParticipant holds the input for joining a tournament.
type NewParticipant struct {
	UserID   string
	Username string
}

// NewMatch holds the input for creating a match.
type NewMatch struct {
	TournamentID string
	Player1ID    string
	Player2ID    string
	Round        int
	Status       MatchStatus
	ScheduledAt  *time.Time
}

// Stats summarizes registry contents.
type Stats struct {
	Tournaments         int                      `json:"tournaments"`
	TournamentsByStatus map[TournamentStatus]int `json:"tournamentsByStatus"`
	Participants        int                      `json:"participants"`
	Matches             int                      `json:"matches"`
	MatchesByStatus     map[MatchStatus]int      `json:"matchesByStatus"`
	OrphanMatches       int                      `json:"orphanMatches"`
}
