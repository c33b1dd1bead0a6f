package model

// TournamentStatus is the lifecycle state of a tournament.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

// Valid reports whether s is a known tournament status.
func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentActive, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchActive    MatchStatus = "active"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchActive, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s MatchStatus) Terminal() bool {
	return s == MatchCompleted || s == MatchCancelled
}

// CanTransition reports whether a match may move from s to next.
//
//	scheduled -> active -> completed
//	scheduled, active -> cancelled
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	switch s {
	case MatchScheduled:
		return next == MatchActive || next == MatchCompleted || next == MatchCancelled
	case MatchActive:
		return next == MatchCompleted || next == MatchCancelled
	}
	return false
}
