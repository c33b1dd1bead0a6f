package model

import "errors"

var (
	// ErrTournamentNotFound indicates that the requested tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrAlreadyJoined indicates that the user is already a participant.
	ErrAlreadyJoined = errors.New("user already joined tournament")
	// ErrTournamentFull indicates that the participant cap has been reached.
	ErrTournamentFull = errors.New("tournament is full")
	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInvalidWinner indicates that the reported winner is not one of the match players.
	ErrInvalidWinner = errors.New("winner must be one of the match players")
	// ErrMatchCompleted indicates that the match already has a winner.
	ErrMatchCompleted = errors.New("match already completed")
	// ErrInvalidTransition indicates a match status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid match status transition")
	// ErrInvalidMatchStatus indicates an unknown or disallowed match status.
	ErrInvalidMatchStatus = errors.New("invalid match status")

	// ErrInvalidName indicates that the tournament name is missing.
	ErrInvalidName = errors.New("name is required")
	// ErrInvalidOrganizer indicates that the organizer id is missing.
	ErrInvalidOrganizer = errors.New("organizerId is required")
	// ErrInvalidTournamentStatus indicates an unknown tournament status.
	ErrInvalidTournamentStatus = errors.New("invalid tournament status")
	// ErrInvalidMaxParticipants indicates a negative participant cap.
	ErrInvalidMaxParticipants = errors.New("maxParticipants must not be negative")
	// ErrInvalidDates indicates that the end date precedes the start date.
	ErrInvalidDates = errors.New("endDate must not be before startDate")
	// ErrInvalidParticipant indicates that userId or username is missing.
	ErrInvalidParticipant = errors.New("userId and username are required")
	// ErrInvalidPlayers indicates missing or identical player ids.
	ErrInvalidPlayers = errors.New("two distinct players are required")
	// ErrInvalidRound indicates a round number below one.
	ErrInvalidRound = errors.New("round must be at least 1")
)
