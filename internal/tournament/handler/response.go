package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/tournament_platform/internal/tournament/model"
)

// ErrorResponse represents the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

var validationErrors = []error{
	model.ErrInvalidName,
	model.ErrInvalidOrganizer,
	model.ErrInvalidTournamentStatus,
	model.ErrInvalidMaxParticipants,
	model.ErrInvalidDates,
	model.ErrInvalidParticipant,
	model.ErrInvalidPlayers,
	model.ErrInvalidRound,
	model.ErrInvalidMatchStatus,
}

// domainErrorResponse maps a service error to a status and error code.
// It reports false for errors it does not recognize.
func domainErrorResponse(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, model.ErrTournamentNotFound):
		errorResponse(c, "NOT_FOUND", "tournament not found", http.StatusNotFound)
	case errors.Is(err, model.ErrMatchNotFound):
		errorResponse(c, "NOT_FOUND", "match not found", http.StatusNotFound)
	case errors.Is(err, model.ErrAlreadyJoined):
		errorResponse(c, "ALREADY_JOINED", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrTournamentFull):
		errorResponse(c, "TOURNAMENT_FULL", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrMatchCompleted):
		errorResponse(c, "MATCH_COMPLETED", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidTransition):
		errorResponse(c, "INVALID_TRANSITION", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidWinner):
		errorResponse(c, "INVALID_WINNER", err.Error(), http.StatusBadRequest)
	default:
		for _, v := range validationErrors {
			if errors.Is(err, v) {
				errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
				return true
			}
		}
		return false
	}
	return true
}
