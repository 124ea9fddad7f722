package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeRoomExists          = "ROOM_EXISTS"
	CodeRoomFull            = "ROOM_FULL"
	CodeInvalidSettings     = "INVALID_SETTINGS"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeNotHost             = "NOT_HOST"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodePlayersNotReady     = "PLAYERS_NOT_READY"
	CodeCardNotOwned        = "CARD_NOT_OWNED"
	CodeNothingToRecall     = "NOTHING_TO_RECALL"
	CodeNotLastActor        = "NOT_LAST_ACTOR"
	CodeDeckEmpty           = "DECK_EMPTY"
	CodeDiscardEmpty        = "DISCARD_EMPTY"
	CodeTargetNotFound      = "TARGET_NOT_FOUND"
	CodeHandMismatch        = "HAND_MISMATCH"
	CodeUnknownAction       = "UNKNOWN_ACTION"
	CodeInvalidActionData   = "INVALID_ACTION_DATA"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusConflict, APIError{CodeRoomExists, "Room code is already in use"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrInvalidSettings):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettings, "Invalid room settings"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player is not in this room"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is already in progress"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrPlayersNotReady):
		return &httpError{http.StatusConflict, APIError{CodePlayersNotReady, "Not all players are ready"}}
	case errors.Is(err, model.ErrCardNotOwned):
		return &httpError{http.StatusForbidden, APIError{CodeCardNotOwned, "Card is not in your hand"}}
	case errors.Is(err, model.ErrNothingToRecall):
		return &httpError{http.StatusConflict, APIError{CodeNothingToRecall, "There is nothing to recall"}}
	case errors.Is(err, model.ErrNotLastActor):
		return &httpError{http.StatusForbidden, APIError{CodeNotLastActor, "Only the last actor can recall"}}
	case errors.Is(err, model.ErrDeckEmpty):
		return &httpError{http.StatusConflict, APIError{CodeDeckEmpty, "The deck is empty"}}
	case errors.Is(err, model.ErrDiscardEmpty):
		return &httpError{http.StatusConflict, APIError{CodeDiscardEmpty, "The discard pile is empty"}}
	case errors.Is(err, model.ErrTargetNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTargetNotFound, "Target player is not in this room"}}
	case errors.Is(err, model.ErrHandMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeHandMismatch, "Card list does not match your hand"}}
	case errors.Is(err, model.ErrUnknownAction):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownAction, "Unknown action type"}}
	case errors.Is(err, model.ErrInvalidActionData):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidActionData, "Invalid action data"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
