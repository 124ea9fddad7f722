package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room code already in use")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidSettings = errors.New("invalid room settings")

	// Membership errors
	ErrPlayerNotFound = errors.New("player not found in room")
	ErrNotHost        = errors.New("only the host can perform this action")

	// Game lifecycle errors
	ErrGameInProgress      = errors.New("game already started")
	ErrGameNotStarted      = errors.New("game not in progress")
	ErrInsufficientPlayers = errors.New("at least 2 players are required to start")
	ErrPlayersNotReady     = errors.New("all players must be ready to start")

	// Action validation errors
	ErrCardNotOwned      = errors.New("player does not have all of these cards")
	ErrNothingToRecall   = errors.New("no play or discard to recall")
	ErrNotLastActor      = errors.New("only the last actor can recall")
	ErrDeckEmpty         = errors.New("no cards in deck to draw")
	ErrDiscardEmpty      = errors.New("no cards in discard pile to draw")
	ErrTargetNotFound    = errors.New("target player not found in room")
	ErrHandMismatch      = errors.New("reordered cards do not match current hand")
	ErrUnknownAction     = errors.New("unknown action type")
	ErrInvalidActionData = errors.New("invalid action data")
)
