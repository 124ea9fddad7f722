package request

import "github.com/cardtable/cardtable/internal/model"

// CreateGuestRequest is the body for POST /api/v1/guests
type CreateGuestRequest struct {
	Nickname string `json:"nickname"`
}

// CreateRoomRequest is the body for POST /api/v1/rooms. Settings are optional
// and fall back to the defaults.
type CreateRoomRequest struct {
	Name     string          `json:"name"`
	Nickname string          `json:"nickname"`
	GameType string          `json:"game_type"`
	Settings *model.Settings `json:"settings"`
}
