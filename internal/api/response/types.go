package response

import (
	"time"

	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/auth"
)

// AuthResponse is returned when a guest identity is created
type AuthResponse struct {
	Token    string        `json:"token"`
	GuestID  model.GuestID `json:"guest_id"`
	Nickname string        `json:"nickname"`
}

// AuthResponseFromSession converts an auth session to a response
func AuthResponseFromSession(session *auth.Session) AuthResponse {
	return AuthResponse{
		Token:    session.Token,
		GuestID:  session.Guest.ID,
		Nickname: session.Guest.Nickname,
	}
}

// RoomResponse is the client-facing projection of a room. It adds the
// current player count alongside the full player list.
type RoomResponse struct {
	RoomID         model.RoomID     `json:"room_id"`
	Name           string           `json:"name"`
	HostID         model.GuestID    `json:"host_id"`
	Status         model.RoomStatus `json:"status"`
	GameType       string           `json:"game_type"`
	Settings       model.Settings   `json:"settings"`
	GameState      *model.GameState `json:"game_state,omitempty"`
	CurrentPlayers int              `json:"current_players"`
	Players        []model.Player   `json:"players"`
	CreatedAt      time.Time        `json:"created_at"`
	LastActivity   time.Time        `json:"last_activity"`
}

// RoomResponseFromModel converts a room to its response projection
func RoomResponseFromModel(room *model.Room) RoomResponse {
	return RoomResponse{
		RoomID:         room.ID,
		Name:           room.Name,
		HostID:         room.HostID,
		Status:         room.Status,
		GameType:       room.GameType,
		Settings:       room.Settings,
		GameState:      room.GameState,
		CurrentPlayers: len(room.Players),
		Players:        room.Players,
		CreatedAt:      room.CreatedAt,
		LastActivity:   room.LastActivity,
	}
}

// RoomResponsesFromModels converts a slice of rooms
func RoomResponsesFromModels(rooms []*model.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomResponseFromModel(room))
	}
	return out
}
