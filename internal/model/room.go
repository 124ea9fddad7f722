package model

import "time"

// RoomID is the short human-typeable code identifying a room
type RoomID string

// GuestID is the stable identity assigned to a guest at authentication time
type GuestID string

// ConnectionID identifies a live websocket connection; empty when the player
// is not currently connected
type ConnectionID string

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusActive   RoomStatus = "active"
	RoomStatusFinished RoomStatus = "finished"
)

// Player is a guest's membership in one room. The hand is owned exclusively
// by this player while they are in the room.
type Player struct {
	GuestID      GuestID      `json:"guest_id"`
	Nickname     string       `json:"nickname"`
	ConnectionID ConnectionID `json:"connection_id,omitempty"`
	IsReady      bool         `json:"is_ready"`
	Hand         []Card       `json:"hand"`
}

// Settings are a room's game parameters, immutable after creation
type Settings struct {
	NumberOfDecks    int  `json:"number_of_decks"`
	IncludeJokers    bool `json:"include_jokers"`
	MaxPlayers       int  `json:"max_players"`
	InitialDealCount int  `json:"initial_deal_count"`
}

// Settings bounds
const (
	MinDecks        = 1
	MaxDecks        = 4
	MinPlayers      = 2
	MaxPlayersLimit = 8
	MaxInitialDeal  = 17
	DefaultGameType = "freeform"
)

// DefaultSettings returns the settings applied when a creator supplies none
func DefaultSettings() Settings {
	return Settings{
		NumberOfDecks:    1,
		IncludeJokers:    false,
		MaxPlayers:       2,
		InitialDealCount: 0,
	}
}

// Validate checks the settings bounds
func (s Settings) Validate() error {
	if s.NumberOfDecks < MinDecks || s.NumberOfDecks > MaxDecks {
		return ErrInvalidSettings
	}
	if s.MaxPlayers < MinPlayers || s.MaxPlayers > MaxPlayersLimit {
		return ErrInvalidSettings
	}
	if s.InitialDealCount < 0 || s.InitialDealCount > MaxInitialDeal {
		return ErrInvalidSettings
	}
	return nil
}

// Room is a single game session. Player order is join order and is never
// re-ordered; the host must always be one of the players unless the room is
// empty, at which point it is eligible for sweep deletion.
type Room struct {
	ID           RoomID     `json:"id"`
	Name         string     `json:"name"`
	HostID       GuestID    `json:"host_id"`
	Players      []Player   `json:"players"`
	Status       RoomStatus `json:"status"`
	GameType     string     `json:"game_type"`
	Settings     Settings   `json:"settings"`
	GameState    *GameState `json:"game_state,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastActivity time.Time  `json:"last_activity"`
}

// FindPlayer returns the index and player for a guest id, or -1 and nil
func (r *Room) FindPlayer(guestID GuestID) (int, *Player) {
	for i := range r.Players {
		if r.Players[i].GuestID == guestID {
			return i, &r.Players[i]
		}
	}
	return -1, nil
}

// HasPlayer reports whether the guest is currently a member of the room
func (r *Room) HasPlayer(guestID GuestID) bool {
	_, p := r.FindPlayer(guestID)
	return p != nil
}

// IsFull reports whether the room has reached its player limit
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.Settings.MaxPlayers
}

// AllReady reports whether every seated player has toggled ready
func (r *Room) AllReady() bool {
	for i := range r.Players {
		if !r.Players[i].IsReady {
			return false
		}
	}
	return true
}
