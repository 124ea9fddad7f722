package model

// EventType identifies an outbound websocket event
type EventType string

const (
	// Global events
	EventRoomCreated EventType = "room_created"

	// Room-scoped events
	EventGameStateUpdate EventType = "game_state_update"
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventRoomJoined      EventType = "room_joined"
	EventRoomLeft        EventType = "room_left"

	// Directed failure events
	EventError              EventType = "error"
	EventStartGameFailed    EventType = "start_game_failed"
	EventPlayerActionFailed EventType = "player_action_failed"
)

// PlayerJoinedPayload is the lightweight notification sent to existing room
// members when a player joins; joiners themselves get the full projection
type PlayerJoinedPayload struct {
	GuestID  GuestID `json:"guest_id"`
	Nickname string  `json:"nickname"`
}

// PlayerLeftPayload notifies remaining members that a player left, and who
// the host is now
type PlayerLeftPayload struct {
	GuestID GuestID `json:"guest_id"`
	HostID  GuestID `json:"host_id"`
}

// ActionFailedPayload is sent only to the acting connection when an action is
// rejected
type ActionFailedPayload struct {
	RoomID RoomID `json:"room_id"`
	Error  string `json:"error"`
}
