package model

// GameStatus represents the phase of a game within a room
type GameStatus string

const (
	GameStatusPendingStart GameStatus = "pending_start"
	GameStatusActive       GameStatus = "active"
	GameStatusFinished     GameStatus = "finished"
)

// LastPlay records the most recent play or discard: the actor and the exact
// cards they moved. It exists solely to permit recall and is overwritten by
// every play/discard.
type LastPlay struct {
	PlayerID    GuestID `json:"player_id"`
	Cards       []Card  `json:"cards"`
	FromDiscard bool    `json:"from_discard"`
}

// GameState is the shared mutable state of an active game. The disjoint union
// of Deck, every player hand, DiscardPile and every table pile always equals
// the full card set generated for the room's settings.
type GameState struct {
	Status             GameStatus `json:"status"`
	TurnOrder          []GuestID  `json:"turn_order"`
	CurrentPlayerIndex int        `json:"current_player_index"`
	TurnNumber         int        `json:"turn_number"`
	Deck               []Card     `json:"deck"`
	DiscardPile        []Card     `json:"discard_pile"`
	Table              [][]Card   `json:"table"`
	LastPlay           *LastPlay  `json:"last_play,omitempty"`
	WinnerID           GuestID    `json:"winner_id,omitempty"`
}

// CurrentTurnGuest returns the guest whose turn it currently is, or ""
func (g *GameState) CurrentTurnGuest() GuestID {
	if len(g.TurnOrder) == 0 {
		return ""
	}
	return g.TurnOrder[g.CurrentPlayerIndex%len(g.TurnOrder)]
}

// AdvanceTurn moves to the next player in the fixed turn order and bumps the
// turn counter
func (g *GameState) AdvanceTurn() {
	if len(g.TurnOrder) > 0 {
		g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.TurnOrder)
	}
	g.TurnNumber++
}
