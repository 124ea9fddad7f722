package game

import (
	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/model"
)

// BuildDeck generates the full card set for the given settings: 52 standard
// cards per configured deck, each tagged with its deck index, plus a red and
// a black joker per deck when jokers are enabled. The deck is returned
// unshuffled.
func BuildDeck(settings model.Settings) []model.Card {
	deck := make([]model.Card, 0, TotalCards(settings))
	for i := 0; i < settings.NumberOfDecks; i++ {
		for _, suit := range model.Suits {
			for _, rank := range model.Ranks {
				deck = append(deck, model.NewCard(suit, rank, i))
			}
		}
		if settings.IncludeJokers {
			deck = append(deck, model.NewJoker(model.SuitJokerRed, i))
			deck = append(deck, model.NewJoker(model.SuitJokerBlack, i))
		}
	}
	return deck
}

// TotalCards returns the size of the full card set for the settings
func TotalCards(settings model.Settings) int {
	perDeck := len(model.Suits) * len(model.Ranks)
	if settings.IncludeJokers {
		perDeck += 2
	}
	return settings.NumberOfDecks * perDeck
}

// ShuffleDeck applies a uniform random permutation to the deck in place
func ShuffleDeck(rnd random.Random, deck []model.Card) {
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Deal removes count cards per player from the deck tail, round-robin in
// player order, one card per pass. An exhausted deck ends the deal early
// rather than erroring, leaving shorter hands.
func Deal(room *model.Room, count int) {
	gs := room.GameState
	for pass := 0; pass < count; pass++ {
		for i := range room.Players {
			if len(gs.Deck) == 0 {
				return
			}
			card := gs.Deck[len(gs.Deck)-1]
			gs.Deck = gs.Deck[:len(gs.Deck)-1]
			room.Players[i].Hand = append(room.Players[i].Hand, card)
		}
	}
}

// NewGameState builds and deals a fresh game for the room: full deck,
// uniform shuffle, initial round-robin deal, turn order snapshotted from the
// current player list starting at index 0. Player hands are reset.
func NewGameState(rnd random.Random, room *model.Room) *model.GameState {
	deck := BuildDeck(room.Settings)
	ShuffleDeck(rnd, deck)

	turnOrder := make([]model.GuestID, len(room.Players))
	for i := range room.Players {
		turnOrder[i] = room.Players[i].GuestID
		room.Players[i].Hand = nil
	}

	room.GameState = &model.GameState{
		Status:             model.GameStatusActive,
		TurnOrder:          turnOrder,
		CurrentPlayerIndex: 0,
		TurnNumber:         0,
		Deck:               deck,
		DiscardPile:        []model.Card{},
		Table:              [][]model.Card{},
	}
	Deal(room, room.Settings.InitialDealCount)
	return room.GameState
}
