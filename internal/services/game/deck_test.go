package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/cardtable/internal/dependencies/mocks"
	"github.com/cardtable/cardtable/internal/model"
)

type DeckSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckSuite))
}

func (s *DeckSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

func (s *DeckSuite) TestBuildDeckSingleDeck() {
	deck := BuildDeck(model.Settings{NumberOfDecks: 1, MaxPlayers: 4})

	s.Len(deck, 52)
	s.Equal(model.CardID("H2-0"), deck[0].ID)
	s.Equal(model.SuitHearts, deck[0].Suit)
	s.Equal(model.Rank("2"), deck[0].Rank)
	s.Equal(0, deck[0].DeckIndex)
	s.Equal(model.CardID("SA-0"), deck[51].ID)
}

func (s *DeckSuite) TestBuildDeckWithJokers() {
	deck := BuildDeck(model.Settings{NumberOfDecks: 1, IncludeJokers: true, MaxPlayers: 4})

	s.Len(deck, 54)
	s.Equal(model.CardID("Joker-Red-0"), deck[52].ID)
	s.Equal(model.CardID("Joker-Black-0"), deck[53].ID)
}

func (s *DeckSuite) TestBuildDeckMultipleDecks() {
	deck := BuildDeck(model.Settings{NumberOfDecks: 2, IncludeJokers: true, MaxPlayers: 4})

	s.Len(deck, 108)
	// Cards from different decks share suit and rank but not identity
	s.Equal(model.CardID("H2-0"), deck[0].ID)
	s.Equal(model.CardID("H2-1"), deck[54].ID)
}

func (s *DeckSuite) TestTotalCards() {
	s.Equal(52, TotalCards(model.Settings{NumberOfDecks: 1}))
	s.Equal(54, TotalCards(model.Settings{NumberOfDecks: 1, IncludeJokers: true}))
	s.Equal(216, TotalCards(model.Settings{NumberOfDecks: 4, IncludeJokers: true}))
}

func (s *DeckSuite) TestDealRoundRobin() {
	room := roomWithPlayers("p1", "p2", "p3")
	room.GameState = &model.GameState{
		Deck: BuildDeck(model.Settings{NumberOfDecks: 1}),
	}

	Deal(room, 2)

	for i := range room.Players {
		s.Len(room.Players[i].Hand, 2)
	}
	s.Len(room.GameState.Deck, 46)

	// First pass deals one card to each player before the second card
	s.Equal(model.CardID("SA-0"), room.Players[0].Hand[0].ID)
	s.Equal(model.CardID("SK-0"), room.Players[1].Hand[0].ID)
	s.Equal(model.CardID("SQ-0"), room.Players[2].Hand[0].ID)
}

func (s *DeckSuite) TestDealStopsWhenDeckExhausted() {
	room := roomWithPlayers("p1", "p2")
	room.GameState = &model.GameState{
		Deck: BuildDeck(model.Settings{NumberOfDecks: 1})[:3],
	}

	Deal(room, 2)

	s.Empty(room.GameState.Deck)
	s.Len(room.Players[0].Hand, 2)
	s.Len(room.Players[1].Hand, 1)
}

func (s *DeckSuite) TestNewGameState() {
	room := roomWithPlayers("p1", "p2", "p3", "p4")
	room.Settings = model.Settings{NumberOfDecks: 1, MaxPlayers: 4, InitialDealCount: 5}

	gs := NewGameState(s.random, room)

	s.Equal(model.GameStatusActive, gs.Status)
	s.Equal([]model.GuestID{"p1", "p2", "p3", "p4"}, gs.TurnOrder)
	s.Equal(0, gs.CurrentPlayerIndex)
	s.Equal(0, gs.TurnNumber)
	s.Len(gs.Deck, 32)
	s.Empty(gs.DiscardPile)
	s.Empty(gs.Table)
	for i := range room.Players {
		s.Len(room.Players[i].Hand, 5)
	}
}

func (s *DeckSuite) TestNewGameStateResetsHands() {
	room := roomWithPlayers("p1", "p2")
	room.Settings = model.Settings{NumberOfDecks: 1, MaxPlayers: 2, InitialDealCount: 0}
	room.Players[0].Hand = []model.Card{model.NewCard(model.SuitHearts, "7", 0)}

	gs := NewGameState(s.random, room)

	s.Empty(room.Players[0].Hand)
	s.Len(gs.Deck, 52)
}

// roomWithPlayers builds a waiting room with the given guests seated
func roomWithPlayers(ids ...model.GuestID) *model.Room {
	players := make([]model.Player, len(ids))
	for i, id := range ids {
		players[i] = model.Player{
			GuestID:  id,
			Nickname: string(id),
			IsReady:  true,
		}
	}
	return &model.Room{
		ID:      "test",
		HostID:  ids[0],
		Players: players,
		Status:  model.RoomStatusWaiting,
		Settings: model.Settings{
			NumberOfDecks: 1,
			MaxPlayers:    8,
		},
	}
}
