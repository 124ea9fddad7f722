package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/cardtable/internal/dependencies/mocks"
	"github.com/cardtable/cardtable/internal/model"
)

type MovesSuite struct {
	suite.Suite
	random *mocks.MockRandom
	room   *model.Room
}

func TestMovesSuite(t *testing.T) {
	suite.Run(t, new(MovesSuite))
}

func (s *MovesSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.room = roomWithPlayers("p1", "p2", "p3")
	s.room.Settings.InitialDealCount = 3
	s.room.Status = model.RoomStatusActive
	NewGameState(s.random, s.room)
}

// countCards sums every card in play across deck, hands, discard and table
func (s *MovesSuite) countCards() int {
	gs := s.room.GameState
	total := len(gs.Deck) + len(gs.DiscardPile)
	for _, pile := range gs.Table {
		total += len(pile)
	}
	for i := range s.room.Players {
		total += len(s.room.Players[i].Hand)
	}
	return total
}

func (s *MovesSuite) handIDs(playerIndex int, count int) []model.CardID {
	hand := s.room.Players[playerIndex].Hand
	s.Require().GreaterOrEqual(len(hand), count)
	return model.CardIDs(hand[:count])
}

func (s *MovesSuite) TestPlayCardsCreatesTablePile() {
	ids := s.handIDs(0, 2)

	PlayCards(s.room, 0, ids)

	gs := s.room.GameState
	s.Len(s.room.Players[0].Hand, 1)
	s.Require().Len(gs.Table, 1)
	s.Equal(ids, model.CardIDs(gs.Table[0]))
	s.Require().NotNil(gs.LastPlay)
	s.Equal(model.GuestID("p1"), gs.LastPlay.PlayerID)
	s.False(gs.LastPlay.FromDiscard)
	s.Equal(52, s.countCards())
}

func (s *MovesSuite) TestDiscardCardsFlattensOntoPile() {
	ids := s.handIDs(1, 2)

	DiscardCards(s.room, 1, ids)

	gs := s.room.GameState
	s.Len(s.room.Players[1].Hand, 1)
	s.Equal(ids, model.CardIDs(gs.DiscardPile))
	s.Require().NotNil(gs.LastPlay)
	s.True(gs.LastPlay.FromDiscard)
	s.Equal(52, s.countCards())
}

func (s *MovesSuite) TestRecallPlayedPile() {
	ids := s.handIDs(0, 2)
	PlayCards(s.room, 0, ids)

	ok := RecallCards(s.room, 0)

	s.True(ok)
	s.Len(s.room.Players[0].Hand, 3)
	s.Empty(s.room.GameState.Table)
	s.Nil(s.room.GameState.LastPlay)
	s.Equal(52, s.countCards())
}

func (s *MovesSuite) TestRecallDiscardedCards() {
	ids := s.handIDs(1, 2)
	DiscardCards(s.room, 1, ids)

	ok := RecallCards(s.room, 1)

	s.True(ok)
	s.Len(s.room.Players[1].Hand, 3)
	s.Empty(s.room.GameState.DiscardPile)
	s.Nil(s.room.GameState.LastPlay)
}

func (s *MovesSuite) TestRecallOnlyRemovesRecalledDiscards() {
	DiscardCards(s.room, 0, s.handIDs(0, 1))
	DiscardCards(s.room, 1, s.handIDs(1, 2))

	ok := RecallCards(s.room, 1)

	s.True(ok)
	// Player 1's earlier discard stays on the pile
	s.Len(s.room.GameState.DiscardPile, 1)
	s.Len(s.room.Players[1].Hand, 3)
}

func (s *MovesSuite) TestRecallFailsWhenPileShuffledAway() {
	PlayCards(s.room, 0, s.handIDs(0, 2))
	ShuffleTableIntoDeck(s.random, s.room.GameState)

	ok := RecallCards(s.room, 0)

	s.False(ok)
	s.Len(s.room.Players[0].Hand, 1)
}

func (s *MovesSuite) TestRecallWithNoRecord() {
	s.False(RecallCards(s.room, 0))
}

func (s *MovesSuite) TestTransferCards() {
	ids := s.handIDs(0, 2)

	TransferCards(s.room, 0, ids, "p3")

	s.Len(s.room.Players[0].Hand, 1)
	s.Len(s.room.Players[2].Hand, 5)
	s.Equal(52, s.countCards())
}

func (s *MovesSuite) TestShuffleTableIntoDeck() {
	PlayCards(s.room, 0, s.handIDs(0, 2))
	deckBefore := len(s.room.GameState.Deck)

	ShuffleTableIntoDeck(s.random, s.room.GameState)

	s.Empty(s.room.GameState.Table)
	s.Len(s.room.GameState.Deck, deckBefore+2)
	s.Equal(52, s.countCards())
}

func (s *MovesSuite) TestDrawCard() {
	top := s.room.GameState.Deck[len(s.room.GameState.Deck)-1]

	DrawCard(s.room, 2)

	s.Len(s.room.Players[2].Hand, 4)
	s.Equal(top.ID, s.room.Players[2].Hand[3].ID)
}

func (s *MovesSuite) TestDrawToDiscardAndBack() {
	top := s.room.GameState.Deck[len(s.room.GameState.Deck)-1]

	DrawToDiscard(s.room.GameState)
	s.Equal(top.ID, s.room.GameState.DiscardPile[0].ID)

	DrawFromDiscard(s.room, 0)
	s.Empty(s.room.GameState.DiscardPile)
	s.Equal(top.ID, s.room.Players[0].Hand[3].ID)
}

func (s *MovesSuite) TestReorderHand() {
	hand := s.room.Players[0].Hand
	reversed := []model.CardID{hand[2].ID, hand[1].ID, hand[0].ID}

	s.True(IsHandPermutation(hand, reversed))
	ReorderHand(s.room, 0, reversed)

	s.Equal(reversed, model.CardIDs(s.room.Players[0].Hand))
}

func (s *MovesSuite) TestIsHandPermutationRejectsMismatch() {
	hand := s.room.Players[0].Hand

	s.False(IsHandPermutation(hand, model.CardIDs(hand[:2])))
	s.False(IsHandPermutation(hand, []model.CardID{hand[0].ID, hand[0].ID, hand[1].ID}))
	s.False(IsHandPermutation(hand, []model.CardID{hand[0].ID, hand[1].ID, "HA-9"}))
}

func (s *MovesSuite) TestHandContainsAll() {
	hand := s.room.Players[0].Hand

	s.True(HandContainsAll(hand, model.CardIDs(hand)))
	s.False(HandContainsAll(hand, []model.CardID{"nope"}))
}
