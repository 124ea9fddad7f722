package game

import (
	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/model"
)

// Card-movement primitives. Callers (the action variants) are responsible
// for validation; these assume the referenced cards are present and mutate
// the room's game state in place, preserving card conservation.

// removeFromHand extracts the given card ids from a hand, preserving the
// relative order of both the removed cards and the remainder. The removed
// slice is returned in hand order.
func removeFromHand(hand []model.Card, ids []model.CardID) (removed, remaining []model.Card) {
	want := make(map[model.CardID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, card := range hand {
		if want[card.ID] {
			removed = append(removed, card)
		} else {
			remaining = append(remaining, card)
		}
	}
	return removed, remaining
}

// HandContainsAll reports whether every id refers to a card in the hand
func HandContainsAll(hand []model.Card, ids []model.CardID) bool {
	have := make(map[model.CardID]bool, len(hand))
	for _, card := range hand {
		have[card.ID] = true
	}
	for _, id := range ids {
		if !have[id] {
			return false
		}
	}
	return true
}

// PlayCards moves the identified cards from the actor's hand onto the table
// as one new pile and records the play for recall
func PlayCards(room *model.Room, actorIndex int, ids []model.CardID) {
	gs := room.GameState
	player := &room.Players[actorIndex]

	played, remaining := removeFromHand(player.Hand, ids)
	player.Hand = remaining
	gs.Table = append(gs.Table, played)
	gs.LastPlay = &model.LastPlay{
		PlayerID: player.GuestID,
		Cards:    played,
	}
}

// DiscardCards moves the identified cards from the actor's hand onto the
// discard pile individually (flattened) and records the discard for recall
func DiscardCards(room *model.Room, actorIndex int, ids []model.CardID) {
	gs := room.GameState
	player := &room.Players[actorIndex]

	discarded, remaining := removeFromHand(player.Hand, ids)
	player.Hand = remaining
	gs.DiscardPile = append(gs.DiscardPile, discarded...)
	gs.LastPlay = &model.LastPlay{
		PlayerID:    player.GuestID,
		Cards:       discarded,
		FromDiscard: true,
	}
}

// RecallCards returns the recorded last play/discard to the actor's hand and
// clears the record. Reports whether the recorded cards were actually found
// in their recorded location (a shuffle may have consumed a table pile).
func RecallCards(room *model.Room, actorIndex int) bool {
	gs := room.GameState
	record := gs.LastPlay
	if record == nil {
		return false
	}
	player := &room.Players[actorIndex]

	if record.FromDiscard {
		ids := make(map[model.CardID]bool, len(record.Cards))
		for _, c := range record.Cards {
			ids[c.ID] = true
		}
		var kept, recalled []model.Card
		for _, card := range gs.DiscardPile {
			if ids[card.ID] {
				recalled = append(recalled, card)
			} else {
				kept = append(kept, card)
			}
		}
		if len(recalled) != len(record.Cards) {
			return false
		}
		gs.DiscardPile = kept
		player.Hand = append(player.Hand, recalled...)
	} else {
		pileIdx := findPile(gs.Table, record.Cards)
		if pileIdx < 0 {
			return false
		}
		player.Hand = append(player.Hand, gs.Table[pileIdx]...)
		gs.Table = append(gs.Table[:pileIdx], gs.Table[pileIdx+1:]...)
	}

	gs.LastPlay = nil
	return true
}

// findPile locates the table pile holding exactly the recorded cards
func findPile(table [][]model.Card, cards []model.Card) int {
	for i, pile := range table {
		if len(pile) != len(cards) {
			continue
		}
		match := true
		for j := range pile {
			if pile[j].ID != cards[j].ID {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// TransferCards moves the identified cards from the actor's hand into the
// target player's hand; no shared pile is involved
func TransferCards(room *model.Room, actorIndex int, ids []model.CardID, targetID model.GuestID) {
	player := &room.Players[actorIndex]
	moved, remaining := removeFromHand(player.Hand, ids)
	player.Hand = remaining

	_, target := room.FindPlayer(targetID)
	target.Hand = append(target.Hand, moved...)
}

// ShuffleTableIntoDeck flattens every table pile back into the deck, clears
// the table and uniform-shuffles the deck
func ShuffleTableIntoDeck(rnd random.Random, gs *model.GameState) {
	for _, pile := range gs.Table {
		gs.Deck = append(gs.Deck, pile...)
	}
	gs.Table = [][]model.Card{}
	ShuffleDeck(rnd, gs.Deck)
}

// DrawCard moves one card from the deck tail to the actor's hand
func DrawCard(room *model.Room, actorIndex int) {
	gs := room.GameState
	card := gs.Deck[len(gs.Deck)-1]
	gs.Deck = gs.Deck[:len(gs.Deck)-1]
	room.Players[actorIndex].Hand = append(room.Players[actorIndex].Hand, card)
}

// DrawToDiscard moves one card from the deck tail straight onto the discard
// pile
func DrawToDiscard(gs *model.GameState) {
	card := gs.Deck[len(gs.Deck)-1]
	gs.Deck = gs.Deck[:len(gs.Deck)-1]
	gs.DiscardPile = append(gs.DiscardPile, card)
}

// DrawFromDiscard moves the most recent discard to the actor's hand
func DrawFromDiscard(room *model.Room, actorIndex int) {
	gs := room.GameState
	card := gs.DiscardPile[len(gs.DiscardPile)-1]
	gs.DiscardPile = gs.DiscardPile[:len(gs.DiscardPile)-1]
	room.Players[actorIndex].Hand = append(room.Players[actorIndex].Hand, card)
}

// ReorderHand rearranges the actor's hand into the given id order. Only the
// ordering comes from the client; the card values stay the server's own, so a
// forged payload cannot inject or alter cards. Callers must have verified the
// ids are an exact permutation of the current hand.
func ReorderHand(room *model.Room, actorIndex int, ids []model.CardID) {
	player := &room.Players[actorIndex]
	byID := make(map[model.CardID]model.Card, len(player.Hand))
	for _, card := range player.Hand {
		byID[card.ID] = card
	}
	reordered := make([]model.Card, 0, len(ids))
	for _, id := range ids {
		reordered = append(reordered, byID[id])
	}
	player.Hand = reordered
}

// IsHandPermutation reports whether ids are exactly the current hand's card
// ids, in any order
func IsHandPermutation(hand []model.Card, ids []model.CardID) bool {
	if len(hand) != len(ids) {
		return false
	}
	seen := make(map[model.CardID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return HandContainsAll(hand, ids)
}
