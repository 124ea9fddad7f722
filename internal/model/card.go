package model

import "fmt"

// CardID uniquely identifies a card within a room's full card set
type CardID string

// Suit is one of the four standard suits, or a joker color tag
type Suit string

const (
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitSpades   Suit = "S"

	// Joker suits carry the joker's color instead of a real suit
	SuitJokerRed   Suit = "Red"
	SuitJokerBlack Suit = "Black"
)

// Rank is a card rank: "2"-"10", "J", "Q", "K", "A", or "Joker"
type Rank string

const RankJoker Rank = "Joker"

// Suits lists the four standard suits in deck-construction order
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Ranks lists the thirteen standard ranks in deck-construction order
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is an immutable playing card. DeckIndex disambiguates duplicates in
// multi-deck games; membership checks go by ID.
type Card struct {
	ID        CardID `json:"id"`
	Suit      Suit   `json:"suit"`
	Rank      Rank   `json:"rank"`
	DeckIndex int    `json:"deck_index"`
}

// NewCard builds a standard card with its canonical ID ("H7-0", "SA-1", ...)
func NewCard(suit Suit, rank Rank, deckIndex int) Card {
	return Card{
		ID:        CardID(fmt.Sprintf("%s%s-%d", suit, rank, deckIndex)),
		Suit:      suit,
		Rank:      rank,
		DeckIndex: deckIndex,
	}
}

// NewJoker builds a joker card tagged with its color suit ("Joker-Red-0", ...)
func NewJoker(color Suit, deckIndex int) Card {
	return Card{
		ID:        CardID(fmt.Sprintf("Joker-%s-%d", color, deckIndex)),
		Suit:      color,
		Rank:      RankJoker,
		DeckIndex: deckIndex,
	}
}

// CardIDs extracts the IDs of a card sequence, preserving order
func CardIDs(cards []Card) []CardID {
	ids := make([]CardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
