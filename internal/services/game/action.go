package game

import (
	"encoding/json"

	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/model"
)

// ActionType selects one variant from the closed action set
type ActionType string

const (
	ActionPlayCards         ActionType = "PLAY_CARDS"
	ActionDiscardCards      ActionType = "DISCARD_CARDS"
	ActionRecallCards       ActionType = "RECALL_CARDS"
	ActionMoveCardsToPlayer ActionType = "MOVE_CARDS_TO_PLAYER"
	ActionShuffleDeck       ActionType = "SHUFFLE_DECK"
	ActionDealCards         ActionType = "DEAL_CARDS"
	ActionDrawCard          ActionType = "DRAW_CARD"
	ActionDrawToDiscard     ActionType = "DRAW_TO_DISCARD"
	ActionDrawFromDiscard   ActionType = "DRAW_FROM_DISCARD"
	ActionUpdateHandOrder   ActionType = "UPDATE_HAND_ORDER"
)

// hostOnly gates the variants only the room host may perform. The check runs
// once at the dispatcher boundary, before validate/apply.
var hostOnly = map[ActionType]bool{
	ActionShuffleDeck: true,
	ActionDealCards:   true,
}

// IsHostOnly reports whether the action type requires the host capability
func IsHostOnly(t ActionType) bool {
	return hostOnly[t]
}

// Action is one variant of the player-action protocol. Validate must not
// mutate anything; Apply runs only after Validate succeeded and mutates the
// room's game state in place. Both run synchronously under the room's
// serialized update, so no partially applied state is ever observable.
type Action interface {
	Validate(actorIndex int, room *model.Room) error
	Apply(rnd random.Random, actorIndex int, room *model.Room)
}

// cardsPayload is the wire shape for actions that reference hand cards
type cardsPayload struct {
	Cards []model.Card `json:"cards"`
}

// DecodeAction maps an action type plus raw payload to its variant.
// Settings supply defaults (deal count). Unknown types and malformed
// payloads are validation failures, not server errors.
func DecodeAction(t ActionType, data json.RawMessage, settings model.Settings) (Action, error) {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	switch t {
	case ActionPlayCards:
		var p cardsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, model.ErrInvalidActionData
		}
		return &PlayCardsAction{CardIDs: model.CardIDs(p.Cards)}, nil

	case ActionDiscardCards:
		var p cardsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, model.ErrInvalidActionData
		}
		return &DiscardCardsAction{CardIDs: model.CardIDs(p.Cards)}, nil

	case ActionRecallCards:
		return &RecallCardsAction{}, nil

	case ActionMoveCardsToPlayer:
		var p struct {
			Cards          []model.Card  `json:"cards"`
			TargetPlayerID model.GuestID `json:"target_player_id"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, model.ErrInvalidActionData
		}
		return &MoveCardsToPlayerAction{
			CardIDs:        model.CardIDs(p.Cards),
			TargetPlayerID: p.TargetPlayerID,
		}, nil

	case ActionShuffleDeck:
		return &ShuffleDeckAction{}, nil

	case ActionDealCards:
		var p struct {
			Count *int `json:"count"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, model.ErrInvalidActionData
		}
		count := settings.InitialDealCount
		if p.Count != nil {
			count = *p.Count
		}
		if count < 0 {
			return nil, model.ErrInvalidActionData
		}
		return &DealCardsAction{Count: count}, nil

	case ActionDrawCard:
		return &DrawCardAction{}, nil

	case ActionDrawToDiscard:
		return &DrawToDiscardAction{}, nil

	case ActionDrawFromDiscard:
		return &DrawFromDiscardAction{}, nil

	case ActionUpdateHandOrder:
		var p cardsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, model.ErrInvalidActionData
		}
		return &UpdateHandOrderAction{CardIDs: model.CardIDs(p.Cards)}, nil

	default:
		return nil, model.ErrUnknownAction
	}
}

// PlayCardsAction moves cards from the actor's hand onto the table as one
// pile. The whole action is rejected if any referenced card is not in the
// actor's hand; nothing is silently dropped.
type PlayCardsAction struct {
	CardIDs []model.CardID
}

func (a *PlayCardsAction) Validate(actorIndex int, room *model.Room) error {
	if !HandContainsAll(room.Players[actorIndex].Hand, a.CardIDs) {
		return model.ErrCardNotOwned
	}
	return nil
}

func (a *PlayCardsAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	PlayCards(room, actorIndex, a.CardIDs)
}

// DiscardCardsAction moves cards from the actor's hand onto the discard pile
type DiscardCardsAction struct {
	CardIDs []model.CardID
}

func (a *DiscardCardsAction) Validate(actorIndex int, room *model.Room) error {
	if !HandContainsAll(room.Players[actorIndex].Hand, a.CardIDs) {
		return model.ErrCardNotOwned
	}
	return nil
}

func (a *DiscardCardsAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	DiscardCards(room, actorIndex, a.CardIDs)
}

// RecallCardsAction returns the actor's own last play or discard to their
// hand. Only the recorded last actor may recall, and only while the recorded
// cards are still where they were put.
type RecallCardsAction struct{}

func (a *RecallCardsAction) Validate(actorIndex int, room *model.Room) error {
	record := room.GameState.LastPlay
	if record == nil {
		return model.ErrNothingToRecall
	}
	if record.PlayerID != room.Players[actorIndex].GuestID {
		return model.ErrNotLastActor
	}
	if record.FromDiscard {
		ids := model.CardIDs(record.Cards)
		if !HandContainsAll(room.GameState.DiscardPile, ids) {
			return model.ErrNothingToRecall
		}
	} else if findPile(room.GameState.Table, record.Cards) < 0 {
		return model.ErrNothingToRecall
	}
	return nil
}

func (a *RecallCardsAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	RecallCards(room, actorIndex)
}

// MoveCardsToPlayerAction transfers cards from the actor's hand directly to
// another player's hand
type MoveCardsToPlayerAction struct {
	CardIDs        []model.CardID
	TargetPlayerID model.GuestID
}

func (a *MoveCardsToPlayerAction) Validate(actorIndex int, room *model.Room) error {
	if !HandContainsAll(room.Players[actorIndex].Hand, a.CardIDs) {
		return model.ErrCardNotOwned
	}
	if !room.HasPlayer(a.TargetPlayerID) {
		return model.ErrTargetNotFound
	}
	return nil
}

func (a *MoveCardsToPlayerAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	TransferCards(room, actorIndex, a.CardIDs, a.TargetPlayerID)
}

// ShuffleDeckAction (host only) folds every table pile back into the deck
// and shuffles it
type ShuffleDeckAction struct{}

func (a *ShuffleDeckAction) Validate(actorIndex int, room *model.Room) error {
	return nil
}

func (a *ShuffleDeckAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	ShuffleTableIntoDeck(rnd, room.GameState)
	// A shuffled-away play can no longer be recalled
	if lp := room.GameState.LastPlay; lp != nil && !lp.FromDiscard {
		room.GameState.LastPlay = nil
	}
}

// DealCardsAction (host only) round-robin deals Count cards per player from
// the deck tail
type DealCardsAction struct {
	Count int
}

func (a *DealCardsAction) Validate(actorIndex int, room *model.Room) error {
	return nil
}

func (a *DealCardsAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	Deal(room, a.Count)
}

// DrawCardAction moves one card from the deck tail to the actor's hand
type DrawCardAction struct{}

func (a *DrawCardAction) Validate(actorIndex int, room *model.Room) error {
	if len(room.GameState.Deck) == 0 {
		return model.ErrDeckEmpty
	}
	return nil
}

func (a *DrawCardAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	DrawCard(room, actorIndex)
}

// DrawToDiscardAction flips the top of the deck onto the discard pile
type DrawToDiscardAction struct{}

func (a *DrawToDiscardAction) Validate(actorIndex int, room *model.Room) error {
	if len(room.GameState.Deck) == 0 {
		return model.ErrDeckEmpty
	}
	return nil
}

func (a *DrawToDiscardAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	DrawToDiscard(room.GameState)
}

// DrawFromDiscardAction moves the most recent discard to the actor's hand
type DrawFromDiscardAction struct{}

func (a *DrawFromDiscardAction) Validate(actorIndex int, room *model.Room) error {
	if len(room.GameState.DiscardPile) == 0 {
		return model.ErrDiscardEmpty
	}
	return nil
}

func (a *DrawFromDiscardAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	DrawFromDiscard(room, actorIndex)
}

// UpdateHandOrderAction rearranges the actor's hand for display. The payload
// must be an exact permutation of the current hand; anything else is
// rejected so a forged ordering cannot inject or drop cards.
type UpdateHandOrderAction struct {
	CardIDs []model.CardID
}

func (a *UpdateHandOrderAction) Validate(actorIndex int, room *model.Room) error {
	if !IsHandPermutation(room.Players[actorIndex].Hand, a.CardIDs) {
		return model.ErrHandMismatch
	}
	return nil
}

func (a *UpdateHandOrderAction) Apply(rnd random.Random, actorIndex int, room *model.Room) {
	ReorderHand(room, actorIndex, a.CardIDs)
}
