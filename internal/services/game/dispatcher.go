package game

import (
	"context"
	"encoding/json"

	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/storage"
)

// Dispatcher runs player actions against rooms. Each dispatch is one atomic
// room update: decode, gate, validate, apply and turn advance all happen
// inside the store's serialized update, so two racing actions on the same
// room are applied one after the other against fresh state.
type Dispatcher struct {
	storage storage.RoomStore
	random  random.Random
}

// NewDispatcher creates a new action dispatcher
func NewDispatcher(storage storage.RoomStore, random random.Random) *Dispatcher {
	return &Dispatcher{
		storage: storage,
		random:  random,
	}
}

// Dispatch executes one action by a room member. On any failure the room is
// left untouched; the returned error is one of the model sentinels for
// anything the actor did wrong.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	roomID model.RoomID,
	actor model.GuestID,
	actionType ActionType,
	data json.RawMessage,
) (*model.Room, error) {
	return d.storage.UpdateRoom(ctx, roomID, func(room *model.Room) error {
		actorIndex, player := room.FindPlayer(actor)
		if player == nil {
			return model.ErrPlayerNotFound
		}
		if room.Status != model.RoomStatusActive || room.GameState == nil ||
			room.GameState.Status != model.GameStatusActive {
			return model.ErrGameNotStarted
		}
		if IsHostOnly(actionType) && actor != room.HostID {
			return model.ErrNotHost
		}

		action, err := DecodeAction(actionType, data, room.Settings)
		if err != nil {
			return err
		}
		if err := action.Validate(actorIndex, room); err != nil {
			return err
		}

		action.Apply(d.random, actorIndex, room)
		room.GameState.AdvanceTurn()
		return nil
	})
}
