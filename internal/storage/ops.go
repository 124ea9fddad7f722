package storage

import (
	"context"

	"github.com/cardtable/cardtable/internal/model"
)

// Targeted room mutations, built on RoomStore.UpdateRoom so every backend
// gets them atomically. These are the only write paths for membership and
// game-state changes outside room creation and deletion.

// UpsertPlayer adds a player to the room, or, if the guest already has a seat,
// refreshes only their connection binding. Reconnection must not clobber hand
// or ready state.
func UpsertPlayer(ctx context.Context, s RoomStore, id model.RoomID, player model.Player) (*model.Room, error) {
	return s.UpdateRoom(ctx, id, func(room *model.Room) error {
		if _, existing := room.FindPlayer(player.GuestID); existing != nil {
			existing.ConnectionID = player.ConnectionID
			return nil
		}
		if room.IsFull() {
			return model.ErrRoomFull
		}
		room.Players = append(room.Players, player)
		return nil
	})
}

// RemovePlayer removes a guest from the room. If the removed player was host
// and players remain, the earliest-joined remaining player becomes host.
func RemovePlayer(ctx context.Context, s RoomStore, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return s.UpdateRoom(ctx, id, func(room *model.Room) error {
		idx, player := room.FindPlayer(guestID)
		if player == nil {
			return model.ErrPlayerNotFound
		}
		room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
		if room.HostID == guestID && len(room.Players) > 0 {
			room.HostID = room.Players[0].GuestID
		}
		return nil
	})
}

// TogglePlayerReady flips a player's ready flag
func TogglePlayerReady(ctx context.Context, s RoomStore, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return s.UpdateRoom(ctx, id, func(room *model.Room) error {
		_, player := room.FindPlayer(guestID)
		if player == nil {
			return model.ErrPlayerNotFound
		}
		player.IsReady = !player.IsReady
		return nil
	})
}
