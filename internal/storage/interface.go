package storage

import (
	"context"
	"time"

	"github.com/cardtable/cardtable/internal/model"
)

// UpdateFunc mutates a working copy of a room inside an atomic update.
// Returning an error aborts the update without persisting anything.
type UpdateFunc func(room *model.Room) error

// RoomStore defines the persistence interface for rooms.
//
// UpdateRoom is the serialization primitive: implementations must guarantee
// that concurrent updates to the same room id never lose each other's writes
// (memory: store-level locking; redis: WATCH/MULTI compare-and-swap with
// retry). Every read-modify-write in the application goes through it.
type RoomStore interface {
	// CreateRoom persists a new room. Returns model.ErrRoomExists if the id
	// is already taken, so racing code generators fail instead of overwriting.
	CreateRoom(ctx context.Context, room *model.Room) error

	// GetRoom returns a copy of the room, or model.ErrRoomNotFound
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)

	// ListRooms returns a newest-first page of rooms
	ListRooms(ctx context.Context, skip, limit int) ([]*model.Room, error)

	// DeleteRoom removes the room, or returns model.ErrRoomNotFound
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// RoomExists reports whether a room id is in use
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)

	// UpdateRoom atomically applies fn to the room and persists the result.
	// Every successful update counts as room activity, so UpdatedAt and
	// LastActivity are both refreshed. Returns the updated room, or
	// model.ErrRoomNotFound if the room does not exist (including deletion
	// racing the update).
	UpdateRoom(ctx context.Context, id model.RoomID, fn UpdateFunc) (*model.Room, error)

	// ListEmptyRooms returns rooms with zero players (sweep candidates)
	ListEmptyRooms(ctx context.Context) ([]*model.Room, error)

	// ListInactiveRooms returns rooms whose last activity is before cutoff
	ListInactiveRooms(ctx context.Context, cutoff time.Time) ([]*model.Room, error)

	Close() error
}
