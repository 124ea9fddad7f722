package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/storage"
)

// Storage is an in-memory implementation of the RoomStore interface.
// The store mutex serializes every UpdateRoom per the storage contract.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*model.Room
	clock clock.Clock
}

// New creates a new in-memory room store
func New(clk clock.Clock) *Storage {
	return &Storage{
		rooms: make(map[model.RoomID]*model.Room),
		clock: clk,
	}
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return model.ErrRoomExists
	}
	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (s *Storage) ListRooms(ctx context.Context, skip, limit int) ([]*model.Room, error) {
	s.mu.RLock()
	all := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		all = append(all, cloneRoom(room))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(all) {
		return []*model.Room{}, nil
	}
	all = all[skip:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return model.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, id model.RoomID, fn storage.UpdateFunc) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	working := cloneRoom(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	working.UpdatedAt = now
	working.LastActivity = now

	s.rooms[id] = working
	return cloneRoom(working), nil
}

func (s *Storage) ListEmptyRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Room
	for _, room := range s.rooms {
		if len(room.Players) == 0 {
			result = append(result, cloneRoom(room))
		}
	}
	return result, nil
}

func (s *Storage) ListInactiveRooms(ctx context.Context, cutoff time.Time) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Room
	for _, room := range s.rooms {
		if room.LastActivity.Before(cutoff) {
			result = append(result, cloneRoom(room))
		}
	}
	return result, nil
}

func (s *Storage) Close() error {
	return nil
}

// cloneRoom deep-copies a room so callers only ever hold working copies,
// never references into the store
func cloneRoom(room *model.Room) *model.Room {
	data, err := json.Marshal(room)
	if err != nil {
		// Room contains only marshalable fields
		panic(err)
	}
	var out model.Room
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}
