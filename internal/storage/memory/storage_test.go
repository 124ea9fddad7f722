package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/cardtable/internal/dependencies/mocks"
	"github.com/cardtable/cardtable/internal/model"
)

type StorageSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) newRoom(id model.RoomID) *model.Room {
	now := s.clock.Now()
	return &model.Room{
		ID:     id,
		HostID: "host-1",
		Players: []model.Player{
			{GuestID: "host-1", Nickname: "Hosty", IsReady: true},
		},
		Status:       model.RoomStatusWaiting,
		GameType:     model.DefaultGameType,
		Settings:     model.DefaultSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActivity: now,
	}
}

func (s *StorageSuite) TestCreateAndGetRoom() {
	room := s.newRoom("ab2c")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, room))

	retrieved, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.Require().NoError(err)
	s.Equal(room.ID, retrieved.ID)
	s.Equal(room.HostID, retrieved.HostID)
}

func (s *StorageSuite) TestCreateDuplicateRoom() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))

	err := s.storage.CreateRoom(s.ctx, s.newRoom("ab2c"))
	s.ErrorIs(err, model.ErrRoomExists)
}

func (s *StorageSuite) TestGetMissingRoom() {
	_, err := s.storage.GetRoom(s.ctx, "nope")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetReturnsIsolatedCopy() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))

	first, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.Require().NoError(err)
	first.Players[0].Nickname = "Mutated"

	second, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.Require().NoError(err)
	s.Equal("Hosty", second.Players[0].Nickname)
}

func (s *StorageSuite) TestListRoomsNewestFirst() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("aaaa")))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("bbbb")))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("cccc")))

	rooms, err := s.storage.ListRooms(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(rooms, 3)
	s.Equal(model.RoomID("cccc"), rooms[0].ID)
	s.Equal(model.RoomID("aaaa"), rooms[2].ID)
}

func (s *StorageSuite) TestListRoomsPagination() {
	for _, id := range []model.RoomID{"aaaa", "bbbb", "cccc"} {
		s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom(id)))
		s.clock.Advance(time.Minute)
	}

	rooms, err := s.storage.ListRooms(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal(model.RoomID("bbbb"), rooms[0].ID)

	rooms, err = s.storage.ListRooms(s.ctx, 5, 10)
	s.Require().NoError(err)
	s.Empty(rooms)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ab2c"))

	_, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.ErrorIs(err, model.ErrRoomNotFound)

	s.ErrorIs(s.storage.DeleteRoom(s.ctx, "ab2c"), model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))

	exists, err := s.storage.RoomExists(s.ctx, "ab2c")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "nope")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestUpdateRoomAppliesAndStamps() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))
	s.clock.Advance(time.Hour)

	updated, err := s.storage.UpdateRoom(s.ctx, "ab2c", func(room *model.Room) error {
		room.Name = "renamed"
		return nil
	})
	s.Require().NoError(err)
	s.Equal("renamed", updated.Name)
	s.Equal(s.clock.Now(), updated.UpdatedAt)
	s.Equal(s.clock.Now(), updated.LastActivity)
}

func (s *StorageSuite) TestUpdateRoomErrorDiscardsChanges() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))
	boom := errors.New("boom")

	_, err := s.storage.UpdateRoom(s.ctx, "ab2c", func(room *model.Room) error {
		room.Name = "should not persist"
		return boom
	})
	s.ErrorIs(err, boom)

	retrieved, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.Require().NoError(err)
	s.Empty(retrieved.Name)
}

func (s *StorageSuite) TestUpdateMissingRoom() {
	_, err := s.storage.UpdateRoom(s.ctx, "nope", func(room *model.Room) error {
		return nil
	})
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestConcurrentUpdatesAllApply() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, s.newRoom("ab2c")))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.storage.UpdateRoom(s.ctx, "ab2c", func(room *model.Room) error {
				room.GameType = room.GameType + "x"
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	retrieved, err := s.storage.GetRoom(s.ctx, "ab2c")
	s.Require().NoError(err)
	// Every increment survived; none were lost to interleaving
	s.Len(retrieved.GameType, len(model.DefaultGameType)+writers)
}

func (s *StorageSuite) TestListEmptyRooms() {
	occupied := s.newRoom("aaaa")
	empty := s.newRoom("bbbb")
	empty.Players = nil
	s.Require().NoError(s.storage.CreateRoom(s.ctx, occupied))
	s.Require().NoError(s.storage.CreateRoom(s.ctx, empty))

	rooms, err := s.storage.ListEmptyRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal(model.RoomID("bbbb"), rooms[0].ID)
}

func (s *StorageSuite) TestListInactiveRooms() {
	stale := s.newRoom("aaaa")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, stale))

	s.clock.Advance(2 * time.Hour)
	fresh := s.newRoom("bbbb")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, fresh))

	cutoff := s.clock.Now().Add(-time.Hour)
	rooms, err := s.storage.ListInactiveRooms(s.ctx, cutoff)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal(model.RoomID("aaaa"), rooms[0].ID)
}
