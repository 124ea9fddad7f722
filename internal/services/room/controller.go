package room

import (
	"context"
	"errors"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/dependencies/random"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/game"
	"github.com/cardtable/cardtable/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes. Lowercase plus
	// digits with the lookalikes o/0 and i/1 removed.
	RoomCodeAlphabet = "abcdefghjklmnpqrstuvwxyz23456789"
	// createAttempts bounds the code generation loop so a near-full code
	// space fails loudly instead of spinning
	createAttempts = 32
)

// Controller manages the room lifecycle and membership operations
type Controller struct {
	storage storage.RoomStore
	clock   clock.Clock
	random  random.Random
}

// NewController creates a new room controller
func NewController(storage storage.RoomStore, clock clock.Clock, random random.Random) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// CreateRoom creates a new room with the creator seated as host, already
// marked ready. Nil settings fall back to the defaults. The generated code is
// claimed via the store's duplicate check, so two creators racing onto the
// same code cannot both win; the loser draws a fresh code and retries.
func (c *Controller) CreateRoom(
	ctx context.Context,
	host model.GuestID,
	hostNickname string,
	name string,
	gameType string,
	settings *model.Settings,
) (*model.Room, error) {
	effective := model.DefaultSettings()
	if settings != nil {
		effective = *settings
	}
	if err := effective.Validate(); err != nil {
		return nil, err
	}
	if gameType == "" {
		gameType = model.DefaultGameType
	}

	now := c.clock.Now()
	room := &model.Room{
		Name:   name,
		HostID: host,
		Players: []model.Player{
			{
				GuestID:  host,
				Nickname: hostNickname,
				IsReady:  true,
			},
		},
		Status:       model.RoomStatusWaiting,
		GameType:     gameType,
		Settings:     effective,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActivity: now,
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		room.ID = model.RoomID(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		err := c.storage.CreateRoom(ctx, room)
		if errors.Is(err, model.ErrRoomExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return room, nil
	}
	return nil, model.ErrRoomExists
}

// GetRoom retrieves a room by id
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// ListRooms returns a newest-first page of rooms
func (c *Controller) ListRooms(ctx context.Context, skip, limit int) ([]*model.Room, error) {
	return c.storage.ListRooms(ctx, skip, limit)
}

// JoinRoom seats a guest in the room, or refreshes their connection binding
// if they already hold a seat
func (c *Controller) JoinRoom(
	ctx context.Context,
	id model.RoomID,
	guestID model.GuestID,
	nickname string,
	connectionID model.ConnectionID,
) (*model.Room, error) {
	return storage.UpsertPlayer(ctx, c.storage, id, model.Player{
		GuestID:      guestID,
		Nickname:     nickname,
		ConnectionID: connectionID,
	})
}

// LeaveRoom removes a guest from the room. Host reassignment happens in the
// storage op; an emptied room is left for the sweeper rather than deleted
// inline, so a leave never races a concurrent join into a lost room.
func (c *Controller) LeaveRoom(ctx context.Context, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return storage.RemovePlayer(ctx, c.storage, id, guestID)
}

// ToggleReady flips a player's ready flag
func (c *Controller) ToggleReady(ctx context.Context, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return storage.TogglePlayerReady(ctx, c.storage, id, guestID)
}

// StartGame transitions a waiting room into an active game: full deck built
// and shuffled, initial hands dealt, turn order fixed to the current seating.
// Host only; requires the minimum player count and every player ready.
func (c *Controller) StartGame(ctx context.Context, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return c.storage.UpdateRoom(ctx, id, func(room *model.Room) error {
		if room.HostID != guestID {
			return model.ErrNotHost
		}
		if room.Status == model.RoomStatusActive {
			return model.ErrGameInProgress
		}
		if len(room.Players) < model.MinPlayers {
			return model.ErrInsufficientPlayers
		}
		if !room.AllReady() {
			return model.ErrPlayersNotReady
		}

		game.NewGameState(c.random, room)
		room.Status = model.RoomStatusActive
		return nil
	})
}

// RestartGame resets an already-started room and deals a fresh game with the
// same seating. Everyone is marked ready again, so there is no re-ready
// round between games. Host only.
func (c *Controller) RestartGame(ctx context.Context, id model.RoomID, guestID model.GuestID) (*model.Room, error) {
	return c.storage.UpdateRoom(ctx, id, func(room *model.Room) error {
		if room.HostID != guestID {
			return model.ErrNotHost
		}
		if room.GameState == nil {
			return model.ErrGameNotStarted
		}

		for i := range room.Players {
			room.Players[i].IsReady = true
		}
		game.NewGameState(c.random, room)
		room.Status = model.RoomStatusActive
		return nil
	})
}
