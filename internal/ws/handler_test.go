package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/cardtable/internal/dependencies/mocks"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/auth"
	"github.com/cardtable/cardtable/internal/services/game"
	"github.com/cardtable/cardtable/internal/services/room"
	"github.com/cardtable/cardtable/internal/storage/memory"
	"github.com/cardtable/cardtable/internal/testutil"
)

type HandlerSuite struct {
	suite.Suite
	hub     *Hub
	handler *Handler
	rooms   *room.Controller
	random  *mocks.MockRandom
	ctx     context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	store := memory.New(clk)
	s.rooms = room.NewController(store, clk, s.random)
	dispatcher := game.NewDispatcher(store, s.random)
	authService := auth.New("test-secret", clk, auth.DefaultConfig())

	s.hub = NewHub(testutil.NopLogger())
	s.handler = NewHandler(s.hub, s.rooms, dispatcher, authService, testutil.NopLogger())
	s.ctx = context.Background()
}

// seatedClient registers a connection for a guest already subscribed to the room
func (s *HandlerSuite) seatedClient(id model.ConnectionID, guestID model.GuestID, roomID model.RoomID) *Client {
	client := newClient(id, auth.Guest{ID: guestID, Nickname: string(guestID)}, nil)
	s.hub.Register(client)
	s.hub.Subscribe(client, roomID)
	return client
}

func (s *HandlerSuite) drainFrames(client *Client) []Envelope {
	var frames []Envelope
	for {
		select {
		case data := <-client.send:
			var env Envelope
			s.Require().NoError(json.Unmarshal(data, &env))
			frames = append(frames, env)
		default:
			return frames
		}
	}
}

func (s *HandlerSuite) TestJoinRoomDeliveryContract() {
	s.random.QueueString("ab2c")
	_, err := s.rooms.CreateRoom(s.ctx, "host-1", "Hosty", "", "", nil)
	s.Require().NoError(err)

	host := s.seatedClient("c-host", "host-1", "ab2c")

	joiner := newClient("c-join", auth.Guest{ID: "guest-2", Nickname: "Bobby"}, nil)
	s.hub.Register(joiner)

	s.handler.handleJoinRoom(s.ctx, joiner, json.RawMessage(`{"room_id":"ab2c"}`))

	// Existing members see only the lightweight notification, never the full
	// projection and never a self-echo of the joiner's state
	hostFrames := s.drainFrames(host)
	s.Require().Len(hostFrames, 1)
	s.Equal("player_joined", hostFrames[0].Event)

	var notice model.PlayerJoinedPayload
	s.Require().NoError(json.Unmarshal(hostFrames[0].Data, &notice))
	s.Equal(model.GuestID("guest-2"), notice.GuestID)
	s.Equal("Bobby", notice.Nickname)

	// The joiner gets the full projection directed at them, and no
	// notification about their own join
	joinerFrames := s.drainFrames(joiner)
	s.Require().Len(joinerFrames, 1)
	s.Equal("room_joined", joinerFrames[0].Event)

	var projection struct {
		RoomID         model.RoomID `json:"room_id"`
		CurrentPlayers int          `json:"current_players"`
	}
	s.Require().NoError(json.Unmarshal(joinerFrames[0].Data, &projection))
	s.Equal(model.RoomID("ab2c"), projection.RoomID)
	s.Equal(2, projection.CurrentPlayers)
}

func (s *HandlerSuite) TestJoinMissingRoomOnlyErrorsTheSender() {
	stranger := s.seatedClient("c1", "g1", "zz99")

	joiner := newClient("c2", auth.Guest{ID: "g2", Nickname: "g2"}, nil)
	s.hub.Register(joiner)

	s.handler.handleJoinRoom(s.ctx, joiner, json.RawMessage(`{"room_id":"nope"}`))

	frames := s.drainFrames(joiner)
	s.Require().Len(frames, 1)
	s.Equal("error", frames[0].Event)
	s.Empty(s.drainFrames(stranger))
}
