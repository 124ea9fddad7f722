package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cardtable/cardtable/internal/api/response"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/auth"
	"github.com/cardtable/cardtable/internal/services/game"
	"github.com/cardtable/cardtable/internal/services/room"
)

// Inbound event names
const (
	msgJoinRoom     = "join_room"
	msgLeaveRoom    = "leave_room"
	msgStartGame    = "start_game"
	msgPlayerAction = "player_action"
)

// handleTimeout bounds the storage work done for a single inbound message
const handleTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades connections and routes inbound events to the room
// controller and the action dispatcher. Failures of a client's own request
// go back to that client only; accepted state changes are broadcast to the
// whole room.
type Handler struct {
	hub        *Hub
	rooms      *room.Controller
	dispatcher *game.Dispatcher
	auth       *auth.Service
	logger     *slog.Logger
}

// NewHandler creates a new websocket handler
func NewHandler(
	hub *Hub,
	rooms *room.Controller,
	dispatcher *game.Dispatcher,
	authService *auth.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:        hub,
		rooms:      rooms,
		dispatcher: dispatcher,
		auth:       authService,
		logger:     logger,
	}
}

// HandleWS handles GET /ws?token=...
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	guest, err := h.auth.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(model.ConnectionID(uuid.NewString()), *guest, conn)
	h.hub.Register(client)
	h.logger.Info("guest connected",
		"guest_id", guest.ID,
		"connection_id", client.ID,
	)

	go client.writePump()
	h.readPump(client)
}

// readPump reads inbound frames until the connection drops, then runs the
// disconnect flow. Runs on the request goroutine.
func (h *Handler) readPump(client *Client) {
	defer h.disconnect(client)

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Info("websocket read error",
					"connection_id", client.ID,
					"error", err,
				)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.sendError(client, "malformed message")
			continue
		}
		h.route(client, env)
	}
}

// disconnect removes the client from the hub and plays a leave for every
// room it had joined, so seats do not linger behind dead connections
func (h *Handler) disconnect(client *Client) {
	client.conn.Close()
	joined := h.hub.Unregister(client)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	for _, roomID := range joined {
		h.playerLeft(ctx, client, roomID)
	}
	h.logger.Info("guest disconnected",
		"guest_id", client.Guest.ID,
		"connection_id", client.ID,
	)
}

func (h *Handler) route(client *Client, env Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	switch env.Event {
	case msgJoinRoom:
		h.handleJoinRoom(ctx, client, env.Data)
	case msgLeaveRoom:
		h.handleLeaveRoom(ctx, client, env.Data)
	case msgStartGame:
		h.handleStartGame(ctx, client, env.Data)
	case msgPlayerAction:
		h.handlePlayerAction(ctx, client, env.Data)
	default:
		h.sendError(client, "unknown event: "+env.Event)
	}
}

type roomRef struct {
	RoomID model.RoomID `json:"room_id"`
}

func (h *Handler) handleJoinRoom(ctx context.Context, client *Client, data json.RawMessage) {
	var req roomRef
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		h.sendError(client, "room_id is required")
		return
	}

	updated, err := h.rooms.JoinRoom(ctx, req.RoomID, client.Guest.ID, client.Guest.Nickname, client.ID)
	if err != nil {
		h.sendError(client, err.Error())
		return
	}

	h.hub.Subscribe(client, req.RoomID)

	// The joiner gets the full projection; everyone already in the room gets
	// only the lightweight notification
	h.hub.SendTo(client, model.EventRoomJoined, response.RoomResponseFromModel(updated))
	h.hub.BroadcastToRoomExcept(req.RoomID, client.ID, model.EventPlayerJoined, model.PlayerJoinedPayload{
		GuestID:  client.Guest.ID,
		Nickname: client.Guest.Nickname,
	})
}

func (h *Handler) handleLeaveRoom(ctx context.Context, client *Client, data json.RawMessage) {
	var req roomRef
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		h.sendError(client, "room_id is required")
		return
	}

	h.hub.Unsubscribe(client, req.RoomID)
	h.playerLeft(ctx, client, req.RoomID)
	h.hub.SendTo(client, model.EventRoomLeft, roomRef{RoomID: req.RoomID})
}

// playerLeft runs the storage-side leave and notifies the remaining room
// members. Shared between an explicit leave and a disconnect.
func (h *Handler) playerLeft(ctx context.Context, client *Client, roomID model.RoomID) {
	updated, err := h.rooms.LeaveRoom(ctx, roomID, client.Guest.ID)
	if err != nil {
		// The room may already be gone or the seat already vacated
		h.logger.Info("leave room",
			"room_id", roomID,
			"guest_id", client.Guest.ID,
			"error", err,
		)
		return
	}

	h.hub.BroadcastToRoom(roomID, model.EventPlayerLeft, model.PlayerLeftPayload{
		GuestID: client.Guest.ID,
		HostID:  updated.HostID,
	})
	h.hub.BroadcastToRoom(roomID, model.EventGameStateUpdate, response.RoomResponseFromModel(updated))
}

func (h *Handler) handleStartGame(ctx context.Context, client *Client, data json.RawMessage) {
	var req roomRef
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		h.sendError(client, "room_id is required")
		return
	}

	updated, err := h.rooms.StartGame(ctx, req.RoomID, client.Guest.ID)
	if err != nil {
		h.hub.SendTo(client, model.EventStartGameFailed, model.ActionFailedPayload{
			RoomID: req.RoomID,
			Error:  err.Error(),
		})
		return
	}

	h.hub.BroadcastToRoom(req.RoomID, model.EventGameStateUpdate, response.RoomResponseFromModel(updated))
}

func (h *Handler) handlePlayerAction(ctx context.Context, client *Client, data json.RawMessage) {
	var req struct {
		RoomID     model.RoomID    `json:"room_id"`
		ActionType game.ActionType `json:"action_type"`
		ActionData json.RawMessage `json:"action_data"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" || req.ActionType == "" {
		h.sendError(client, "room_id and action_type are required")
		return
	}

	updated, err := h.dispatcher.Dispatch(ctx, req.RoomID, client.Guest.ID, req.ActionType, req.ActionData)
	if err != nil {
		h.hub.SendTo(client, model.EventPlayerActionFailed, model.ActionFailedPayload{
			RoomID: req.RoomID,
			Error:  err.Error(),
		})
		return
	}

	h.hub.BroadcastToRoom(req.RoomID, model.EventGameStateUpdate, response.RoomResponseFromModel(updated))
}

type errorPayload struct {
	Message string `json:"message"`
}

func (h *Handler) sendError(client *Client, message string) {
	h.hub.SendTo(client, model.EventError, errorPayload{Message: message})
}
