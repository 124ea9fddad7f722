package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cardtable/cardtable/internal/api/middleware"
	"github.com/cardtable/cardtable/internal/api/request"
	"github.com/cardtable/cardtable/internal/api/response"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/room"
)

// Notifier pushes room events to connected websocket clients. HTTP-driven
// state changes still have to reach everyone watching the room.
type Notifier interface {
	BroadcastGlobal(event model.EventType, payload any)
	BroadcastToRoom(roomID model.RoomID, event model.EventType, payload any)
}

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	rooms    *room.Controller
	notifier Notifier
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *room.Controller, notifier Notifier) *RoomHandler {
	return &RoomHandler{
		rooms:    rooms,
		notifier: notifier,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = guest.Nickname
	}

	created, err := h.rooms.CreateRoom(r.Context(), guest.ID, nickname, req.Name, req.GameType, req.Settings)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoomResponseFromModel(created)
	h.notifier.BroadcastGlobal(model.EventRoomCreated, resp)
	response.JSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.rooms.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponseFromModel(found))
}

// List handles GET /api/v1/rooms?skip=0&limit=10
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	rooms, err := h.rooms.ListRooms(r.Context(), skip, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponsesFromModels(rooms))
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	updated, err := h.rooms.JoinRoom(r.Context(), roomID, guest.ID, guest.Nickname, "")
	if err != nil {
		WriteError(w, err)
		return
	}

	// The joiner gets the full projection in the response body; room members
	// get only the lightweight notification
	h.notifier.BroadcastToRoom(roomID, model.EventPlayerJoined, model.PlayerJoinedPayload{
		GuestID:  guest.ID,
		Nickname: guest.Nickname,
	})
	response.JSON(w, http.StatusOK, response.RoomResponseFromModel(updated))
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	updated, err := h.rooms.LeaveRoom(r.Context(), roomID, guest.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoomResponseFromModel(updated)
	h.notifier.BroadcastToRoom(roomID, model.EventPlayerLeft, model.PlayerLeftPayload{
		GuestID: guest.ID,
		HostID:  updated.HostID,
	})
	h.notifier.BroadcastToRoom(roomID, model.EventGameStateUpdate, resp)
	response.JSON(w, http.StatusOK, resp)
}

// ToggleReady handles POST /api/v1/rooms/{room_id}/toggle-ready
func (h *RoomHandler) ToggleReady(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	updated, err := h.rooms.ToggleReady(r.Context(), roomID, guest.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoomResponseFromModel(updated)
	h.notifier.BroadcastToRoom(roomID, model.EventGameStateUpdate, resp)
	response.JSON(w, http.StatusOK, resp)
}

// Start handles POST /api/v1/rooms/{room_id}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	updated, err := h.rooms.StartGame(r.Context(), roomID, guest.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoomResponseFromModel(updated)
	h.notifier.BroadcastToRoom(roomID, model.EventGameStateUpdate, resp)
	response.JSON(w, http.StatusOK, resp)
}

// Restart handles POST /api/v1/rooms/{room_id}/restart
func (h *RoomHandler) Restart(w http.ResponseWriter, r *http.Request) {
	guest := middleware.GetGuest(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	updated, err := h.rooms.RestartGame(r.Context(), roomID, guest.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoomResponseFromModel(updated)
	h.notifier.BroadcastToRoom(roomID, model.EventGameStateUpdate, resp)
	response.JSON(w, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
