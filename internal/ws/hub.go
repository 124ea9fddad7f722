package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/cardtable/cardtable/internal/model"
)

// Envelope is the wire format for every websocket message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub tracks live connections and their room subscriptions, and fans
// messages out to them. It knows nothing about game rules; the handler
// decides what to send where.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.ConnectionID]*Client
	rooms   map[model.RoomID]map[model.ConnectionID]*Client

	logger *slog.Logger
}

// NewHub creates a new connection hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.ConnectionID]*Client),
		rooms:   make(map[model.RoomID]map[model.ConnectionID]*Client),
		logger:  logger,
	}
}

// Register adds a connected client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister removes a client and all its room subscriptions, returning the
// rooms it was subscribed to so the caller can run the leave flow for each
func (h *Hub) Unregister(client *Client) []model.RoomID {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[client.ID]; !ok || existing != client {
		return nil
	}
	delete(h.clients, client.ID)

	joined := make([]model.RoomID, 0, len(client.rooms))
	for roomID := range client.rooms {
		joined = append(joined, roomID)
		h.removeFromRoom(roomID, client)
	}
	client.rooms = map[model.RoomID]bool{}

	close(client.send)
	return joined
}

// Subscribe adds the client to a room's delivery group
func (h *Hub) Subscribe(client *Client, roomID model.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[model.ConnectionID]*Client)
	}
	h.rooms[roomID][client.ID] = client
	client.rooms[roomID] = true
}

// Unsubscribe removes the client from a room's delivery group
func (h *Hub) Unsubscribe(client *Client, roomID model.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(roomID, client)
	delete(client.rooms, roomID)
}

// removeFromRoom requires h.mu held
func (h *Hub) removeFromRoom(roomID model.RoomID, client *Client) {
	if group, ok := h.rooms[roomID]; ok {
		delete(group, client.ID)
		if len(group) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// BroadcastToRoom sends an event to every client subscribed to the room
func (h *Hub) BroadcastToRoom(roomID model.RoomID, event model.EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding broadcast", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[roomID] {
		client.enqueue(data)
	}
}

// BroadcastToRoomExcept sends an event to every client subscribed to the room
// except the named connection. Used when the excluded connection gets its own
// directed message instead, such as a joiner receiving the full room state
// while existing members get only the join notification.
func (h *Hub) BroadcastToRoomExcept(roomID model.RoomID, except model.ConnectionID, event model.EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding broadcast", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.rooms[roomID] {
		if id == except {
			continue
		}
		client.enqueue(data)
	}
}

// BroadcastGlobal sends an event to every connected client regardless of
// room subscriptions. Used for lobby-level announcements.
func (h *Hub) BroadcastGlobal(event model.EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding broadcast", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		client.enqueue(data)
	}
}

// SendTo sends an event to a single client
func (h *Hub) SendTo(client *Client, event model.EventType, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding message", "event", event, "error", err)
		return
	}
	client.enqueue(data)
}

// RoomSize reports how many clients are subscribed to a room
func (h *Hub) RoomSize(roomID model.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func encode(event model.EventType, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: string(event), Data: data})
}
