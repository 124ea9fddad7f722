package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/services/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one live websocket connection bound to an authenticated guest.
// The rooms set is guarded by the hub's mutex.
type Client struct {
	ID    model.ConnectionID
	Guest auth.Guest

	conn  *websocket.Conn
	send  chan []byte
	rooms map[model.RoomID]bool
}

func newClient(id model.ConnectionID, guest auth.Guest, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		Guest: guest,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[model.RoomID]bool),
	}
}

// enqueue buffers an outbound frame, dropping it if the client's send
// buffer is full. A slow consumer loses messages rather than stalling the
// hub; the next state broadcast supersedes anything dropped.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// writePump drains the send buffer to the connection and keeps the
// connection alive with pings. One writer goroutine per connection; the
// gorilla API forbids concurrent writers.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
