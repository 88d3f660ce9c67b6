package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"safelife/utils"
)

const (
	// EventMessage delivers a freshly persisted chat message.
	EventMessage = "message"
	// EventReminder delivers an appointment reminder.
	EventReminder = "reminder"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one live websocket connection for a user.
type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan Event
	done   chan struct{}
}

// Hub tracks the websocket connections per user and fans events out to them.
// A client registered when the screen opens is removed when it closes or the
// connection drops, mirroring the listener teardown the mobile app did.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

// AddClient registers the connection and starts its write loop.
func (h *Hub) AddClient(userID string, conn *websocket.Conn) *Client {
	c := &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan Event, 64),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	return c
}

// RemoveClient tears the connection down and forgets it.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()

	close(c.done)
	_ = c.conn.Close()
}

// BroadcastToUsers pushes an event to every live connection of the given
// users. A slow client with a full buffer is skipped, not waited on.
func (h *Hub) BroadcastToUsers(userIDs []string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, uid := range userIDs {
		for c := range h.clients[uid] {
			select {
			case c.send <- ev:
			default:
				utils.GetLogger().Warn("dropping websocket event for slow client",
					zap.String("userId", uid), zap.String("type", ev.Type))
			}
		}
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
