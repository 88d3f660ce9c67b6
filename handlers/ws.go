package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"safelife/services/chat"
	"safelife/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The mobile client connects from app webviews with no fixed origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections and binds them to the chat hub.
type WSHandler struct {
	Hub *chat.Hub
}

func NewWSHandler(hub *chat.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// ServeWS handles GET /ws. The connection lives for as long as the screen is
// open; closing it removes the client from the hub.
func (h *WSHandler) ServeWS(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		userID = c.Query("userId")
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WebSocket upgrade failed: " + err.Error()})
		return
	}

	client := h.Hub.AddClient(userID, conn)
	utils.GetLogger().Debug("websocket client connected", zap.String("userId", userID))

	// Read loop exists only to detect disconnects; messages are sent over
	// the REST endpoint so they are persisted before fan-out.
	go func() {
		defer h.Hub.RemoveClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.GetLogger().Debug("websocket client disconnected",
					zap.String("userId", userID), zap.Error(err))
				return
			}
		}
	}()
}
