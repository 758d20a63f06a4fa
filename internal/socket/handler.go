// internal/socket/handler.go
package socket

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades group event subscriptions.
type Handler struct {
	Hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{Hub: hub}
}

// HandleWebSocket subscribes the caller to /groups/:groupId events. The
// caller identifies itself with ?userId=; there is no authentication.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	groupID := c.Param("groupId")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("[WebSocket] upgrade failed", "error", err)
		return
	}

	client := NewClient(h.Hub, userID, groupID, conn)
	select {
	case h.Hub.register <- client:
	case <-h.Hub.done:
		conn.Close()
		return
	}
	slog.Info("[WebSocket] client connected", "user_id", userID, "group_id", groupID)

	go client.WritePump()
	go client.ReadPump()
}

func NewClient(hub *Hub, userID, groupID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:      uuid.New().String(),
		UserID:  userID,
		GroupID: groupID,
		Conn:    conn,
		Hub:     hub,
		Send:    make(chan []byte, 64),
	}
}
