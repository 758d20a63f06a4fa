// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MessageMemberJoined       MessageType = "member_joined"
	MessagePlanGenerated      MessageType = "plan_generated"
	MessagePlanLocked         MessageType = "plan_locked"
	MessageHeadcountSubmitted MessageType = "headcount_submitted"
	MessageCookNotified       MessageType = "cook_notified"

	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	GroupID   string      `json:"groupId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one connected member. A client listens to exactly one group room.
type Client struct {
	ID      string
	UserID  string
	GroupID string
	Conn    *websocket.Conn
	Hub     *Hub
	Send    chan []byte
}

type roomMessage struct {
	room string
	data []byte
}

type directMessage struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients per group room. All map
// mutations happen on the Run goroutine.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	direct     chan directMessage
	done       chan struct{}
	stopOnce   sync.Once

	mu          sync.RWMutex
	clientCount int
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		direct:     make(chan directMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			room := h.rooms[client.GroupID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[client.GroupID] = room
			}
			room[client] = true
			h.setCount(1)
			slog.Debug("[WebSocket] client registered", "user_id", client.UserID, "group_id", client.GroupID)

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.room] {
				select {
				case client.Send <- msg.data:
				default:
					// slow consumer
					h.remove(client)
				}
			}

		case msg := <-h.direct:
			if h.rooms[msg.client.GroupID][msg.client] {
				select {
				case msg.client.Send <- msg.data:
				default:
				}
			}

		case <-h.done:
			for _, room := range h.rooms {
				for client := range room {
					close(client.Send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			return
		}
	}
}

// Stop ends Run and closes every client's send channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) remove(client *Client) {
	room, ok := h.rooms[client.GroupID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(h.rooms, client.GroupID)
	}
	h.setCount(-1)
	slog.Debug("[WebSocket] client unregistered", "user_id", client.UserID, "group_id", client.GroupID)
}

func (h *Hub) setCount(delta int) {
	h.mu.Lock()
	h.clientCount += delta
	h.mu.Unlock()
}

// GetConnectedClientsCount returns the number of live connections.
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clientCount
}

// SendToGroup queues msg for every client in the group's room.
func (h *Hub) SendToGroup(groupID string, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(Message{
		Type:      msgType,
		GroupID:   groupID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("[WebSocket] failed to encode message", "type", msgType, "error", err)
		return
	}

	select {
	case h.broadcast <- roomMessage{room: groupID, data: data}:
	case <-h.done:
	default:
		slog.Warn("[WebSocket] broadcast queue full, dropping message", "type", msgType, "group_id", groupID)
	}
}
