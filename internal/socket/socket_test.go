package socket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	go hub.Run()

	r := gin.New()
	r.GET("/groups/:groupId/ws", NewHandler(hub).HandleWebSocket)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetConnectedClientsCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.GetConnectedClientsCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesOnlyGroupRoom(t *testing.T) {
	hub, srv := newTestServer(t)

	inGroup := dial(t, srv, "/groups/g1/ws?userId=u1")
	otherGroup := dial(t, srv, "/groups/g2/ws?userId=u2")
	waitForClients(t, hub, 2)

	NewBroadcaster(hub).BroadcastHeadcountSubmitted("g1", "2024-01-15", "u1", true, false)

	inGroup.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := inGroup.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageHeadcountSubmitted || msg.GroupID != "g1" {
		t.Errorf("unexpected message: %+v", msg)
	}

	otherGroup.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := otherGroup.ReadMessage(); err == nil {
		t.Error("client in another group should not receive the event")
	}
}

func TestPingPong(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "/groups/g1/ws?userId=u1")
	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(ClientMessage{Action: "ping"}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != MessagePong {
		t.Errorf("expected pong, got %s", msg.Type)
	}
}

func TestHandlerRequiresUserID(t *testing.T) {
	_, srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/groups/g1/ws"
	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatal("expected dial to fail without userId")
	} else if resp != nil && resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestNilBroadcasterIsNoop(t *testing.T) {
	var b *Broadcaster
	b.BroadcastPlanLocked("g1", nil)
	b.BroadcastCookNotified("g1", "2024-01-15", "hi")
}
