package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub opens one live session: the server side is registered in the hub,
// the client side is returned for reading.
func dialHub(t *testing.T, hub *ChatHub, userID uint) (*websocket.Conn, *WSClient) {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	registered := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: userID, Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, <-registered
}

func TestSessionsTracksRegistrations(t *testing.T) {
	hub := NewChatHub()
	_, first := dialHub(t, hub, 1)
	_, second := dialHub(t, hub, 1)

	assert.Equal(t, 2, hub.Sessions(1))
	assert.Equal(t, 0, hub.Sessions(2))

	hub.Unregister(first)
	assert.Equal(t, 1, hub.Sessions(1))
	hub.Unregister(second)
	assert.Equal(t, 0, hub.Sessions(1))
}

func TestPushReachesEverySessionOfTheUser(t *testing.T) {
	hub := NewChatHub()
	phone, _ := dialHub(t, hub, 1)
	browser, _ := dialHub(t, hub, 1)
	other, _ := dialHub(t, hub, 2)

	hub.Push(1, map[string]string{"reply": "olá"})

	for _, conn := range []*websocket.Conn{phone, browser} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"reply": "olá"}`, string(msg))
	}

	// the other user's session stays silent
	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

// Pings and pushes land on the same connection from different goroutines;
// the per-client write lock must keep them from interleaving.
func TestConcurrentPingAndPush(t *testing.T) {
	hub := NewChatHub()
	client, cl := dialHub(t, hub, 1)

	const pushes = 50
	var wg sync.WaitGroup
	for i := 0; i < pushes; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Push(1, map[string]string{"reply": "oi"})
		}()
		go func() {
			defer wg.Done()
			_ = cl.Ping()
		}()
	}

	// control frames are consumed transparently by ReadMessage
	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := 0; i < pushes; i++ {
		_, msg, err := client.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"reply": "oi"}`, string(msg))
	}
	wg.Wait()
}

func TestExchangeKeepsRollingHistory(t *testing.T) {
	// no API key: every reply is the fixed fallback, no network involved
	t.Setenv("GEMINI_API_KEY", "")
	gemini := NewGeminiService()
	cl := &WSClient{UserID: 1}

	for i := 0; i < 15; i++ {
		reply := cl.Exchange(gemini, "oi", ChatContext{Name: "Ana"}, nil)
		assert.Equal(t, "Estou tendo dificuldades técnicas no momento.", reply)
	}

	// 15 turns × 2 messages, capped at the rolling limit before each call
	assert.LessOrEqual(t, len(cl.history), chatHistoryLimit+1)
	assert.Equal(t, "model", cl.history[len(cl.history)-1].Role)
}
