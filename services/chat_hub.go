package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Luis14-code/front-app-nutri/models"
)

// Rolling history cap per connection; older turns fall off the context.
const chatHistoryLimit = 20

// WSClient is one live websocket session with its conversation state.
// All writes to Conn must go through write(); the connection allows only
// one concurrent writer.
type WSClient struct {
	UserID  uint
	Conn    *websocket.Conn
	mu      sync.Mutex
	history []ChatMessage
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Ping sends a keep-alive frame.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// Send delivers a JSON payload on this session.
func (c *WSClient) Send(payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, msg)
}

// ChatHub tracks live chat sessions per user and routes messages through
// the assistant. A user may hold several sessions (phone + browser); each
// keeps its own rolling history.
type ChatHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *ChatHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChatHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Sessions reports how many live sessions the user holds.
func (h *ChatHub) Sessions(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Push sends a JSON payload to every live session of the user.
func (h *ChatHub) Push(userID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.write(websocket.TextMessage, msg)
	}
}

// Exchange appends the user's message to the session history, asks the
// assistant, and appends the reply. The returned string is the reply text.
func (c *WSClient) Exchange(gemini *GeminiService, text string, user ChatContext, recipes []models.Recipe) string {
	c.history = append(c.history, ChatMessage{Role: "user", Content: text})
	if len(c.history) > chatHistoryLimit {
		c.history = c.history[len(c.history)-chatHistoryLimit:]
	}

	reply := gemini.Chat(c.history, user, recipes)
	c.history = append(c.history, ChatMessage{Role: "model", Content: reply})
	return reply
}
