package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Luis14-code/front-app-nutri/services"
)

type ChatController struct {
	Hub     *services.ChatHub
	Gemini  *services.GeminiService
	Users   *services.UserService
	Recipes *services.RecipeService
}

func NewChatController(hub *services.ChatHub, gemini *services.GeminiService, users *services.UserService, recipes *services.RecipeService) *ChatController {
	return &ChatController{Hub: hub, Gemini: gemini, Users: users, Recipes: recipes}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// chatContext loads the profile the assistant sees for this user.
func (h *ChatController) chatContext(userID uint) (services.ChatContext, error) {
	user, err := h.Users.FindByID(userID)
	if err != nil {
		return services.ChatContext{}, err
	}
	target, err := h.Users.LatestTarget(userID)
	if err != nil {
		return services.ChatContext{}, err
	}
	return services.ChatContext{
		Name:           user.Name,
		Goal:           target.Goal,
		Restrictions:   "Nenhuma",
		CaloriesTarget: target.CaloriesTarget,
		ProteinTarget:  target.ProteinTarget,
		CarbsTarget:    target.CarbsTarget,
	}, nil
}

// Chat answers a stateless conversation: the client sends the full message
// history and gets one reply back.
func (h *ChatController) Chat(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Messages []services.ChatMessage `json:"messages" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCtx, err := h.chatContext(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	recipes, err := h.Recipes.List("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reply := h.Gemini.Chat(body.Messages, userCtx, recipes)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ChatWS upgrades to a websocket session. Each incoming text frame is one
// user message; the reply goes back on the same connection with the
// session's rolling history as context.
func (h *ChatController) ChatWS(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: userID, Conn: conn}
	h.Hub.Register(cl)

	// keep connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Ping(); err != nil {
				h.Hub.Unregister(cl)
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			h.Hub.Unregister(cl)
			return
		}

		userCtx, err := h.chatContext(userID)
		if err != nil {
			h.Hub.Unregister(cl)
			return
		}
		recipes, err := h.Recipes.List("")
		if err != nil {
			recipes = nil
		}

		// fan the reply out to every live session of the user
		reply := cl.Exchange(h.Gemini, string(msg), userCtx, recipes)
		h.Hub.Push(userID, gin.H{"reply": reply})
	}
}
