package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/requestdata"
	"github.com/yungbote/ecosort-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub

	mu      sync.RWMutex
	clients map[uuid.UUID]uuid.UUID // userID -> client ID of the active stream
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log:     log.With("handler", "SSEHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]uuid.UUID),
	}
}

func (h *SSEHandler) SSEStream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	userID := rd.UserID
	h.log.Info("SSE stream open", "user_id", userID.String())

	h.mu.Lock()
	// One stream per user; a reconnect replaces the previous one.
	if existingID, ok := h.clients[userID]; ok {
		if existing := h.hub.GetClient(existingID); existing != nil {
			h.hub.CloseClient(existing)
		}
		delete(h.clients, userID)
	}
	client := h.hub.NewSSEClient(userID)
	h.clients[userID] = client.ID
	h.mu.Unlock()

	// Every stream is subscribed to the user's own channel, which carries
	// the classification and points events.
	h.hub.AddChannel(client, sse.UserChannel(userID))

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	// A replacement stream may already own the registry entry; only remove
	// it if it still points at this request's client.
	h.mu.Lock()
	if h.clients[userID] == client.ID {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
	h.hub.CloseClient(client)
}

func (h *SSEHandler) SSESubscribe(c *gin.Context) {
	client, channel, ok := h.resolveClientAndChannel(c)
	if !ok {
		return
	}
	h.hub.AddChannel(client, channel)
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "channel": channel})
}

func (h *SSEHandler) SSEUnsubscribe(c *gin.Context) {
	client, channel, ok := h.resolveClientAndChannel(c)
	if !ok {
		return
	}
	h.hub.RemoveChannel(client, channel)
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed", "channel": channel})
}

func (h *SSEHandler) resolveClientAndChannel(c *gin.Context) (*sse.SSEClient, string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, "", false
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return nil, "", false
	}

	h.mu.RLock()
	clientID, exists := h.clients[rd.UserID]
	h.mu.RUnlock()
	if !exists {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection for this user"})
		return nil, "", false
	}
	client := h.hub.GetClient(clientID)
	if client == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection for this user"})
		return nil, "", false
	}
	return client, req.Channel, true
}
