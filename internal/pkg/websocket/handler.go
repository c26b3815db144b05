package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated requests to live feed connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// HandleConnection subscribes the caller to announcement events. The auth
// middleware must have stored the caller's id and role under userIdKey and roleKey.
func (h *Handler) HandleConnection(userIDKey, roleKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(userIDKey)
		role := c.GetString(roleKey)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already written an HTTP error
			h.logger.Warn().
				Err(err).
				Str("userId", userID).
				Msg("Failed to upgrade connection to WebSocket")
			return
		}

		client := &Client{
			hub:    h.hub,
			conn:   conn,
			send:   make(chan []byte, 32),
			userID: userID,
			role:   role,
			logger: h.logger,
		}
		if !h.hub.join(client) {
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()

		h.logger.Info().
			Str("userId", userID).
			Str("remoteAddr", conn.RemoteAddr().String()).
			Msg("WebSocket connection established")
	}
}
