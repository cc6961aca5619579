package ws

import (
	"errors"
	"net/http"

	"arcade_hub/internal/logger"
	"arcade_hub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades GET /ws/play/:id?token=... to a live stream of that
// round. Browsers cannot set headers on a WebSocket handshake, so the token
// travels in the query.
func HandleWS(plays *service.PlayService, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		playID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid play id"})
			return
		}

		round, err := plays.Get(playID, userID)
		if err != nil {
			if errors.Is(err, service.ErrRoundNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load round"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := NewClient(userID, round, plays, conn)
		go client.Run()
	}
}
