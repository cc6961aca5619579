package handlers

import (
	"net/http"

	"arcade_hub/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StartPlayRequest struct {
	GameID uuid.UUID `json:"game_id" binding:"required"`
}

// StartPlay begins a round. Any round the caller still has open is abandoned.
func (h *Handler) StartPlay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req StartPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	r, err := h.Plays.Start(c.Request.Context(), userID, req.GameID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r.View())
}

func (h *Handler) GetPlay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	playID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.Plays.Get(playID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r.View())
}

// PlayAction applies {type, value, top, bottom} to the round. The resulting
// state is returned with rejections too, so clients can resync.
func (h *Handler) PlayAction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	playID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var action game.Action
	if err := c.ShouldBindJSON(&action); err != nil || action.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action type required"})
		return
	}

	st, err := h.Plays.Apply(playID, userID, action)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			writeError(c, err)
			return
		}
		c.JSON(status, gin.H{"error": err.Error(), "state": st})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": st})
}

func (h *Handler) AbandonPlay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	playID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.Plays.Close(playID, userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
