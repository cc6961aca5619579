package handlers

import (
	"net/http"
	"strconv"

	"arcade_hub/internal/service"

	"github.com/gin-gonic/gin"
)

// ListGames handles GET /games?q=&category=&difficulty=
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.Catalog.List(c.Request.Context(), service.GameFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games, "count": len(games)})
}

func (h *Handler) FeaturedGames(c *gin.Context) {
	games, err := h.Catalog.Featured(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *Handler) GetGame(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	g, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Stats(c.Request.Context()))
}

func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.Leaderboard.Top(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// MySessions handles GET /me/sessions?limit=
func (h *Handler) MySessions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	sessions, err := h.Catalog.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
