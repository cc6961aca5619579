package handlers

import (
	"net/http"

	"arcade_hub/internal/domain"

	"github.com/gin-gonic/gin"
)

type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Bio         *string `json:"bio"`
	AvatarType  *string `json:"avatar_type"`
	AvatarColor *string `json:"avatar_color"`
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	p, err := h.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        p,
		"points_to_next": int64(domain.PointsPerLevel) - p.TotalPoints%domain.PointsPerLevel,
		"avatar_types":   domain.AvatarTypes,
		"avatar_colors":  domain.AvatarColors,
	})
}

// UpdateMe edits username, bio and avatar. Points and level cannot be set here.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	u := domain.ProfileUpdate{
		Username:    req.Username,
		Bio:         req.Bio,
		AvatarType:  req.AvatarType,
		AvatarColor: req.AvatarColor,
	}
	if u.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	p, err := h.Profiles.Edit(c.Request.Context(), userID, u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) GetAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	board, err := h.Achievements.Board(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
