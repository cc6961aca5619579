package handlers

import (
	"errors"
	"net/http"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/game"
	"arcade_hub/internal/http/middleware"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/repository"
	"arcade_hub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Catalog      *service.CatalogService
	Plays        *service.PlayService
	Feeds        *service.FeedService
	Leaderboard  *service.LeaderboardService
	Achievements *service.AchievementService
	Profiles     *service.ProfileService
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.UserID(c)
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnknownGame):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrInputLocked),
		errors.Is(err, game.ErrRoundOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrIllegalInput),
		errors.Is(err, game.ErrUnsupported),
		errors.Is(err, domain.ErrInvalidPost),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidBio),
		errors.Is(err, domain.ErrInvalidAvatar):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, service.ErrFeedUnavailable), errors.Is(err, service.ErrShuttingDown):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
