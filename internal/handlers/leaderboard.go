package handlers

import (
	"context"
	"net/http"

	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/progress"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LeaderboardHandler struct {
	leaderboard *progress.Leaderboard
}

func NewLeaderboardHandler(leaderboard *progress.Leaderboard) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.leaderboard.Global(context.Background())
	if err != nil {
		logger.Log.Error("Failed to build leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"count":       len(entries),
	})
}

func (h *LeaderboardHandler) GetMyPosition(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	position, err := h.leaderboard.PositionFor(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to get leaderboard position",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found in leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.Engine, tokenService *services.TokenService) {
	leaderboardGroup := router.Group("/leaderboard")
	{
		leaderboardGroup.GET("", h.GetLeaderboard)
		leaderboardGroup.GET("/me", middlewares.AuthMiddleware(tokenService), h.GetMyPosition)
	}
}
