package handlers

import (
	"context"
	"net/http"
	"strconv"

	"codearena/internal/logger"
	"codearena/internal/progress"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProgressHandler struct {
	aggregator *progress.Aggregator
}

func NewProgressHandler(aggregator *progress.Aggregator) *ProgressHandler {
	return &ProgressHandler{aggregator: aggregator}
}

// GetUserProgress returns the derived stats for a user: solve counts by
// difficulty, weighted score, current streak, global rank, per-company
// progress, the 90-day heatmap and achievement flags. Everything is
// recomputed from the solved facts on demand.
func (h *ProgressHandler) GetUserProgress(c *gin.Context) {
	idStr := c.Param("id")
	userID, err := strconv.Atoi(idStr)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userProgress, err := h.aggregator.UserProgress(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to aggregate user progress",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve progress"})
		return
	}

	c.JSON(http.StatusOK, userProgress)
}

func (h *ProgressHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/users/:id/progress", h.GetUserProgress)
}
