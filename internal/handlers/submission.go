package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"codearena/internal/execution"
	"codearena/internal/judge"
	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/models"
	"codearena/internal/repositories"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	engine         *judge.Engine
	submissionRepo repositories.SubmissionRepository
}

func NewSubmissionHandler(engine *judge.Engine, submissionRepo repositories.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{
		engine:         engine,
		submissionRepo: submissionRepo,
	}
}

// Submit grades a solution synchronously: hidden test cases run one at a
// time against the remote sandbox, stopping at the first failure. The
// response always distinguishes "your code is wrong" (2xx with
// success=false, or 400 with the sandbox stderr) from "we couldn't test
// your code" (5xx).
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.ValidateRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt(middlewares.UserContextKey)
	language := execution.NormalizeLanguage(req.Language)

	verdict, err := h.engine.Grade(c.Request.Context(), userID, req.ProblemID, language, req.SourceCode)
	if err != nil {
		h.respondGradingError(c, userID, req.ProblemID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": verdict.Success,
		"passed":  verdict.Passed,
		"failed":  verdict.Failed,
		"total":   verdict.Total,
		"results": verdict.Results,
	})
}

func (h *SubmissionHandler) respondGradingError(c *gin.Context, userID, problemID int, err error) {
	var compileErr *judge.CompileError

	switch {
	case errors.Is(err, execution.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})

	case errors.Is(err, judge.ErrNoHiddenTests):
		// Problem misconfiguration, not a wrong submission
		logger.Log.Warn("Submission against ungradeable problem",
			zap.Int("problem_id", problemID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No hidden test cases found"})

	case errors.As(err, &compileErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Compilation / Runtime Error",
			"error":   compileErr.Stderr,
		})

	case errors.Is(err, execution.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Code execution service unavailable"})

	case errors.Is(err, judge.ErrNotRecorded), errors.Is(err, judge.ErrStore):
		logger.Log.Error("Grading outcome not recorded",
			zap.Int("user_id", userID),
			zap.Int("problem_id", problemID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grading result could not be recorded"})

	default:
		logger.Log.Error("Grading failed",
			zap.Int("user_id", userID),
			zap.Int("problem_id", problemID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process submission"})
	}
}

// GetUserSubmissions returns the caller's submission history, optionally
// filtered to one problem.
func (h *SubmissionHandler) GetUserSubmissions(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	var submissions []models.SubmissionListItem
	var err error

	if problemIDStr := c.Query("problem_id"); problemIDStr != "" {
		problemID, convErr := strconv.Atoi(problemIDStr)
		if convErr != nil || problemID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid problem ID"})
			return
		}
		submissions, err = h.submissionRepo.SubmissionsByUserAndProblem(context.Background(), userID, problemID)
	} else {
		submissions, err = h.submissionRepo.SubmissionsByUser(context.Background(), userID)
	}

	if err != nil {
		logger.Log.Error("Failed to get user submissions",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submission history"})
		return
	}

	// Format submission times as "Jan 2, 2006 at 3:04 PM"
	for i := range submissions {
		submissions[i].FormattedTime = submissions[i].SubmittedAt.Format("Jan 2, 2006 at 3:04 PM")
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"count":       len(submissions),
	})
}

func (h *SubmissionHandler) RegisterRoutes(router *gin.Engine, tokenService *services.TokenService) {
	submissionGroup := router.Group("/submissions", middlewares.AuthMiddleware(tokenService))
	{
		submissionGroup.POST("", h.Submit)
		submissionGroup.GET("", h.GetUserSubmissions)
	}
}
