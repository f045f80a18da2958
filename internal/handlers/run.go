package handlers

import (
	"errors"
	"net/http"

	"codearena/internal/execution"
	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/models"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunHandler executes code against user-provided input without grading or
// persisting anything. Backed by the same execution client as the judge.
type RunHandler struct {
	executor *execution.PistonClient
}

func NewRunHandler(executor *execution.PistonClient) *RunHandler {
	return &RunHandler{executor: executor}
}

func (h *RunHandler) Run(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.ValidateRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), req.Language, req.SourceCode, req.Input)
	if err != nil {
		if errors.Is(err, execution.ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
			return
		}
		logger.Log.Error("Run code failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Code execution failed"})
		return
	}

	output := result.Stdout
	if result.Stderr != "" {
		output = result.Stderr
	}

	c.JSON(http.StatusOK, gin.H{
		"output":  output,
		"success": result.Stderr == "" && result.ExitCode == 0,
	})
}

// GetLanguages lists the runtimes supported by the remote execution service.
func (h *RunHandler) GetLanguages(c *gin.Context) {
	runtimes, err := h.executor.Runtimes(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to fetch runtimes", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": runtimes})
}

func (h *RunHandler) RegisterRoutes(router *gin.Engine, tokenService *services.TokenService) {
	router.POST("/run", middlewares.AuthMiddleware(tokenService), h.Run)
	router.GET("/languages", h.GetLanguages)
}
