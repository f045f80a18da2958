package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/models"
	"codearena/internal/repositories"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProblemHandler struct {
	problemRepo  repositories.ProblemRepository
	testCaseRepo repositories.TestCaseRepository
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemRepo repositories.ProblemRepository, testCaseRepo repositories.TestCaseRepository) *ProblemHandler {
	return &ProblemHandler{
		problemRepo:  problemRepo,
		testCaseRepo: testCaseRepo,
	}
}

// GetProblems returns a list of all problems with minimal information. If
// the caller is logged in, each item carries a solved flag.
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	problems, err := h.problemRepo.GetProblems(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to get problems", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve problems"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problems": problems,
	})
}

// GetProblemByID returns detailed information about a specific problem,
// including its public test cases. Hidden cases never leave the server.
func (h *ProblemHandler) GetProblemByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid problem ID"})
		return
	}

	problem, err := h.problemRepo.GetProblemByID(context.Background(), id)
	if err != nil {
		logger.Log.Error("Failed to get problem",
			zap.Int("problem_id", id),
			zap.Error(err))

		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve problem details"})
		return
	}

	publicCases, err := h.testCaseRepo.PublicTestCases(context.Background(), id)
	if err != nil {
		logger.Log.Error("Failed to get public test cases",
			zap.Int("problem_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve problem details"})
		return
	}
	problem.PublicTestCases = publicCases

	if userID := c.GetInt(middlewares.UserContextKey); userID > 0 {
		solved, err := h.problemRepo.GetSolvedProblemIDs(context.Background(), userID)
		if err == nil {
			problem.IsSolved = solved[id]
		}
	}

	c.JSON(http.StatusOK, problem)
}

// CreateProblem adds a new problem. Admin only.
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var req models.CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.problemRepo.CreateProblem(context.Background(), &req)
	if err != nil {
		logger.Log.Error("Failed to create problem", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create problem"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "problem_id": id})
}

// AddTestCase attaches a test case to a problem. Admin only.
func (h *ProblemHandler) AddTestCase(c *gin.Context) {
	idStr := c.Param("id")
	problemID, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid problem ID"})
		return
	}

	var req models.CreateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tc := models.TestCase{
		ProblemID:      problemID,
		Input:          req.Input,
		ExpectedOutput: req.ExpectedOutput,
		IsPublic:       req.IsPublic,
		OrderIndex:     req.OrderIndex,
	}

	if err := h.testCaseRepo.AddTestCase(context.Background(), &tc); err != nil {
		logger.Log.Error("Failed to add test case",
			zap.Int("problem_id", problemID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add test case"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "test_case_id": tc.ID})
}

// GetRecommended returns a handful of problems the user has not solved yet.
func (h *ProblemHandler) GetRecommended(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	problems, err := h.problemRepo.RecommendedProblems(context.Background(), userID, 5)
	if err != nil {
		logger.Log.Error("Failed to get recommended problems",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

// RegisterRoutes registers the problem handler routes
func (h *ProblemHandler) RegisterRoutes(router *gin.Engine, tokenService *services.TokenService) {
	problemGroup := router.Group("/problems")
	{
		problemGroup.GET("", middlewares.OptionalAuthMiddleware(tokenService), h.GetProblems)
		problemGroup.GET("/:id", middlewares.OptionalAuthMiddleware(tokenService), h.GetProblemByID)
		problemGroup.POST("", middlewares.AuthMiddleware(tokenService), middlewares.RequireAdmin(), h.CreateProblem)
		problemGroup.POST("/:id/testcases", middlewares.AuthMiddleware(tokenService), middlewares.RequireAdmin(), h.AddTestCase)
	}

	router.GET("/users/:id/recommended", h.GetRecommended)
}
