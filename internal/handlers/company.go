package handlers

import (
	"context"
	"net/http"
	"strconv"

	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/repositories"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	problemRepo repositories.ProblemRepository
}

func NewCompanyHandler(problemRepo repositories.ProblemRepository) *CompanyHandler {
	return &CompanyHandler{problemRepo: problemRepo}
}

func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	companies, err := h.problemRepo.GetCompanies(context.Background())
	if err != nil {
		logger.Log.Error("Failed to get companies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) GetCompanyProblems(c *gin.Context) {
	idStr := c.Param("id")
	companyID, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
		return
	}

	userID := c.GetInt(middlewares.UserContextKey)

	problems, err := h.problemRepo.GetCompanyProblems(context.Background(), companyID, userID)
	if err != nil {
		logger.Log.Error("Failed to get company problems",
			zap.Int("company_id", companyID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company problems"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

func (h *CompanyHandler) RegisterRoutes(router *gin.Engine, tokenService *services.TokenService) {
	companyGroup := router.Group("/companies")
	{
		companyGroup.GET("", h.GetCompanies)
		companyGroup.GET("/:id/problems", middlewares.OptionalAuthMiddleware(tokenService), h.GetCompanyProblems)
	}
}
