package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"codearena/configs"
	"codearena/internal/dbs"
	"codearena/internal/execution"
	"codearena/internal/handlers"
	"codearena/internal/judge"
	"codearena/internal/logger"
	"codearena/internal/middlewares"
	"codearena/internal/progress"
	"codearena/internal/repositories"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
)

func StartGinServer() {
	logger.InitLogger()
	defer logger.SyncLogger()

	config := configs.LoadConfig()

	db, err := dbs.Init(config)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := dbs.InitRedis(ctx, config.RedisAddr); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer dbs.CloseRedis()

	cache := services.NewRedisCache(dbs.RedisClient)
	tokenService := services.NewTokenService(config.JWTSecret)

	userRepo := repositories.NewUserRepository(db, cache)
	problemRepo := repositories.NewProblemRepository(db)
	testCaseRepo := repositories.NewTestCaseRepository(db, cache)
	submissionRepo := repositories.NewSubmissionRepository(db)
	progressRepo := repositories.NewProgressRepository(db)

	executor := execution.NewPistonClient(config.PistonURL, time.Duration(config.ExecutionTimeout)*time.Second)
	engine := judge.NewEngine(testCaseRepo, executor, submissionRepo)

	aggregator := progress.NewAggregator(progressRepo, nil)
	leaderboard := progress.NewLeaderboard(progressRepo, cache)

	router := gin.New()
	router.Use(middlewares.ErrorHandlerMiddleware())
	router.Use(middlewares.RequestIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	handlers.NewAuthHandler(userRepo, tokenService).RegisterRoutes(router, tokenService)
	handlers.NewProblemHandler(problemRepo, testCaseRepo).RegisterRoutes(router, tokenService)
	handlers.NewCompanyHandler(problemRepo).RegisterRoutes(router, tokenService)
	handlers.NewSubmissionHandler(engine, submissionRepo).RegisterRoutes(router, tokenService)
	handlers.NewProgressHandler(aggregator).RegisterRoutes(router)
	handlers.NewLeaderboardHandler(leaderboard).RegisterRoutes(router, tokenService)
	handlers.NewRunHandler(executor).RegisterRoutes(router, tokenService)

	port := ":" + config.ServerPort
	log.Printf("Starting server on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
