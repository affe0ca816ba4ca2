package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/ecosort-backend/internal/classify"
	"github.com/yungbote/ecosort-backend/internal/clients/gcp"
	"github.com/yungbote/ecosort-backend/internal/clients/redis"
	"github.com/yungbote/ecosort-backend/internal/db"
	"github.com/yungbote/ecosort-backend/internal/handlers"
	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/middleware"
	"github.com/yungbote/ecosort-backend/internal/repos"
	"github.com/yungbote/ecosort-backend/internal/server"
	"github.com/yungbote/ecosort-backend/internal/services"
	"github.com/yungbote/ecosort-backend/internal/sse"
	"github.com/yungbote/ecosort-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	rewardPoints := utils.GetEnvAsInt("REWARD_POINTS_PER_CLASSIFICATION", 10, log)
	maxUploadMB := utils.GetEnvAsInt("MAX_UPLOAD_MB", 10, log)
	allowedOrigins := utils.GetEnv("ALLOWED_ORIGINS", "", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	recordRepo := repos.NewClassificationRecordRepo(thePG, log)
	balanceRepo := repos.NewPointsBalanceRepo(thePG, log)
	historyRepo := repos.NewPointsHistoryRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	sseBus, err := redis.NewSSEBus(log)
	if err != nil {
		log.Warn("Redis SSE bus unavailable; running single-instance", "error", err)
		sseBus = nil
	} else {
		if err := sseBus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
			log.Warn("Could not start SSE forwarder; running single-instance", "error", err)
			_ = sseBus.Close()
			sseBus = nil
		}
	}

	// Scoring config
	scoringCfg := classify.DefaultConfig()
	if path := os.Getenv("SCORING_CONFIG_PATH"); path != "" {
		scoringCfg, err = classify.LoadConfig(path)
		if err != nil {
			log.Error("Could not load scoring config", "path", path, "error", err)
			os.Exit(1)
		}
	}
	scoringCfg.NearTieEpsilon = utils.GetEnvAsFloat("NEAR_TIE_EPSILON", scoringCfg.NearTieEpsilon, log)
	scoringCfg.StrongIndicatorBonus = utils.GetEnvAsFloat("STRONG_INDICATOR_BONUS", scoringCfg.StrongIndicatorBonus, log)

	// Vision
	visionClient, err := gcp.NewVision(log)
	if err != nil {
		log.Error("Could not init Vision client", "error", err)
		os.Exit(1)
	}
	defer visionClient.Close()

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	rewardService := services.NewRewardService(thePG, log, recordRepo, balanceRepo, historyRepo, int64(rewardPoints))
	classificationService := services.NewClassificationService(log, scoringCfg, visionClient, rewardService, sseHub, sseBus)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, time.Duration(accessTokenTTL)*time.Second)
	userHandler := handlers.NewUserHandler(userService)
	classificationHandler := handlers.NewClassificationHandler(log, classificationService, int64(maxUploadMB)*1024*1024)
	rewardsHandler := handlers.NewRewardsHandler(rewardService)
	sseHandler := handlers.NewSSEHandler(log, sseHub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:        allowedOrigins,
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		UserHandler:           userHandler,
		ClassificationHandler: classificationHandler,
		RewardsHandler:        rewardsHandler,
		SSEHandler:            sseHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
