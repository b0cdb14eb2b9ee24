package main

import (
  "fmt"
  "os"
  "time"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/utils"
  "github.com/leopark123/ideahub/internal/db"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/services"
  "github.com/leopark123/ideahub/internal/handlers"
  "github.com/leopark123/ideahub/internal/middleware"
  "github.com/leopark123/ideahub/internal/server"
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
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis
  redisClient := services.NewRedisClient(log)
  cacheService := services.NewCacheService(redisClient, log)

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  projectRepo := repos.NewProjectRepo(thePG, log)
  partnershipRepo := repos.NewPartnershipRepo(thePG, log)
  crowdfundingRepo := repos.NewCrowdfundingRepo(thePG, log)
  investmentRepo := repos.NewInvestmentRepo(thePG, log)
  messageRepo := repos.NewMessageRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  projectService := services.NewProjectService(thePG, log, projectRepo, cacheService)
  partnershipService := services.NewPartnershipService(thePG, log, partnershipRepo, projectRepo)
  crowdfundingService := services.NewCrowdfundingService(thePG, log, crowdfundingRepo, projectRepo, cacheService)
  investmentService := services.NewInvestmentService(thePG, log, investmentRepo, crowdfundingRepo, cacheService)
  messageService := services.NewMessageService(thePG, log, messageRepo, userRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  projectHandler := handlers.NewProjectHandler(projectService)
  partnershipHandler := handlers.NewPartnershipHandler(partnershipService)
  crowdfundingHandler := handlers.NewCrowdfundingHandler(crowdfundingService)
  investmentHandler := handlers.NewInvestmentHandler(investmentService)
  messageHandler := handlers.NewMessageHandler(messageService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:          authHandler,
    AuthMiddleware:       authMiddleware,
    UserHandler:          userHandler,
    ProjectHandler:       projectHandler,
    PartnershipHandler:   partnershipHandler,
    CrowdfundingHandler:  crowdfundingHandler,
    InvestmentHandler:    investmentHandler,
    MessageHandler:       messageHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
