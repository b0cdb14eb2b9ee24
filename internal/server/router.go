package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/leopark123/ideahub/internal/handlers"
  "github.com/leopark123/ideahub/internal/middleware"
)

type RouterConfig struct {
  AuthHandler          *handlers.AuthHandler
  AuthMiddleware       *middleware.AuthMiddleware
  UserHandler          *handlers.UserHandler
  ProjectHandler       *handlers.ProjectHandler
  PartnershipHandler   *handlers.PartnershipHandler
  CrowdfundingHandler  *handlers.CrowdfundingHandler
  InvestmentHandler    *handlers.InvestmentHandler
  MessageHandler       *handlers.MessageHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/auth/register", cfg.AuthHandler.Register)
    api.POST("/auth/login", cfg.AuthHandler.Login)
    api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
    // Browsing projects and active campaigns needs no account.
    api.GET("/projects", cfg.ProjectHandler.List)
    api.GET("/projects/:id", cfg.ProjectHandler.Get)
    api.GET("/crowdfundings/active", cfg.CrowdfundingHandler.ListActive)
    api.GET("/crowdfundings/:id", cfg.CrowdfundingHandler.Get)
    api.GET("/crowdfundings/:id/stats", cfg.CrowdfundingHandler.GetStats)
    api.GET("/crowdfundings/project/:id", cfg.CrowdfundingHandler.GetByProject)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/users/me", cfg.UserHandler.GetMe)
  protected.PUT("/users/me", cfg.UserHandler.UpdateMe)
  protected.GET("/users/:id", cfg.UserHandler.GetByID)
  // Project
  protected.POST("/projects", cfg.ProjectHandler.Create)
  protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
  protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
  protected.POST("/projects/:id/publish", cfg.ProjectHandler.Publish)
  // Partnership
  protected.POST("/partnerships", cfg.PartnershipHandler.Apply)
  protected.GET("/partnerships/project/:id", cfg.PartnershipHandler.ListByProject)
  protected.GET("/partnerships/me", cfg.PartnershipHandler.ListMine)
  protected.POST("/partnerships/:id/approve", cfg.PartnershipHandler.Approve)
  protected.POST("/partnerships/:id/reject", cfg.PartnershipHandler.Reject)
  protected.POST("/partnerships/:id/leave", cfg.PartnershipHandler.Leave)
  // Crowdfunding
  protected.POST("/crowdfundings", cfg.CrowdfundingHandler.Create)
  protected.PUT("/crowdfundings/:id", cfg.CrowdfundingHandler.Update)
  protected.POST("/crowdfundings/:id/start", cfg.CrowdfundingHandler.Start)
  // Investment
  protected.POST("/investments", cfg.InvestmentHandler.Create)
  protected.POST("/investments/:id/confirm", cfg.InvestmentHandler.Confirm)
  protected.GET("/investments/me", cfg.InvestmentHandler.ListMine)
  protected.GET("/investments/:id", cfg.InvestmentHandler.Get)
  // Message
  protected.POST("/messages", cfg.MessageHandler.Send)
  protected.GET("/messages/conversations", cfg.MessageHandler.ListConversations)
  protected.GET("/messages/conversation/:userID", cfg.MessageHandler.GetConversation)
  protected.POST("/messages/conversation/:userID/read", cfg.MessageHandler.MarkConversationRead)
  protected.GET("/messages/unread-count", cfg.MessageHandler.UnreadCount)

  return router
}
