package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/pathlightlabs/universe-backend/internal/handlers"
  "github.com/pathlightlabs/universe-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName           string
  CORSOrigins           string
  HealthcheckHandler    *handlers.HealthcheckHandler
  UserHandler           *handlers.UserHandler
  ConversationHandler   *handlers.ConversationHandler
  RecommendationHandler *handlers.RecommendationHandler
  VisionBoardHandler    *handlers.VisionBoardHandler
  AuthMiddleware        *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware(cfg.ServiceName))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     corsOrigins(cfg.CORSOrigins),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
  router.POST("/api/users", cfg.UserHandler.CreateUser)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/users/me", cfg.UserHandler.GetMe)
  // Conversation
  protected.POST("/conversations/start", cfg.ConversationHandler.StartSession)
  protected.POST("/conversations/:sessionId/messages", cfg.ConversationHandler.PostMessage)
  protected.GET("/conversations/:sessionId", cfg.ConversationHandler.GetSession)
  protected.POST("/conversations/:sessionId/analyze", cfg.ConversationHandler.AnalyzeSession)
  // Recommendations
  protected.GET("/recommendations/:profileId", cfg.RecommendationHandler.GetRecommendations)
  protected.POST("/recommendations/custom", cfg.RecommendationHandler.AddCustomCareer)
  // Vision board
  protected.POST("/vision-board/generate", cfg.VisionBoardHandler.Generate)
  protected.GET("/vision-board/user/all", cfg.VisionBoardHandler.ListForUser)
  protected.GET("/vision-board/:imageId", cfg.VisionBoardHandler.Get)

  return router
}

func corsOrigins(raw string) []string {
  if strings.TrimSpace(raw) == "" {
    return []string{"http://localhost:3000", "http://localhost:3002"}
  }
  parts := strings.Split(raw, ",")
  origins := make([]string, 0, len(parts))
  for _, part := range parts {
    if origin := strings.TrimSpace(part); origin != "" {
      origins = append(origins, origin)
    }
  }
  return origins
}
