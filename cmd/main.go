package main

import (
  "context"
  "fmt"
  "os"
  "strings"
  "time"
  "github.com/pathlightlabs/universe-backend/internal/logger"
  "github.com/pathlightlabs/universe-backend/internal/utils"
  "github.com/pathlightlabs/universe-backend/internal/db"
  "github.com/pathlightlabs/universe-backend/internal/observability"
  "github.com/pathlightlabs/universe-backend/internal/repos"
  "github.com/pathlightlabs/universe-backend/internal/services"
  "github.com/pathlightlabs/universe-backend/internal/handlers"
  "github.com/pathlightlabs/universe-backend/internal/middleware"
  "github.com/pathlightlabs/universe-backend/internal/server"
)

const serviceName = "universe-backend"

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

  ctx := context.Background()

  // Tracing
  otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
    ServiceName: serviceName,
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "", log),
  })
  if otelShutdown != nil {
    defer func() {
      shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(shutdownCtx)
    }()
  }

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 604800, log)
  dbDriver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))

  // Repos
  log.Info("Setting up Repos from main...")
  var (
    userRepo    repos.UserRepo
    sessionRepo repos.ConversationSessionRepo
    messageRepo repos.ConversationMessageRepo
    profileRepo repos.UserProfileRepo
    recRepo     repos.CareerRecommendationRepo
    imageRepo   repos.VisionBoardImageRepo
  )
  if dbDriver == "memory" {
    log.Warn("DB_DRIVER=memory: data is process-local and lost on restart")
    store := repos.NewMemoryStore()
    userRepo = repos.NewMemoryUserRepo(store)
    sessionRepo = repos.NewMemoryConversationSessionRepo(store)
    messageRepo = repos.NewMemoryConversationMessageRepo(store)
    profileRepo = repos.NewMemoryUserProfileRepo(store)
    recRepo = repos.NewMemoryCareerRecommendationRepo(store)
    imageRepo = repos.NewMemoryVisionBoardImageRepo(store)
  } else {
    databaseService, err := db.NewDatabaseService(log)
    if err != nil {
      log.Error("Database init failed", "error", err)
      os.Exit(1)
    }
    if err := databaseService.AutoMigrateAll(); err != nil {
      log.Warn("Auto migration failed", "error", err)
    }
    gormDB := databaseService.DB()
    userRepo = repos.NewUserRepo(gormDB, log)
    sessionRepo = repos.NewConversationSessionRepo(gormDB, log)
    messageRepo = repos.NewConversationMessageRepo(gormDB, log)
    profileRepo = repos.NewUserProfileRepo(gormDB, log)
    recRepo = repos.NewCareerRecommendationRepo(gormDB, log)
    imageRepo = repos.NewVisionBoardImageRepo(gormDB, log)
  }

  // Services
  log.Info("Setting up Services from main...")
  geminiClient := services.NewGeminiClient(ctx, log)
  authService := services.NewAuthService(log, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  userService := services.NewUserService(log, userRepo, authService, geminiClient)
  conversationService := services.NewConversationService(log, userRepo, sessionRepo, messageRepo, geminiClient)
  analysisService := services.NewAnalysisService(log, sessionRepo, messageRepo, profileRepo, geminiClient)
  recommendationService := services.NewRecommendationService(log, userRepo, profileRepo, recRepo, geminiClient)
  visionBoardService := services.NewVisionBoardService(log, userRepo, profileRepo, recRepo, imageRepo, geminiClient)

  // Handlers
  log.Info("Setting up handlers from main...")
  healthcheckHandler := handlers.NewHealthcheckHandler()
  userHandler := handlers.NewUserHandler(userService)
  conversationHandler := handlers.NewConversationHandler(conversationService, analysisService)
  recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
  visionBoardHandler := handlers.NewVisionBoardHandler(visionBoardService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ServiceName:           serviceName,
    CORSOrigins:           utils.GetEnv("CORS_ORIGIN", "", log),
    HealthcheckHandler:    healthcheckHandler,
    UserHandler:           userHandler,
    ConversationHandler:   conversationHandler,
    RecommendationHandler: recommendationHandler,
    VisionBoardHandler:    visionBoardHandler,
    AuthMiddleware:        authMiddleware,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
