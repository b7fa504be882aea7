package main

import (
  "context"
  "errors"
  "fmt"
  "os"
  "time"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/utils"
  "github.com/gradpath/gradpath-backend/internal/db"
  "github.com/gradpath/gradpath-backend/internal/repos"
  "github.com/gradpath/gradpath-backend/internal/services"
  "github.com/gradpath/gradpath-backend/internal/handlers"
  "github.com/gradpath/gradpath-backend/internal/middleware"
  "github.com/gradpath/gradpath-backend/internal/server"
  "github.com/gradpath/gradpath-backend/internal/storage"
  "github.com/gradpath/gradpath-backend/internal/clients/gcp"
  "github.com/gradpath/gradpath-backend/internal/jobs"
  "github.com/gradpath/gradpath-backend/internal/observability"
)

func main() {
  // Logger
  appEnv := os.Getenv("APP_ENV")
  if appEnv == "" {
    appEnv = "development"
  }
  log, err := logger.New(appEnv)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecret := utils.GetEnv("JWT_SECRET", "defaultsecret", log)
  accessTokenTTLMin := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MIN", 30, log)
  refreshTokenTTLHours := utils.GetEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 720, log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "gradpath-backend", log),
    Environment: appEnv,
  })
  if otelShutdown != nil {
    defer func() {
      shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(shutdownCtx)
    }()
  }

  // Database
  databaseService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = databaseService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := databaseService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(theDB, log)
  userTokenRepo := repos.NewUserTokenRepo(theDB, log)
  courseRepo := repos.NewCourseRepo(theDB, log)
  userCourseRepo := repos.NewUserCourseRepo(theDB, log)
  advisingSheetRepo := repos.NewAdvisingSheetRepo(theDB, log)
  extractionJobRepo := repos.NewExtractionJobRepo(theDB, databaseService.Driver(), log)

  // Storage
  store, err := storage.NewStore(log)
  if err != nil {
    log.Error("Could not init storage", "error", err)
    os.Exit(1)
  }

  // Document AI is optional; without it uploads rely on local extraction.
  var document gcp.Document
  if docService, derr := gcp.NewDocument(log); derr == nil {
    document = docService
  } else if errors.Is(derr, gcp.ErrNotConfigured) {
    log.Warn("Document AI not configured, OCR fallback disabled")
  } else {
    log.Warn("Could not init Document AI client", "error", derr)
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, jwtSecret, time.Duration(accessTokenTTLMin)*time.Minute, time.Duration(refreshTokenTTLHours)*time.Hour)
  userService := services.NewUserService(theDB, log, userRepo)
  courseService := services.NewCourseService(theDB, log, courseRepo)
  userCourseService := services.NewUserCourseService(theDB, log, courseRepo, userCourseRepo)
  journeyService := services.NewJourneyService(theDB, log, courseRepo, userCourseRepo)
  sheetService := services.NewSheetService(theDB, log, store, document, courseRepo, userCourseRepo, advisingSheetRepo, extractionJobRepo)
  loginLimiter := services.NewLoginRateLimiter(log)

  // Extraction worker
  if utils.GetEnvAsBool("EXTRACTION_WORKER_ENABLED", true, log) {
    worker := jobs.NewWorker(log, extractionJobRepo, sheetService)
    worker.Start(context.Background())
  }

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  courseHandler := handlers.NewCourseHandler(log, courseService)
  userCourseHandler := handlers.NewUserCourseHandler(log, userCourseService)
  journeyHandler := handlers.NewJourneyHandler(log, journeyService)
  sheetHandler := handlers.NewSheetHandler(log, sheetService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    UserHandler:       userHandler,
    CourseHandler:     courseHandler,
    UserCourseHandler: userCourseHandler,
    JourneyHandler:    journeyHandler,
    SheetHandler:      sheetHandler,
    LoginLimiter:      loginLimiter,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
