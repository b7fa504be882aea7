package server

import (
  "os"
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/gradpath/gradpath-backend/internal/handlers"
  "github.com/gradpath/gradpath-backend/internal/middleware"
  "github.com/gradpath/gradpath-backend/internal/services"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  UserHandler       *handlers.UserHandler
  CourseHandler     *handlers.CourseHandler
  UserCourseHandler *handlers.UserCourseHandler
  JourneyHandler    *handlers.JourneyHandler
  SheetHandler      *handlers.SheetHandler
  LoginLimiter      services.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("gradpath-backend"))
  router.Use(middleware.AttachTraceContext())

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowedOrigins(),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  api := router.Group("/api")
  {
    api.GET("/healthcheck", handlers.HealthCheck)
    api.POST("/login", middleware.LoginRateLimit(cfg.LoginLimiter), cfg.AuthHandler.Login)
    api.POST("/refresh", cfg.AuthHandler.Refresh)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/me", cfg.UserHandler.GetMe)
  // Catalog
  protected.GET("/courses", cfg.CourseHandler.ListCourses)
  // Per-student course records
  protected.GET("/user/courses", cfg.UserCourseHandler.ListUserCourses)
  protected.POST("/user/courses", cfg.UserCourseHandler.UpsertUserCourse)
  // Journey
  protected.GET("/progress", cfg.JourneyHandler.GetProgress)
  protected.GET("/journey", cfg.JourneyHandler.GetJourney)
  // Advising sheets
  protected.POST("/upload", cfg.SheetHandler.Upload)
  protected.POST("/upload/async", cfg.SheetHandler.UploadAsync)
  protected.GET("/upload/status/:job_id", cfg.SheetHandler.GetJobStatus)
  protected.GET("/sheets", cfg.SheetHandler.ListSheets)

// ===============
// || Admin     ||
// ===============
  admin := router.Group("/api")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  admin.POST("/courses", cfg.CourseHandler.CreateCourse)

  return router
}

// allowedOrigins reads CORS_ORIGINS as a comma-separated list, defaulting
// to the local dev frontends.
func allowedOrigins() []string {
  raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
  if raw == "" {
    return []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    }
  }
  origins := []string{}
  for _, part := range strings.Split(raw, ",") {
    if origin := strings.TrimSpace(part); origin != "" {
      origins = append(origins, origin)
    }
  }
  return origins
}
