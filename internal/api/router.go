package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bizhub/erp-system/docs"
	"github.com/bizhub/erp-system/internal/api/handler"
	"github.com/bizhub/erp-system/internal/api/middleware"
	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
	"github.com/bizhub/erp-system/internal/core/service"
	mongodb "github.com/bizhub/erp-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bizhub/erp-system/internal/infrastructure/db/redis"
	"github.com/bizhub/erp-system/internal/infrastructure/http/handlers"
	"github.com/bizhub/erp-system/internal/realtime"
)

// Dependencies carries the external collaborators the router wires together.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Generator ports.TextGenerator
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered,
// together with the realtime registry so the caller can inspect it.
func NewRouter(deps Dependencies) (*echo.Echo, *realtime.Registry) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("erp"))

	// --- Real-time channel ---
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry, deps.Log)
	wsHandler := realtime.NewHandler(registry, deps.Log)

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(deps.DB)
	notificationRepo := mongodb.NewNotificationRepository(deps.DB)
	messageRepo := mongodb.NewMessageRepository(deps.DB)
	financeRepo := mongodb.NewFinanceRepository(deps.DB)
	summaryCache := redisdb.NewSummaryCache(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(authRepo, deps.JWTSecret, 24*time.Hour)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, deps.Log)
	messageService := service.NewMessageService(messageRepo, dispatcher, deps.Log)
	financeService := service.NewFinanceService(financeRepo, deps.Log)
	summaryService := service.NewSummaryService(
		financeRepo, notificationRepo, messageRepo,
		deps.Generator, summaryCache, deps.Log,
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	messageHandler := handler.NewMessageHandler(messageService)
	financeHandler := handler.NewFinanceHandler(financeService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Channel endpoint (identity announced in-band) ---
	e.GET("/ws", wsHandler.Serve)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications", notificationHandler.Create, middleware.RBAC(domain.RoleAdmin))
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	v1.GET("/messages", messageHandler.Conversation)
	v1.POST("/messages", messageHandler.Send)

	v1.GET("/finance/transactions", financeHandler.List)
	v1.POST("/finance/transactions", financeHandler.Record)
	v1.GET("/finance/summary", financeHandler.Summary)

	v1.POST("/ai/finance", summaryHandler.Finance)
	v1.POST("/ai/notifications", summaryHandler.Notifications)
	v1.POST("/ai/chat", summaryHandler.Chat)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, registry
}
