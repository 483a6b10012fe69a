package handler

import (
	"log/slog"
	"net/http"

	_ "leave-api/api/swagger" // swagger docs
	"leave-api/internal/apperror"
	"leave-api/internal/config"
	"leave-api/internal/metrics"
	"leave-api/internal/middleware"
	"leave-api/internal/service"
	"leave-api/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies collects everything the router serves
type Dependencies struct {
	Config      *config.Config
	Logger      *slog.Logger
	Tokens      middleware.TokenVerifier
	Auth        service.AuthService
	Leaves      service.LeaveService
	Audit       service.AuditService
	Statistics  service.StatisticsService
	Hub         *websocket.Hub
	Metrics     *metrics.Metrics
	AuthLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with the middleware chain and every route
func NewRouter(deps Dependencies) *gin.Engine {
	RegisterValidators()

	router := gin.New()

	router.Use(
		middleware.RequestLogger(deps.Logger),
		deps.Metrics.Middleware(),
		middleware.ErrorHandler(deps.Logger, !deps.Config.IsProduction()),
		cors.New(corsConfig(deps.Config)),
		middleware.SecureHeaders(deps.Config.IsProduction(), deps.Logger),
	)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Endpoint not found"))
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Employee Leave Management API",
			"version": "1.0.0",
			"status":  "Online",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ws", websocket.ServeWs(deps.Hub, deps.Tokens))

	root := router.Group("")
	NewAuthHandler(deps.Auth, deps.Tokens, deps.AuthLimiter.Middleware()).RegisterRoutes(root)
	NewLeaveHandler(deps.Leaves, deps.Tokens).RegisterRoutes(root)
	NewAdminHandler(deps.Auth, deps.Audit, deps.Statistics, deps.Tokens).RegisterRoutes(root)
	NewManagerHandler(deps.Leaves, deps.Tokens).RegisterRoutes(root)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	return corsConfig
}
