package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leave-api/internal/config"
	"leave-api/internal/database"
	"leave-api/internal/handler"
	"leave-api/internal/logger"
	"leave-api/internal/metrics"
	"leave-api/internal/middleware"
	"leave-api/internal/repository"
	"leave-api/internal/service"
	"leave-api/internal/token"
	"leave-api/internal/websocket"

	"github.com/gin-gonic/gin"
)

// @title           Employee Leave Management API
// @version         1.0
// @description     Registration, login and a leave request workflow with role based access.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(cfg)
	slog.SetDefault(appLogger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := database.NewStore(cfg, appLogger)
	if err != nil {
		appLogger.Error("store initialization failed", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("store ready", slog.String("driver", cfg.StoreDriver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run(ctx)

	appMetrics := metrics.New()
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, 10*time.Minute, appLogger)
	defer authLimiter.Stop()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(store)
	dispatcher := repository.NewDispatcher(txManager, appLogger)
	userRepo := repository.NewUserRepository(dispatcher)
	leaveRepo := repository.NewLeaveRepository(dispatcher)
	auditRepo := repository.NewAuditRepository(dispatcher)
	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.JWTExpiresIn)

	router := handler.NewRouter(handler.Dependencies{
		Config:      cfg,
		Logger:      appLogger,
		Tokens:      tokens,
		Auth:        service.NewAuthService(userRepo, auditRepo, txManager, tokens, cfg.BcryptCost),
		Leaves:      service.NewLeaveService(leaveRepo, userRepo, auditRepo, txManager, wsHub, appMetrics),
		Audit:       service.NewAuditService(auditRepo, userRepo, txManager),
		Statistics:  service.NewStatisticsService(userRepo, leaveRepo, txManager),
		Hub:         wsHub,
		Metrics:     appMetrics,
		AuthLimiter: authLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
